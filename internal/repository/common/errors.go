package common

import "errors"

// ErrInvalidInput запрос содержит неподдерживаемое поле или оператор.
var ErrInvalidInput = errors.New("invalid input")
