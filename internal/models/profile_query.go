package models

// ConditionOp вид условия, который поддерживает хранилище профилей.
type ConditionOp string

const (
	// OpEq точное равенство поля значению.
	OpEq ConditionOp = "eq"
	// OpContains массивное поле содержит хотя бы одно из значений.
	OpContains ConditionOp = "contains"
	// OpIn значение поля входит в список.
	OpIn ConditionOp = "in"
	// OpRange значение поля в диапазоне [From, To].
	OpRange ConditionOp = "range"
)

// Condition одно условие выборки профилей.
type Condition struct {
	Field  string
	Op     ConditionOp
	Value  string
	Values []string
	From   int
	To     int
}

// OrderBy правило сортировки на стороне хранилища.
type OrderBy struct {
	Field      string
	Descending bool
}

// ProfileQuery запрос к хранилищу профилей: условия, сортировка и окно offset/limit.
// Limit <= 0 означает выборку без ограничения.
type ProfileQuery struct {
	Conditions []Condition
	Order      []OrderBy
	Offset     int
	Limit      int
}
