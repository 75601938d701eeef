package search

import "math"

// PageInRange сообщает, помещается ли смещение страницы page в int.
func PageInRange(page, pageSize int) bool {
	return page >= 1 && pageSize > 0 && page-1 <= math.MaxInt/pageSize
}

// TotalPages количество страниц для total элементов.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Paginate возвращает срез страницы page (с единицы). Страница за пределами
// диапазона даёт пустой результат, номер страницы не корректируется.
func Paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 || pageSize <= 0 {
		return []T{}
	}
	// сравнение до умножения: (page-1)*pageSize переполняется на больших page
	if page-1 >= TotalPages(len(items), pageSize) {
		return []T{}
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
