package usecase

// Paginate slices items into the requested fixed-size page and reports the
// number of the last page, ceil(len(items)/pageSize). currentPage values
// below 1 mean page 1; a page beyond the last yields an empty slice rather
// than an error.
func Paginate[T any](items []T, currentPage, pageSize int) ([]T, int) {
	if pageSize <= 0 {
		pageSize = 1
	}
	if currentPage < 1 {
		currentPage = 1
	}

	lastPage := (len(items) + pageSize - 1) / pageSize

	start := (currentPage - 1) * pageSize
	if start >= len(items) {
		return []T{}, lastPage
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], lastPage
}
