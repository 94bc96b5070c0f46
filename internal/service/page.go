package service

import "storeratings/internal/repository"

// Page is one page of a listing plus the pre-pagination match count.
type Page[T any] struct {
	Items       []T
	TotalCount  int64
	CurrentPage int
	TotalPages  int
}

func newPage[T any](items []T, total int64, params repository.ListParams) Page[T] {
	page := params.Page
	if page < 1 {
		page = repository.DefaultPage
	}
	limit := params.Limit
	if limit < 1 {
		limit = repository.DefaultLimit
	}
	if limit > repository.MaxLimit {
		limit = repository.MaxLimit
	}
	return Page[T]{
		Items:       items,
		TotalCount:  total,
		CurrentPage: page,
		TotalPages:  repository.TotalPages(total, limit),
	}
}
