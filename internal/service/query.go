package service

import (
	"fmt"
	"sort"
	"strings"

	dom "taskboard/internal/domain"
)

const (
	StatusAll       = "all"
	StatusActive    = "active"
	StatusCompleted = "completed"

	SortNewest = "newest"
	SortOldest = "oldest"
	SortAZ     = "az"
	SortZA     = "za"
)

// TaskQuery narrows and orders a task list. Empty fields mean no filter and
// repository order.
type TaskQuery struct {
	Status string
	Search string
	Sort   string
}

// ParseTaskQuery validates raw query parameters.
func ParseTaskQuery(status, search, sortBy string) (TaskQuery, error) {
	q := TaskQuery{
		Status: strings.ToLower(strings.TrimSpace(status)),
		Search: strings.TrimSpace(search),
		Sort:   strings.ToLower(strings.TrimSpace(sortBy)),
	}
	switch q.Status {
	case "", StatusAll, StatusActive, StatusCompleted:
	default:
		return TaskQuery{}, fmt.Errorf("%w: unknown status %q", dom.ErrInvalidInput, status)
	}
	switch q.Sort {
	case "", SortNewest, SortOldest, SortAZ, SortZA:
	default:
		return TaskQuery{}, fmt.Errorf("%w: unknown sort %q", dom.ErrInvalidInput, sortBy)
	}
	return q, nil
}

// Apply returns a new slice; list is not modified.
func (q TaskQuery) Apply(list []dom.Task) []dom.Task {
	needle := strings.ToLower(q.Search)
	out := make([]dom.Task, 0, len(list))
	for _, t := range list {
		switch q.Status {
		case StatusActive:
			if t.Completed {
				continue
			}
		case StatusCompleted:
			if !t.Completed {
				continue
			}
		}
		if needle != "" && !strings.Contains(strings.ToLower(t.Title), needle) {
			continue
		}
		out = append(out, t)
	}

	var less func(a, b dom.Task) bool
	switch q.Sort {
	case SortNewest:
		less = func(a, b dom.Task) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID > b.ID
		}
	case SortOldest:
		less = func(a, b dom.Task) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.ID < b.ID
		}
	case SortAZ:
		less = func(a, b dom.Task) bool { return titleLess(a, b) }
	case SortZA:
		less = func(a, b dom.Task) bool { return titleLess(b, a) }
	default:
		return out
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func titleLess(a, b dom.Task) bool {
	la, lb := strings.ToLower(a.Title), strings.ToLower(b.Title)
	if la != lb {
		return la < lb
	}
	return a.ID < b.ID
}
