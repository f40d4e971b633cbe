package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	dom "taskboard/internal/domain"
	"taskboard/internal/repo"

	"golang.org/x/sync/singleflight"
)

const listFlightKey = "list"

// ListCache stores the full task list between writes. Invalidate advances
// the generation; SetList stores only if the generation is unchanged.
type ListCache interface {
	Generation(ctx context.Context) (int64, error)
	GetList(ctx context.Context) ([]dom.Task, error)
	SetList(ctx context.Context, list []dom.Task, gen int64) (bool, error)
	Invalidate(ctx context.Context) error
}

// TaskStats summarises the task table.
type TaskStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Active    int `json:"active"`
}

type TaskService struct {
	repo   repo.TaskRepo
	cache  ListCache
	sf     singleflight.Group
	logger *slog.Logger
}

// NewTaskService creates a TaskService. If c is nil, caching is disabled.
func NewTaskService(r repo.TaskRepo, c ListCache, logger *slog.Logger) *TaskService {
	return &TaskService{repo: r, cache: c, logger: logger}
}

// List returns the tasks selected by q. The zero TaskQuery yields every
// task, newest id first.
func (s *TaskService) List(ctx context.Context, q TaskQuery) ([]dom.Task, error) {
	all, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return q.Apply(all), nil
}

func (s *TaskService) Get(ctx context.Context, id int64) (dom.Task, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TaskService) Stats(ctx context.Context) (TaskStats, error) {
	all, err := s.all(ctx)
	if err != nil {
		return TaskStats{}, err
	}
	st := TaskStats{Total: len(all)}
	for _, t := range all {
		if t.Completed {
			st.Completed++
		}
	}
	st.Active = st.Total - st.Completed
	return st, nil
}

func (s *TaskService) Create(ctx context.Context, title string) (dom.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return dom.Task{}, fmt.Errorf("%w: title required", dom.ErrInvalidInput)
	}
	t, err := s.repo.Create(ctx, title)
	if err != nil {
		return dom.Task{}, err
	}
	s.invalidateCache(ctx)
	return t, nil
}

// Update applies patch and returns it as stored. A missing id is not an
// error; nothing changes.
func (s *TaskService) Update(ctx context.Context, id int64, patch dom.TaskPatch) (dom.TaskPatch, error) {
	if patch.Empty() {
		return dom.TaskPatch{}, dom.ErrNoFields
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return dom.TaskPatch{}, fmt.Errorf("%w: title must not be empty", dom.ErrInvalidInput)
		}
		patch.Title = &title
	}
	n, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return dom.TaskPatch{}, err
	}
	if n == 0 {
		s.logger.DebugContext(ctx, "update matched no task", "id", id)
	}
	s.invalidateCache(ctx)
	return patch, nil
}

// Delete removes the task. Deleting a missing id succeeds.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		s.logger.DebugContext(ctx, "delete matched no task", "id", id)
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *TaskService) all(ctx context.Context) ([]dom.Task, error) {
	if s.cache == nil {
		return s.repo.List(ctx)
	}
	v, err, _ := s.sf.Do(listFlightKey, func() (interface{}, error) {
		// Shared by every waiter; one cancelled request must not fail the rest.
		fctx := context.WithoutCancel(ctx)

		gen, err := s.cache.Generation(fctx)
		if err != nil {
			s.logger.WarnContext(ctx, "task cache generation read failed", "error", err)
			return s.repo.List(fctx)
		}
		if list, err := s.cache.GetList(fctx); err == nil && list != nil {
			return list, nil
		} else if err != nil {
			s.logger.WarnContext(ctx, "task cache read failed", "error", err)
		}
		list, err := s.repo.List(fctx)
		if err != nil {
			return nil, err
		}
		stored, err := s.cache.SetList(fctx, list, gen)
		switch {
		case err != nil:
			s.logger.WarnContext(ctx, "task cache write failed", "error", err)
		case !stored:
			s.logger.DebugContext(ctx, "task list changed during load, not cached")
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Task), nil
}

func (s *TaskService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.sf.Forget(listFlightKey)
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.WarnContext(ctx, "task cache invalidate failed", "error", err)
	}
}
