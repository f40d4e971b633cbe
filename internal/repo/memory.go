package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	dom "taskboard/internal/domain"
)

// MemoryStore keeps users and tasks in process memory. It backs
// STORAGE_DRIVER=memory and the handler tests.
type MemoryStore struct {
	mu         sync.RWMutex
	users      map[string]dom.User
	tasks      map[int64]dom.Task
	nextUserID int64
	nextTaskID int64
	now        func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]dom.User),
		tasks: make(map[int64]dom.Task),
		now:   time.Now,
	}
}

// Users returns the store as a UserRepo.
func (m *MemoryStore) Users() UserRepo { return memoryUsers{m} }

// Tasks returns the store as a TaskRepo.
func (m *MemoryStore) Tasks() TaskRepo { return memoryTasks{m} }

// Ping always succeeds.
func (m *MemoryStore) Ping(context.Context) error { return nil }

type memoryUsers struct{ m *MemoryStore }

func (r memoryUsers) GetByEmail(_ context.Context, email string) (dom.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	u, ok := r.m.users[email]
	if !ok {
		return dom.User{}, dom.ErrNotFound
	}
	return u, nil
}

func (r memoryUsers) Create(_ context.Context, email, passwordHash string) (dom.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.users[email]; ok {
		return dom.User{}, dom.ErrEmailTaken
	}
	r.m.nextUserID++
	u := dom.User{
		ID:           r.m.nextUserID,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    r.m.now().UTC(),
	}
	r.m.users[email] = u
	return u, nil
}

type memoryTasks struct{ m *MemoryStore }

func (r memoryTasks) List(context.Context) ([]dom.Task, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	list := make([]dom.Task, 0, len(r.m.tasks))
	for _, t := range r.m.tasks {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (r memoryTasks) GetByID(_ context.Context, id int64) (dom.Task, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	t, ok := r.m.tasks[id]
	if !ok {
		return dom.Task{}, dom.ErrNotFound
	}
	return t, nil
}

func (r memoryTasks) Create(_ context.Context, title string) (dom.Task, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.nextTaskID++
	t := dom.Task{
		ID:        r.m.nextTaskID,
		Title:     title,
		CreatedAt: r.m.now().UTC(),
	}
	r.m.tasks[t.ID] = t
	return t, nil
}

func (r memoryTasks) Update(_ context.Context, id int64, patch dom.TaskPatch) (int64, error) {
	if patch.Empty() {
		return 0, dom.ErrNoFields
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	t, ok := r.m.tasks[id]
	if !ok {
		return 0, nil
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	r.m.tasks[id] = t
	return 1, nil
}

func (r memoryTasks) Delete(_ context.Context, id int64) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.tasks[id]; !ok {
		return 0, nil
	}
	delete(r.m.tasks, id)
	return 1, nil
}
