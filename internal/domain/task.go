package domain

import "time"

// Task is a single to-do item. Tasks have no owner: every authenticated
// user can read and change every task.
type Task struct {
	ID        int64
	Title     string
	Completed bool
	CreatedAt time.Time
}

// TaskPatch carries the fields of an update. Nil means "leave as is".
type TaskPatch struct {
	Title     *string
	Completed *bool
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Completed == nil
}
