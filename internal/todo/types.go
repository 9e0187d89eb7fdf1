// Package todo implements user-scoped lists and the tasks nested inside them.
package todo

import "time"

// List belongs to exactly one user; it is only visible and mutable to its
// owner.
type List struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	UserID    string    `json:"_userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Task carries no owner field; ownership is transitive through the parent
// list.
type Task struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	ListID    string    `json:"_listId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListUpdate and TaskUpdate are partial updates; nil fields are left
// untouched.
type ListUpdate struct {
	Title *string
}

type TaskUpdate struct {
	Title     *string
	Completed *bool
}
