package model

import "time"

// Box is a named container grouping related todos. Deleting a box removes
// its todos through the store's cascading foreign key.
type Box struct {
	// ID is assigned by the store on insert and never reused. Zero means
	// the box has not been persisted yet.
	ID             int64     `json:"id" db:"id"`
	Title          string    `json:"title" db:"title"`
	Color          string    `json:"color" db:"color"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	SelectDateAt   time.Time `json:"select_date_at" db:"select_date_at"`
	LastModifiedAt time.Time `json:"last_modified_at" db:"last_modified_at"`
}

// BoxWithTodos is the per-date aggregate the view layer renders: a box,
// its non-deleted todos scheduled on the date, and how many are checked.
type BoxWithTodos struct {
	Box       Box    `json:"box"`
	Todos     []Todo `json:"todos"`
	DoneCount int    `json:"done_count"`
}
