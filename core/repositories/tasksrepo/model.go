package tasksrepo

import "time"

// Task is the persisted entity. The id is assigned by the store on create
// and never changes or gets reused afterward.
type Task struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description *string   `db:"description"`
	Status      Status    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// TaskDTO carries validated create/update fields between the bridge and the
// repository. It has no identity and is discarded after the call it
// parameterizes returns.
type TaskDTO struct {
	Title       string
	Description *string
	Status      Status
}
