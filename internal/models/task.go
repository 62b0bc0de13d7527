package models

// Task is a to-do item owned by exactly one user.
type Task struct {
	ID       int    `json:"id"`
	Title    string `json:"task"`
	Priority string `json:"priority"`
	Status   string `json:"status"`
	OwnerID  int    `json:"user_id"`
}

// TaskPatch carries a partial update. Nil fields keep their stored value.
type TaskPatch struct {
	Title    *string
	Priority *string
	Status   *string
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Priority == nil && p.Status == nil
}
