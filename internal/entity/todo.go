package entity

import (
	"time"

	"github.com/google/uuid"
)

type Todo struct {
	ID        uuid.UUID `json:"id"`
	ClassID   uuid.UUID `json:"class_id"`
	UserID    uuid.UUID `json:"user_id"`
	Text      string    `json:"text"`
	Done      bool      `json:"done"`
	Important bool      `json:"important"`
	CreatedAt time.Time `json:"created_at"`
}

// TodoPatch lists the fields of a todo a client may change. Nil means unchanged.
type TodoPatch struct {
	Text      *string `json:"text,omitempty"`
	Done      *bool   `json:"done,omitempty"`
	Important *bool   `json:"important,omitempty"`
}

func (p TodoPatch) Empty() bool {
	return p.Text == nil && p.Done == nil && p.Important == nil
}
