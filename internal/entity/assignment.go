package entity

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire and storage format of Assignment.DueDate.
const DateLayout = "2006-01-02"

type Assignment struct {
	ID        uuid.UUID `json:"id"`
	ClassID   uuid.UUID `json:"class_id"`
	UserID    uuid.UUID `json:"user_id"`
	Text      string    `json:"text"`
	DueDate   string    `json:"due_date"`
	Done      bool      `json:"done"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AssignmentPatch lists the fields of an assignment a client may change.
type AssignmentPatch struct {
	Text    *string `json:"text,omitempty"`
	DueDate *string `json:"due_date,omitempty"`
	Done    *bool   `json:"done,omitempty"`
}

func (p AssignmentPatch) Empty() bool {
	return p.Text == nil && p.DueDate == nil && p.Done == nil
}
