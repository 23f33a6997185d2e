package model

import (
	"time"

	"task-manager.com/task-manager/internal/constants"
)

type Task struct {
	ID          string               `gorm:"primaryKey;size:36" json:"id"`
	Title       string               `gorm:"size:255;not null" json:"title"`
	Description *string              `gorm:"size:1000" json:"description"`
	Status      constants.TaskStatus `gorm:"type:varchar(20);not null;default:open" json:"status"`
	CreatedAt   time.Time            `gorm:"not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt   time.Time            `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
}

// NewTask carries the fields accepted when a task is created.
type NewTask struct {
	Title       string
	Description *string
	Status      constants.TaskStatus
}

// TaskPatch is a partial update: nil fields are left untouched.
// ClearDescription removes the description when Description is nil.
type TaskPatch struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Status           *constants.TaskStatus
}

// Apply copies the present fields onto t.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		description := *p.Description
		t.Description = &description
	} else if p.ClearDescription {
		t.Description = nil
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
}
