package dto

import (
	"encoding/json"
	"strings"

	"task-manager.com/task-manager/internal/constants"
	model "task-manager.com/task-manager/internal/models"
)

type CreateTaskRequest struct {
	Title       string                `json:"title" validate:"required,min=3,max=255"`
	Description *string               `json:"description" validate:"omitnil,max=1000"`
	Status      *constants.TaskStatus `json:"status" validate:"omitnil,oneof=open in-progress closed"`
}

func (r CreateTaskRequest) ToNewTask() model.NewTask {
	status := constants.StatusOpen
	if r.Status != nil {
		status = *r.Status
	}
	return model.NewTask{
		Title:       r.Title,
		Description: r.Description,
		Status:      status,
	}
}

// UpdateTaskRequest only changes the fields present in the body. An explicit
// "description": null clears the description.
type UpdateTaskRequest struct {
	Title       *string               `json:"title" validate:"omitnil,min=3,max=255"`
	Description *string               `json:"description" validate:"omitnil,max=1000"`
	Status      *constants.TaskStatus `json:"status" validate:"omitnil,oneof=open in-progress closed"`

	DescriptionSet bool `json:"-"`
}

func (r *UpdateTaskRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateTaskRequest
	if err := json.Unmarshal(data, (*plain)(r)); err != nil {
		return err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	// encoding/json matches keys case-insensitively, so presence must too.
	for key := range keys {
		if strings.EqualFold(key, "description") {
			r.DescriptionSet = true
		}
	}
	return nil
}

func (r UpdateTaskRequest) ToPatch() model.TaskPatch {
	return model.TaskPatch{
		Title:            r.Title,
		Description:      r.Description,
		ClearDescription: r.DescriptionSet && r.Description == nil,
		Status:           r.Status,
	}
}
