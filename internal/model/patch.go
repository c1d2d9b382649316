package model

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
)

// OptionalUUID различает три состояния поля в JSON-документе:
// ключ отсутствует (Present=false), явный null (Present=true, Valid=false)
// и конкретное значение (Present=true, Valid=true).
// Обычный *uuid.UUID склеивает первые два состояния, а для projectId
// разница принципиальна: null отвязывает задачу от проекта.
type OptionalUUID struct {
	Present bool
	Valid   bool
	Value   uuid.UUID
}

// UnmarshalJSON вызывается только когда ключ есть в документе,
// поэтому Present взводится безусловно
func (o *OptionalUUID) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

func SetTo(id uuid.UUID) OptionalUUID {
	return OptionalUUID{Present: true, Valid: true, Value: id}
}

func Clear() OptionalUUID {
	return OptionalUUID{Present: true}
}

type CreateTaskRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Priority    *TaskPriority `json:"priority"`
	DueDate     *Date         `json:"dueDate"`
	ProjectID   *uuid.UUID    `json:"projectId"`
}

// UpdateTaskRequest - разреженный патч: nil-поля не трогаются
type UpdateTaskRequest struct {
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Status      *TaskStatus   `json:"status"`
	Priority    *TaskPriority `json:"priority"`
	DueDate     *Date         `json:"dueDate"`
	AssigneeID  *uuid.UUID    `json:"assigneeId"`
	ProjectID   OptionalUUID  `json:"projectId"`
}
