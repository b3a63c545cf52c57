package models

import (
	"time"

	"github.com/catering/backend/internal/domain/catering"
	"github.com/google/uuid"
)

// TaskModel is the persistence model for the Task aggregate root
type TaskModel struct {
	AggregateModel
	Title       string     `gorm:"type:varchar(200);not null"`
	Description string     `gorm:"type:text"`
	Status      string     `gorm:"type:varchar(20);not null;index"`
	Priority    string     `gorm:"type:varchar(10);not null"`
	AssignedTo  *uuid.UUID `gorm:"type:uuid;index"`
	OrderID     *uuid.UUID `gorm:"type:uuid;index"`
	DueDate     *time.Time `gorm:"index"`
	CompletedAt *time.Time
}

// TableName returns the table name for GORM
func (TaskModel) TableName() string {
	return "tasks"
}

// ToDomain converts the persistence model to a domain Task
func (m *TaskModel) ToDomain() *catering.Task {
	t := &catering.Task{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Title:             m.Title,
		Description:       m.Description,
		Status:            catering.TaskStatus(m.Status),
		Priority:          catering.TaskPriority(m.Priority),
		AssignedTo:        m.AssignedTo,
		OrderID:           m.OrderID,
		CompletedAt:       m.CompletedAt,
	}
	if m.DueDate != nil {
		due := m.DueDate.UTC()
		t.DueDate = &due
	}
	return t
}

// FromDomain populates the model from a domain Task
func (m *TaskModel) FromDomain(t *catering.Task) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.Title = t.Title
	m.Description = t.Description
	m.Status = string(t.Status)
	m.Priority = string(t.Priority)
	m.AssignedTo = t.AssignedTo
	m.OrderID = t.OrderID
	m.DueDate = t.DueDate
	m.CompletedAt = t.CompletedAt
}

// TaskModelFromDomain creates a new persistence model from a domain Task
func TaskModelFromDomain(t *catering.Task) *TaskModel {
	m := &TaskModel{}
	m.FromDomain(t)
	return m
}
