package model

import (
	"time"
)

// Task is a single to-do item. ID is the identity key and never changes
// after creation; nil DescriptionText and CreationDate mean "unset".
type Task struct {
	ID              int16      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Title           string     `gorm:"not null" json:"title"`
	DescriptionText *string    `json:"description,omitempty"`
	CreationDate    *time.Time `json:"creation_date,omitempty"`
	IsCompleted     bool       `gorm:"not null" json:"completed"`
}

// TaskFields holds the mutable part of a Task, applied by an update.
type TaskFields struct {
	Title           string
	DescriptionText *string
	CreationDate    *time.Time
	IsCompleted     bool
}
