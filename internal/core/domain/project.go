package domain

import "time"

type ProjectStatus string

const (
	ProjectPlanning          ProjectStatus = "planning"
	ProjectUnderConstruction ProjectStatus = "under_construction"
	ProjectCompleted         ProjectStatus = "completed"
)

// Project is a development managed by a builder.
type Project struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Location    string        `json:"location"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status"`
	CreatedBy   int64         `json:"created_by"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
