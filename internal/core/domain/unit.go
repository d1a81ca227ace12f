package domain

import "time"

type UnitStatus string

const (
	UnitAvailable UnitStatus = "available"
	UnitReserved  UnitStatus = "reserved"
	UnitSold      UnitStatus = "sold"
)

var unitTransitions = map[UnitStatus][]UnitStatus{
	UnitAvailable: {UnitReserved, UnitSold},
	UnitReserved:  {UnitAvailable, UnitSold},
}

// CanTransitionTo reports whether a unit may move from s to next.
func (s UnitStatus) CanTransitionTo(next UnitStatus) bool {
	for _, allowed := range unitTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Unit belongs to a Project in the same namespace.
type Unit struct {
	ID         int64      `json:"id"`
	ProjectID  int64      `json:"project_id"`
	UnitNumber string     `json:"unit_number"`
	Floor      int        `json:"floor"`
	Type       string     `json:"type"`
	AreaSqft   float64    `json:"area_sqft"`
	Price      float64    `json:"price"`
	Status     UnitStatus `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
