package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("unsupported type for JSONB column")
	}
}

// ClientTypeSnapshot is a copy-by-value of a ClientType at commit time.
// Later catalog edits never alter stored simulations.
type ClientTypeSnapshot struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Coefficient float64   `json:"coefficient"`
	Description string    `json:"description"`
}

func (s ClientTypeSnapshot) Value() (driver.Value, error) { return json.Marshal(s) }
func (s *ClientTypeSnapshot) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// ProjectTypeSnapshot is a copy-by-value of a ProjectType at commit time.
type ProjectTypeSnapshot struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	ComplexityLevel ComplexityLevel `json:"complexity_level"`
}

func (s ProjectTypeSnapshot) Value() (driver.Value, error) { return json.Marshal(s) }
func (s *ProjectTypeSnapshot) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// WorkItem is one role's consumption inside a simulation. Days is the
// canonical unit at rest: hour entries are divided by 8 before commit.
type WorkItem struct {
	RoleID    uuid.UUID `json:"role_id"`
	RoleName  string    `json:"role_name"`
	Days      float64   `json:"days"`
	DailyRate float64   `json:"daily_rate"`
}

// WorkItems is the JSONB-stored list of line items.
type WorkItems []WorkItem

func (w WorkItems) Value() (driver.Value, error) {
	if w == nil {
		w = WorkItems{}
	}
	return json.Marshal(w)
}
func (w *WorkItems) Scan(value interface{}) error { return scanJSON(value, w) }

// Simulation is a persisted pricing computation: inputs (snapshotted),
// computed outputs, author and timestamp. Created exactly once at
// calculation commit; immutable thereafter.
type Simulation struct {
	BaseModel
	ClientName           string              `gorm:"type:varchar(255);not null" json:"client_name" validate:"required"`
	ClientType           ClientTypeSnapshot  `gorm:"type:jsonb;not null" json:"client_type"`
	ProjectType          ProjectTypeSnapshot `gorm:"type:jsonb;not null" json:"project_type"`
	WorkItems            WorkItems           `gorm:"type:jsonb;not null" json:"work_items"`
	MarginPercent        float64             `gorm:"not null" json:"margin_percent"`
	InternalCost         float64             `gorm:"not null" json:"internal_cost"`
	CostAfterCoefficient float64             `gorm:"not null" json:"cost_after_coefficient"`
	RecommendedPrice     float64             `gorm:"not null" json:"recommended_price"`

	CreatedByID   *uuid.UUID `gorm:"type:uuid;index" json:"created_by_id,omitempty"`
	CreatedByName string     `gorm:"type:varchar(255)" json:"created_by_name"`
}

// TotalDays sums the day units across all line items.
func (s *Simulation) TotalDays() float64 {
	var total float64
	for _, item := range s.WorkItems {
		total += item.Days
	}
	return total
}
