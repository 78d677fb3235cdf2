package model

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/google/uuid"
)

// UsageDetails carries free-form context for an activity log entry.
type UsageDetails map[string]interface{}

func (d UsageDetails) Value() (driver.Value, error) {
	if d == nil {
		d = UsageDetails{}
	}
	return json.Marshal(d)
}
func (d *UsageDetails) Scan(value interface{}) error { return scanJSON(value, d) }

// UsageEntry is one line of the activity log (who did what, when).
// Written best-effort: a failed insert never fails the action itself.
type UsageEntry struct {
	BaseModel
	UserID  uuid.UUID    `gorm:"type:uuid;not null;index" json:"user_id"`
	Action  string       `gorm:"type:varchar(100);not null" json:"action"`
	Details UsageDetails `gorm:"type:jsonb" json:"details,omitempty"`
}
