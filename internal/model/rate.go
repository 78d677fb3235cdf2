package model

// DailyRate holds the daily and hourly cost of one agency role (TJM).
// The pricing engine only ever considers active entries.
//
// Edit policy: the hourly rate is derived as round(daily / 8) whenever a
// write does not explicitly provide one; an explicit hourly value is
// stored as-is and is not recomputed on later daily edits.
type DailyRate struct {
	BaseModel
	RoleName   string  `gorm:"type:varchar(100);not null" json:"role_name" validate:"required"`
	DailyRate  float64 `gorm:"not null" json:"daily_rate" validate:"required,gt=0"`
	HourlyRate float64 `gorm:"not null" json:"hourly_rate" validate:"gte=0"`
	IsActive   bool    `gorm:"default:true" json:"is_active"`
}

// DefaultRateRoles seeds the catalog with the agency's standard profiles.
var DefaultRateRoles = []string{
	"Directeur Général",
	"Chef de Projet",
	"Designer",
	"Rédacteur",
	"Community Manager",
	"Motion Designer",
	"Développeur",
	"Assistant",
}
