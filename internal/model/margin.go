package model

// Margin is one selectable markup percentage. Only active entries are
// offered in the calculator; duplicate percentages among live rows are
// rejected at write time.
type Margin struct {
	BaseModel
	Percentage int  `gorm:"not null" json:"percentage" validate:"required,gt=0,lte=100"`
	IsActive   bool `gorm:"default:true" json:"is_active"`
}

// DefaultMargins seeds the margin catalog.
var DefaultMargins = []int{20, 30, 40, 50}
