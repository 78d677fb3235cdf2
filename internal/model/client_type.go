package model

// ClientType is a named client category whose coefficient multiplies the
// raw internal cost. 1.0 is neutral, above 1 premium, below 1 discount.
// All entries are selectable; there is no activity flag.
type ClientType struct {
	BaseModel
	Name        string  `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Coefficient float64 `gorm:"not null" json:"coefficient" validate:"required,gt=0"`
	Description string  `gorm:"type:text" json:"description"`
}

// DefaultClientTypes seeds the coefficient catalog.
var DefaultClientTypes = []ClientType{
	{Name: "PME Locale", Coefficient: 1.0, Description: "Petite ou moyenne entreprise locale"},
	{Name: "Grande Entreprise", Coefficient: 1.3, Description: "Grand compte avec exigences renforcées"},
	{Name: "ONG / Association", Coefficient: 0.85, Description: "Organisation à but non lucratif"},
	{Name: "Institution Publique", Coefficient: 1.2, Description: "Administration ou établissement public"},
}
