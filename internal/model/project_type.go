package model

// ComplexityLevel tiers a project category for justification wording.
type ComplexityLevel string

const (
	ComplexityLow    ComplexityLevel = "low"
	ComplexityMedium ComplexityLevel = "medium"
	ComplexityHigh   ComplexityLevel = "high"
)

// ProjectType is a labeling input only: it never enters the arithmetic,
// but its complexity tier drives one justification sentence.
type ProjectType struct {
	BaseModel
	Name            string          `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Description     string          `gorm:"type:text" json:"description"`
	ComplexityLevel ComplexityLevel `gorm:"type:varchar(10);not null" json:"complexity_level" validate:"required,oneof=low medium high"`
}

// DefaultProjectTypes seeds the project category catalog.
var DefaultProjectTypes = []ProjectType{
	{Name: "Site Vitrine", Description: "Site de présentation institutionnel", ComplexityLevel: ComplexityLow},
	{Name: "Campagne Social Media", Description: "Campagne de communication digitale", ComplexityLevel: ComplexityLow},
	{Name: "Identité Visuelle", Description: "Création de charte graphique complète", ComplexityLevel: ComplexityMedium},
	{Name: "Application Web", Description: "Développement d'application métier", ComplexityLevel: ComplexityHigh},
	{Name: "Plateforme E-commerce", Description: "Boutique en ligne avec paiement", ComplexityLevel: ComplexityHigh},
}
