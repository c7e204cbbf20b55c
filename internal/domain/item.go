package domain

import "time"

type Category string

const (
	CategoryRescue    Category = "RESCUE"
	CategoryMedical   Category = "MEDICAL"
	CategoryComms     Category = "COMMS"
	CategoryVehicles  Category = "VEHICLES"
	CategoryTools     Category = "TOOLS"
	CategoryLogistics Category = "LOGISTICS"
)

// Categories lists every valid item category.
var Categories = []Category{
	CategoryRescue,
	CategoryMedical,
	CategoryComms,
	CategoryVehicles,
	CategoryTools,
	CategoryLogistics,
}

func (c Category) Valid() bool {
	switch c {
	case CategoryRescue, CategoryMedical, CategoryComms, CategoryVehicles, CategoryTools, CategoryLogistics:
		return true
	}
	return false
}

type Item struct {
	ID                int32             `json:"id"`
	Name              string            `json:"name"`
	Category          Category          `json:"category"`
	Quantity          int32             `json:"quantity"`  // total owned units
	Available         int32             `json:"available"` // units not currently on loan
	Description       string            `json:"description"`
	Specifications    map[string]string `json:"specifications"`
	ImageURL          string            `json:"image_url"`
	ManualURL         string            `json:"manual_url"`
	UsageInstructions string            `json:"usage_instructions"`
	Observations      []Observation     `json:"observations,omitempty"` // newest first, populated on fetch
	CreatedOn         time.Time         `json:"created_on"`
	UpdatedOn         time.Time         `json:"updated_on"`
}

type ObservationType string

const (
	ObservationTypeMaintenance ObservationType = "MAINTENANCE"
	ObservationTypeDamage      ObservationType = "DAMAGE"
	ObservationTypeGeneral     ObservationType = "GENERAL"
)

func (t ObservationType) Valid() bool {
	switch t {
	case ObservationTypeMaintenance, ObservationTypeDamage, ObservationTypeGeneral:
		return true
	}
	return false
}

// Observation is an immutable note attached to an item. Author is a free-text
// name, not a user reference. Observations are never edited, only deleted.
type Observation struct {
	ID         int32           `json:"id"`
	ItemID     int32           `json:"item_id"`
	ObservedOn time.Time       `json:"date"`
	Author     string          `json:"author"`
	Text       string          `json:"text"`
	Type       ObservationType `json:"type"`
}
