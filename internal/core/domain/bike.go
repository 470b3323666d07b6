package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// swagger:model domain.Bike
type Bike struct {
	BikeID     uuid.UUID `json:"bike_id"`
	ExternalID int       `json:"external_id" validate:"min=0"`
	Name       string    `json:"name" validate:"required,max=200"`
	Size       BikeSize  `json:"size" validate:"required,oneof=Grand Moyenne petit"`
	Type       BikeType  `json:"type" validate:"required,oneof=City Electric VTT"`
	Price      float64   `json:"price" validate:"min=0"`
	Images     []string  `json:"images"`
	Available  bool      `json:"available"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type BikeType string

const (
	City     BikeType = "City"
	Electric BikeType = "Electric"
	VTT      BikeType = "VTT"
)

// ParseBikeType accepts the catalog names case-insensitively and maps the
// legacy storage values (normal, electrique) onto them.
func ParseBikeType(s string) (BikeType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "city", "normal":
		return City, true
	case "electric", "electrique":
		return Electric, true
	case "vtt":
		return VTT, true
	}
	return "", false
}

type BikeSize string

const (
	Large  BikeSize = "Grand"
	Medium BikeSize = "Moyenne"
	Small  BikeSize = "petit"
)

// BikePatch carries the fields an admin edit may change. Nil means untouched.
type BikePatch struct {
	ExternalID *int
	Name       *string
	Size       *BikeSize
	Type       *BikeType
	Price      *float64
	Images     []string
	Available  *bool
}

// Apply copies the set fields of p onto b.
func (p BikePatch) Apply(b *Bike) {
	if p.ExternalID != nil {
		b.ExternalID = *p.ExternalID
	}
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.Size != nil {
		b.Size = *p.Size
	}
	if p.Type != nil {
		b.Type = *p.Type
	}
	if p.Price != nil {
		b.Price = *p.Price
	}
	if p.Images != nil {
		b.Images = p.Images
	}
	if p.Available != nil {
		b.Available = *p.Available
	}
}
