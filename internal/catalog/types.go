// Package catalog defines core types shared across subsystems.
package catalog

import "time"

// ServiceEntity is a discovered geospatial service record. The extraction
// subsystem only reads Name, Type and Description; the remaining fields are
// passthrough metadata filled in by the enricher.
type ServiceEntity struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`

	URL              string    `json:"url,omitempty"`
	Folder           string    `json:"folder,omitempty"`
	Extent           *Extent   `json:"extent,omitempty"`
	SpatialReference string    `json:"spatial_reference,omitempty"`
	Available        bool      `json:"available"`
	CheckedAt        time.Time `json:"checked_at,omitzero"`
}

// SearchText is the text keyword membership is derived from.
func (e *ServiceEntity) SearchText() string {
	return e.Name + " " + e.Description
}

// Extent is a service bounding box in the units of its spatial reference.
type Extent struct {
	XMin float64 `json:"xmin"`
	YMin float64 `json:"ymin"`
	XMax float64 `json:"xmax"`
	YMax float64 `json:"ymax"`
	WKID int     `json:"wkid,omitempty"`
}

// KeywordIndex maps a normalized keyword to the entities that contain it,
// in entity processing order.
type KeywordIndex map[string][]*ServiceEntity

// CategoryIndex groups entities by their exact type value and carries the
// keyword index computed over the same entity sequence.
type CategoryIndex struct {
	Types    map[string][]*ServiceEntity `json:"types"`
	Keywords KeywordIndex                `json:"keywords"`
}

// Catalog is the full payload served to the presentation layer.
type Catalog struct {
	Services    []*ServiceEntity `json:"services"`
	Index       CategoryIndex    `json:"index"`
	GeneratedAt time.Time        `json:"generated_at"`
}
