// Package model defines the data types exchanged with the scoring service.
package model

import (
	"fmt"

	"github.com/twpayne/go-geom/encoding/geojson"
)

// Neighborhood is a named city region. It is immutable once loaded.
type Neighborhood struct {
	CreatedAt Timestamp         `json:"created_at"`
	Geometry  *geojson.Geometry `json:"geometry,omitempty"`
	Scores    *Score            `json:"scores,omitempty"` // current score, embedded by the list endpoint
	Name      string            `json:"name"`
	ID        int               `json:"id"`
}

// Validate ensures the Neighborhood carries the fields the map needs.
func (n *Neighborhood) Validate() error {
	if n.ID <= 0 {
		return fmt.Errorf("neighborhood id must be positive, got %d", n.ID)
	}
	if n.Name == "" {
		return fmt.Errorf("neighborhood %d has no name", n.ID)
	}
	return nil
}
