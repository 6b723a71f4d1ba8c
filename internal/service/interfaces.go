// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/housefly/internal/model"
)

// ScoringService is the read contract of the external scoring service.
// Implementations must be safe for concurrent use; every call is a fresh
// round trip with no caching or retries.
type ScoringService interface {
	// Neighborhood operations
	ListNeighborhoods(ctx context.Context) ([]model.Neighborhood, error)
	GetNeighborhood(ctx context.Context, id int) (*model.Neighborhood, error)
	GetNeighborhoodScore(ctx context.Context, id int) (*model.Score, error)

	// Score operations
	ListScores(ctx context.Context) ([]model.Score, error)
	GetBreakdown(ctx context.Context, neighborhoodID int) (*model.ScoreBreakdown, error)

	// GetProjection sends the horizon as a hint; the response always carries
	// all three horizons.
	GetProjection(ctx context.Context, neighborhoodID int, horizon model.Horizon) (*model.ScoreProjection, error)
}

// Refresher triggers the service's data refresh pipeline.
type Refresher interface {
	TriggerRefresh(ctx context.Context) (*model.RefreshStatus, error)
}
