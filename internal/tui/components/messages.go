package components

import (
	"sync/atomic"

	"github.com/Veraticus/housefly/internal/model"
)

// requestSeq issues request tokens. It is shared by every component so a
// token is never reused, even across panel instances.
var requestSeq atomic.Uint64

func nextRequestToken() uint64 {
	return requestSeq.Add(1)
}

// MapDataLoadedMsg carries the neighborhood list and score snapshot.
// On partial failure the successful half is still present and Err is set.
type MapDataLoadedMsg struct {
	Err           error
	Neighborhoods []model.Neighborhood
	Scores        []model.Score
	Token         uint64
}

// NeighborhoodSelectedMsg is sent when a neighborhood is clicked.
type NeighborhoodSelectedMsg struct {
	Neighborhood model.Neighborhood
}

// BreakdownLoadedMsg completes a breakdown fetch.
type BreakdownLoadedMsg struct {
	Err            error
	Breakdown      *model.ScoreBreakdown
	Token          uint64
	NeighborhoodID int
}

// ProjectionLoadedMsg completes a projection fetch.
type ProjectionLoadedMsg struct {
	Err            error
	Projection     *model.ScoreProjection
	Token          uint64
	NeighborhoodID int
	Horizon        model.Horizon
}

// HorizonSelectedMsg is emitted by the horizon selector. Panel names the
// panel it belongs to; Seq orders selections so an older one never undoes a
// newer one.
type HorizonSelectedMsg struct {
	Panel   uint64
	Seq     uint64
	Horizon model.Horizon
}

// PanelClosedMsg is sent when the detail panel is dismissed.
type PanelClosedMsg struct{}
