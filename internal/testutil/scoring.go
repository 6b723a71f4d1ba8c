// Package testutil provides test doubles for the scoring service.
package testutil

import (
	"context"
	"net/http"
	"sync"

	"github.com/Veraticus/housefly/internal/common"
	"github.com/Veraticus/housefly/internal/model"
)

// Call records one request made against FakeScoring.
type Call struct {
	Op             string
	NeighborhoodID int
	Horizon        model.Horizon
}

// Operation names used in Call.Op and FakeScoring.Errs.
const (
	OpListNeighborhoods = "ListNeighborhoods"
	OpGetNeighborhood   = "GetNeighborhood"
	OpGetScore          = "GetNeighborhoodScore"
	OpListScores        = "ListScores"
	OpGetBreakdown      = "GetBreakdown"
	OpGetProjection     = "GetProjection"
	OpTriggerRefresh    = "TriggerRefresh"
)

// FakeScoring is an in-memory scoring service. It is safe for concurrent use.
type FakeScoring struct {
	Errs          map[string]error
	Breakdowns    map[int]*model.ScoreBreakdown
	Projections   map[int]*model.ScoreProjection
	Neighborhoods []model.Neighborhood
	Scores        []model.Score
	calls         []Call
	mu            sync.Mutex
}

// NewFakeScoring returns an empty fake.
func NewFakeScoring() *FakeScoring {
	return &FakeScoring{
		Errs:        make(map[string]error),
		Breakdowns:  make(map[int]*model.ScoreBreakdown),
		Projections: make(map[int]*model.ScoreProjection),
	}
}

func (f *FakeScoring) record(c Call) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	return f.Errs[c.Op]
}

// SetErr makes every later call of op fail with err. A nil err clears it.
func (f *FakeScoring) SetErr(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.Errs, op)
		return
	}
	f.Errs[op] = err
}

// Calls returns a copy of the recorded calls.
func (f *FakeScoring) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallCount counts recorded calls of one operation.
func (f *FakeScoring) CallCount(op string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Op == op {
			n++
		}
	}
	return n
}

// ListNeighborhoods implements service.ScoringService.
func (f *FakeScoring) ListNeighborhoods(_ context.Context) ([]model.Neighborhood, error) {
	if err := f.record(Call{Op: OpListNeighborhoods}); err != nil {
		return nil, err
	}
	return append([]model.Neighborhood(nil), f.Neighborhoods...), nil
}

// GetNeighborhood implements service.ScoringService.
func (f *FakeScoring) GetNeighborhood(_ context.Context, id int) (*model.Neighborhood, error) {
	if err := f.record(Call{Op: OpGetNeighborhood, NeighborhoodID: id}); err != nil {
		return nil, err
	}
	for _, n := range f.Neighborhoods {
		if n.ID == id {
			return &n, nil
		}
	}
	return nil, notFound(OpGetNeighborhood, "Neighborhood not found")
}

// GetNeighborhoodScore implements service.ScoringService.
func (f *FakeScoring) GetNeighborhoodScore(_ context.Context, id int) (*model.Score, error) {
	if err := f.record(Call{Op: OpGetScore, NeighborhoodID: id}); err != nil {
		return nil, err
	}
	for _, s := range f.Scores {
		if s.NeighborhoodID == id {
			return &s, nil
		}
	}
	return nil, notFound(OpGetScore, "Score not found")
}

// ListScores implements service.ScoringService.
func (f *FakeScoring) ListScores(_ context.Context) ([]model.Score, error) {
	if err := f.record(Call{Op: OpListScores}); err != nil {
		return nil, err
	}
	return append([]model.Score(nil), f.Scores...), nil
}

// GetBreakdown implements service.ScoringService.
func (f *FakeScoring) GetBreakdown(_ context.Context, id int) (*model.ScoreBreakdown, error) {
	if err := f.record(Call{Op: OpGetBreakdown, NeighborhoodID: id}); err != nil {
		return nil, err
	}
	f.mu.Lock()
	b, ok := f.Breakdowns[id]
	f.mu.Unlock()
	if !ok {
		return nil, notFound(OpGetBreakdown, "Score not found")
	}
	out := *b
	return &out, nil
}

// GetProjection implements service.ScoringService. The stored projection is
// returned for every horizon.
func (f *FakeScoring) GetProjection(_ context.Context, id int, h model.Horizon) (*model.ScoreProjection, error) {
	if err := f.record(Call{Op: OpGetProjection, NeighborhoodID: id, Horizon: h}); err != nil {
		return nil, err
	}
	f.mu.Lock()
	p, ok := f.Projections[id]
	f.mu.Unlock()
	if !ok {
		return nil, notFound(OpGetProjection, "Score not found")
	}
	out := *p
	return &out, nil
}

// TriggerRefresh implements service.Refresher.
func (f *FakeScoring) TriggerRefresh(_ context.Context) (*model.RefreshStatus, error) {
	if err := f.record(Call{Op: OpTriggerRefresh}); err != nil {
		return nil, err
	}
	return &model.RefreshStatus{Status: "success", Message: "Scores refreshed"}, nil
}

func notFound(op, detail string) error {
	return &common.ServiceError{
		Op:         op,
		StatusCode: http.StatusNotFound,
		Message:    detail,
	}
}
