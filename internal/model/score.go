package model

import "fmt"

// Score is the current profitability calculation for one neighborhood.
// Sub-scores are normalized to [0,1]; ProfitabilityScore is on [0,100].
type Score struct {
	CalculatedAt        Timestamp `json:"calculated_at"`
	ID                  int       `json:"id"`
	NeighborhoodID      int       `json:"neighborhood_id"`
	CrimeScore          float64   `json:"crime_score"`
	InfrastructureScore float64   `json:"infrastructure_score"`
	DemographicScore    float64   `json:"demographic_score"`
	SentimentScore      float64   `json:"sentiment_score"`
	ProfitabilityScore  float64   `json:"profitability_score"`
}

// Validate checks that the score can be joined to a neighborhood.
func (s *Score) Validate() error {
	if s.NeighborhoodID <= 0 {
		return fmt.Errorf("score %d has no neighborhood_id", s.ID)
	}
	return nil
}

// ScoreBreakdown is a Score joined with its neighborhood's name. Display only.
type ScoreBreakdown struct {
	CalculatedAt        Timestamp `json:"calculated_at"`
	NeighborhoodName    string    `json:"neighborhood_name"`
	NeighborhoodID      int       `json:"neighborhood_id"`
	CrimeScore          float64   `json:"crime_score"`
	InfrastructureScore float64   `json:"infrastructure_score"`
	DemographicScore    float64   `json:"demographic_score"`
	SentimentScore      float64   `json:"sentiment_score"`
	ProfitabilityScore  float64   `json:"profitability_score"`
}

// Validate checks the breakdown refers to a neighborhood.
func (b *ScoreBreakdown) Validate() error {
	if b.NeighborhoodID <= 0 {
		return fmt.Errorf("breakdown has no neighborhood_id")
	}
	return nil
}

// ScoresByNeighborhood indexes scores by neighborhood id. When the snapshot
// holds more than one score for a neighborhood the last one wins.
func ScoresByNeighborhood(scores []Score) map[int]Score {
	index := make(map[int]Score, len(scores))
	for _, s := range scores {
		index[s.NeighborhoodID] = s
	}
	return index
}
