package models

// Direction is the forecast call for the next timeframe.
type Direction string

const (
	DirectionUp      Direction = "up"
	DirectionDown    Direction = "down"
	DirectionNeutral Direction = "neutral"
)

// Forecast is the heuristic short-horizon prediction. Confidence is a
// heuristic scalar in [0.5, 0.8], not a statistical probability.
type Forecast struct {
	Direction  Direction `json:"direction"`
	Confidence float64   `json:"confidence"`
	NextTarget float64   `json:"next_target"`
	Timeframe  string    `json:"timeframe"`
}
