package usecase

import (
	"fmt"
	"math"

	"StockPulse/internal/domain/models"
)

// ForecastEngine produces heuristic next-period price forecasts from the
// lookback window and headline sentiment.
type ForecastEngine struct {
	neutralDrift float64
	timeframe    string
}

// NewForecastEngine creates an engine. neutralDrift scales the projected
// move when trend and sentiment disagree; timeframe labels the horizon of
// every forecast (e.g. "24h").
func NewForecastEngine(neutralDrift float64, timeframe string) *ForecastEngine {
	return &ForecastEngine{neutralDrift: neutralDrift, timeframe: timeframe}
}

// Predict combines the price trend against the window average with the
// sentiment score. An empty window cannot support a forecast.
func (e *ForecastEngine) Predict(currentPrice float64, history []models.HistoricalPoint, news []models.NewsItem) (*models.Forecast, error) {
	prices := models.Prices(history)
	if len(prices) == 0 {
		return nil, fmt.Errorf("forecast %s window: %w", e.timeframe, models.ErrInsufficientData)
	}

	avg := mean(prices)
	trend := models.DirectionDown
	if currentPrice > avg {
		trend = models.DirectionUp
	}

	score := SentimentScore(news)

	direction := models.DirectionNeutral
	if (trend == models.DirectionUp && score >= 0) || (trend == models.DirectionDown && score < 0) {
		direction = trend
	}

	n := len(news)
	if n < 1 {
		n = 1
	}
	confidence := 0.5 + (math.Abs(float64(score))/float64(n))*0.3

	volatility := 0.0
	if avg != 0 {
		volatility = popStdDev(prices, avg) / avg
	}

	var move float64
	switch direction {
	case models.DirectionUp:
		move = currentPrice * volatility
	case models.DirectionDown:
		move = -currentPrice * volatility
	default:
		move = currentPrice * volatility * e.neutralDrift
	}

	return &models.Forecast{
		Direction:  direction,
		Confidence: confidence,
		NextTarget: currentPrice + move,
		Timeframe:  e.timeframe,
	}, nil
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// popStdDev is the population standard deviation around the given mean.
func popStdDev(xs []float64, mean float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		d := x - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)))
}
