package usecase

import "StockPulse/internal/domain/models"

// SentimentScore sums headline sentiment: +1 positive, -1 negative, 0
// neutral or unknown.
func SentimentScore(items []models.NewsItem) int {
	score := 0
	for _, it := range items {
		switch it.Sentiment {
		case models.SentimentPositive:
			score++
		case models.SentimentNegative:
			score--
		}
	}
	return score
}
