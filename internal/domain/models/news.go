package models

import "time"

// Sentiment is a per-article polarity label.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// NewsItem is a normalized news article. PublishedRelative ("2h ago") is
// derived from PublishedAt at response time; providers leave it empty.
type NewsItem struct {
	Title             string    `json:"title"`
	Source            string    `json:"source"`
	Sentiment         Sentiment `json:"sentiment"`
	PublishedAt       time.Time `json:"published_at"`
	PublishedRelative string    `json:"published_relative,omitempty"`
}
