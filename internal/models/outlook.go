package models

// Market outlook scale, ordered from most negative to most positive.
const (
	OutlookVeryNegative     = "very_negative"
	OutlookNegative         = "negative"
	OutlookSlightlyNegative = "slightly_negative"
	OutlookNeutral          = "neutral"
	OutlookSlightlyPositive = "slightly_positive"
	OutlookPositive         = "positive"
	OutlookVeryPositive     = "very_positive"
)

var outlookScores = map[string]float64{
	OutlookVeryPositive:     0.9,
	OutlookPositive:         0.6,
	OutlookSlightlyPositive: 0.3,
	OutlookNeutral:          0.0,
	OutlookSlightlyNegative: -0.3,
	OutlookNegative:         -0.6,
	OutlookVeryNegative:     -0.9,
}

// SentimentScore projects an outlook onto [-1, 1]. Unknown outlooks score 0.
func SentimentScore(outlook string) float64 {
	return outlookScores[outlook]
}
