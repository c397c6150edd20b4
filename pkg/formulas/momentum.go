package formulas

// CalculateChangePercent calculates the percentage change between the current
// close and the close N trading days ago. Returns nil if the series is too
// short or the reference price is zero.
func CalculateChangePercent(closes []float64, daysAgo int) *float64 {
	if len(closes) < daysAgo+1 {
		return nil
	}

	current := closes[len(closes)-1]
	past := closes[len(closes)-1-daysAgo]
	if past == 0 {
		return nil
	}

	change := (current - past) / past * 100
	return &change
}
