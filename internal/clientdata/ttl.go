package clientdata

import "time"

// TTL constants for different data types.
// These are added to time.Now() when storing to calculate expires_at.
const (
	// Weekly-ish data (changes with filings, not intraday)
	TTLOverview = 7 * 24 * time.Hour // Company overview, P/E, market cap

	// Sub-hour data (time-sensitive signals)
	TTLQuote       = 15 * time.Minute // Current price quotes
	TTLDailySeries = time.Hour        // Daily close history for indicators
	TTLNews        = 2 * time.Hour    // Headlines with sentiment scores

	// Sub-day data
	TTLAnalystOpinions = 4 * time.Hour  // Analyst opinions and consensus inputs
	TTLSnapshot        = 24 * time.Hour // Stored portfolio analysis snapshots
)
