package alphavantage

import "github.com/rs/zerolog"

// ResetJob restores the daily API request budget. Scheduled at midnight.
type ResetJob struct {
	client *Client
	log    zerolog.Logger
}

// NewResetJob creates a reset job for the given client.
func NewResetJob(client *Client, log zerolog.Logger) *ResetJob {
	return &ResetJob{
		client: client,
		log:    log.With().Str("job", "alphavantage_counter_reset").Logger(),
	}
}

// Run resets the request counter.
func (j *ResetJob) Run() error {
	j.client.ResetDailyCounter()
	j.log.Info().Int("remaining", j.client.GetRemainingRequests()).Msg("API request budget reset")
	return nil
}

// Name returns the job name for scheduler logging.
func (j *ResetJob) Name() string {
	return "alphavantage_counter_reset"
}
