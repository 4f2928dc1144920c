package monitoring

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/dcastano/jobtrackr-be/internal/services"
)

// Janitor periodically prunes old activity events on a cron schedule.
type Janitor struct {
	events    services.EventServiceProvider
	schedule  cron.Schedule
	retention time.Duration
	nextRun   time.Time
	ticker    *time.Ticker
	done      chan bool
}

// NewJanitor creates a janitor from a standard cron expression and a
// retention window in days.
func NewJanitor(events services.EventServiceProvider, cronExpr string, retentionDays int) (*Janitor, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, err
	}
	return &Janitor{
		events:    events,
		schedule:  schedule,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		nextRun:   schedule.Next(time.Now()),
		done:      make(chan bool),
	}, nil
}

// Run starts the janitor's ticking loop.
func (j *Janitor) Run() {
	log.Info().Time("next_run", j.nextRun).Msg("Starting background janitor...")
	j.ticker = time.NewTicker(1 * time.Minute)
	defer j.ticker.Stop()

	for {
		select {
		case <-j.done:
			log.Info().Msg("Stopping background janitor.")
			return
		case <-j.ticker.C:
			now := time.Now()
			if now.After(j.nextRun) {
				j.prune(now)
				j.nextRun = j.schedule.Next(now)
			}
		}
	}
}

// Stop halts the janitor.
func (j *Janitor) Stop() {
	j.done <- true
}

func (j *Janitor) prune(now time.Time) {
	cutoff := now.Add(-j.retention)
	removed, err := j.events.PruneOlderThan(cutoff)
	if err != nil {
		log.Error().Err(err).Msg("Janitor: failed to prune activity events")
		return
	}
	if removed > 0 {
		log.Info().Int64("removed", removed).Time("cutoff", cutoff).Msg("Janitor: pruned activity events")
	}
}
