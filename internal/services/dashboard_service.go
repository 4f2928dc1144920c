package services

import (
	"database/sql"
	"time"

	"github.com/dcastano/jobtrackr-be/internal/models"
)

// DashboardServiceProvider defines the interface for the aggregation service.
type DashboardServiceProvider interface {
	GetDashboardSummary(userID string) (models.DashboardSummary, error)
	GetJobStats(userID string) (models.JobStats, error)
	GetPrepStats(userID string) (models.PrepStats, error)
}

// histogramDays is the size of the rolling per-day window on the stats
// endpoints.
const histogramDays = 30

// DashboardService derives the summary statistics rendered on the dashboard
// and the stats pages. Every summary is all-or-nothing: the first storage
// failure aborts the whole operation.
type DashboardService struct {
	db  *sql.DB
	now func() time.Time
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(db *sql.DB) *DashboardService {
	return &DashboardService{db: db, now: time.Now}
}

// GetDashboardSummary collects the metric, job, challenge and prep snapshots
// that the dashboard renders in one response.
func (s *DashboardService) GetDashboardSummary(userID string) (models.DashboardSummary, error) {
	now := s.now()
	summary := models.DashboardSummary{}

	metrics, err := s.metricSummaries(userID)
	if err != nil {
		return models.DashboardSummary{}, err
	}
	summary.Metrics = metrics

	appliedDates, tally, err := s.jobTally(userID)
	if err != nil {
		return models.DashboardSummary{}, err
	}
	summary.JobStats = tally

	challenges, err := s.activeChallenges(userID, now)
	if err != nil {
		return models.DashboardSummary{}, err
	}
	summary.Challenges = challenges

	recent, err := s.recentPrep(userID)
	if err != nil {
		return models.DashboardSummary{}, err
	}
	summary.RecentPrep = recent

	// Streak flags compare local calendar days, matching what the user
	// perceives as "today" in their dashboard.
	today := truncateToDay(now)
	yesterday := today.AddDate(0, 0, -1)
	for _, applied := range appliedDates {
		day := truncateToDay(applied.In(now.Location()))
		if day.Equal(today) {
			summary.Streak.HasAppliedToday = true
		}
		if day.Equal(yesterday) {
			summary.Streak.HasAppliedYesterday = true
		}
	}

	return summary, nil
}

// GetJobStats tallies a user's applications by status and buckets them into
// the rolling 30-day histogram.
func (s *DashboardService) GetJobStats(userID string) (models.JobStats, error) {
	rows, err := s.db.Query("SELECT status, applied_date FROM job_applications WHERE user_id = ?", userID)
	if err != nil {
		return models.JobStats{}, err
	}
	defer rows.Close()

	now := s.now()
	stats := models.JobStats{
		StatusCounts:       make(map[string]int, len(models.JobStatuses)),
		ApplicationsPerDay: emptyHistogram(now),
	}
	for _, status := range models.JobStatuses {
		stats.StatusCounts[status] = 0
	}

	windowStart := now.AddDate(0, 0, -histogramDays)
	for rows.Next() {
		var status string
		var appliedDate time.Time
		if err := rows.Scan(&status, &appliedDate); err != nil {
			return models.JobStats{}, err
		}

		stats.TotalApplications++
		if _, ok := stats.StatusCounts[status]; ok {
			stats.StatusCounts[status]++
		}
		bucketRecord(stats.ApplicationsPerDay, appliedDate, windowStart)
	}
	if err := rows.Err(); err != nil {
		return models.JobStats{}, err
	}
	return stats, nil
}

// GetPrepStats tallies a user's prep activities by type, averages self
// ratings per type and buckets activity into the rolling 30-day histogram.
func (s *DashboardService) GetPrepStats(userID string) (models.PrepStats, error) {
	rows, err := s.db.Query("SELECT type, date, self_rating FROM prep_activities WHERE user_id = ?", userID)
	if err != nil {
		return models.PrepStats{}, err
	}
	defer rows.Close()

	now := s.now()
	stats := models.PrepStats{
		TypeCounts:       make(map[string]int, len(models.PrepTypes)),
		TypeRatings:      make(map[string]float64, len(models.PrepTypes)),
		ActivitiesPerDay: emptyHistogram(now),
	}
	ratingSums := make(map[string]int)
	ratingCounts := make(map[string]int)
	for _, prepType := range models.PrepTypes {
		stats.TypeCounts[prepType] = 0
		stats.TypeRatings[prepType] = 0
	}

	windowStart := now.AddDate(0, 0, -histogramDays)
	for rows.Next() {
		var prepType string
		var date time.Time
		var selfRating sql.NullInt64
		if err := rows.Scan(&prepType, &date, &selfRating); err != nil {
			return models.PrepStats{}, err
		}

		stats.TotalActivities++
		if _, ok := stats.TypeCounts[prepType]; ok {
			stats.TypeCounts[prepType]++
			if selfRating.Valid {
				ratingSums[prepType] += int(selfRating.Int64)
				ratingCounts[prepType]++
			}
		}
		bucketRecord(stats.ActivitiesPerDay, date, windowStart)
	}
	if err := rows.Err(); err != nil {
		return models.PrepStats{}, err
	}

	// Types with no rated activity stay at 0 rather than dividing by zero.
	for prepType, count := range ratingCounts {
		if count > 0 {
			stats.TypeRatings[prepType] = float64(ratingSums[prepType]) / float64(count)
		}
	}
	return stats, nil
}

func (s *DashboardService) metricSummaries(userID string) ([]models.MetricSummary, error) {
	rows, err := s.db.Query("SELECT id, name, current, target, unit FROM metrics WHERE user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metrics := []models.MetricSummary{}
	for rows.Next() {
		var m models.MetricSummary
		if err := rows.Scan(&m.ID, &m.Name, &m.Current, &m.Target, &m.Unit); err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

// jobTally counts a user's applications by status and returns the applied
// dates so the caller can derive the streak flags in one pass.
func (s *DashboardService) jobTally(userID string) ([]time.Time, models.JobStatusTally, error) {
	rows, err := s.db.Query("SELECT status, applied_date FROM job_applications WHERE user_id = ?", userID)
	if err != nil {
		return nil, models.JobStatusTally{}, err
	}
	defer rows.Close()

	var appliedDates []time.Time
	var tally models.JobStatusTally
	for rows.Next() {
		var status string
		var appliedDate time.Time
		if err := rows.Scan(&status, &appliedDate); err != nil {
			return nil, models.JobStatusTally{}, err
		}
		tally.TotalApplications++
		switch status {
		case models.StatusInterview:
			tally.Interviews++
		case models.StatusOffer:
			tally.Offers++
		case models.StatusRejected:
			tally.Rejected++
		}
		appliedDates = append(appliedDates, appliedDate)
	}
	return appliedDates, tally, rows.Err()
}

// activeChallenges returns the three most urgent open challenges.
func (s *DashboardService) activeChallenges(userID string, now time.Time) ([]models.ChallengeSummary, error) {
	rows, err := s.db.Query(
		"SELECT id, name, current, target, end_date FROM challenges WHERE user_id = ? AND end_date >= ? AND is_completed = 0 ORDER BY end_date ASC LIMIT 3",
		userID, now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	challenges := []models.ChallengeSummary{}
	for rows.Next() {
		var c models.ChallengeSummary
		if err := rows.Scan(&c.ID, &c.Name, &c.Current, &c.Target, &c.EndDate); err != nil {
			return nil, err
		}
		challenges = append(challenges, c)
	}
	return challenges, rows.Err()
}

func (s *DashboardService) recentPrep(userID string) ([]models.PrepActivity, error) {
	rows, err := s.db.Query(
		"SELECT "+prepColumns+" FROM prep_activities WHERE user_id = ? ORDER BY date DESC LIMIT 5",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []models.PrepActivity{}
	for rows.Next() {
		activity, err := scanPrepActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}
	return activities, rows.Err()
}

// emptyHistogram seeds a bucket for today and the preceding 29 UTC calendar
// days, all at zero.
func emptyHistogram(now time.Time) map[string]int {
	buckets := make(map[string]int, histogramDays)
	day := now.UTC()
	for i := 0; i < histogramDays; i++ {
		buckets[day.AddDate(0, 0, -i).Format("2006-01-02")] = 0
	}
	return buckets
}

// bucketRecord increments the histogram bucket for a record's UTC day.
// Records before the window start, and records whose day has no pre-seeded
// bucket, are silently left out of the histogram (but never out of totals).
func bucketRecord(buckets map[string]int, date time.Time, windowStart time.Time) {
	if date.Before(windowStart) {
		return
	}
	key := date.UTC().Format("2006-01-02")
	if _, ok := buckets[key]; ok {
		buckets[key]++
	}
}

// truncateToDay strips the time-of-day component in the local calendar.
func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
