package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dcastano/jobtrackr-be/internal/models"
)

// MetricServiceProvider defines the interface for metric services.
type MetricServiceProvider interface {
	GetMetricsForUser(userID string) ([]models.Metric, error)
	GetMetricByID(id, userID string) (models.Metric, error)
	CreateMetric(metric models.Metric) (models.Metric, error)
	UpdateMetric(id, userID string, in models.Metric) (models.Metric, error)
	DeleteMetric(id, userID string) error
	AddLog(metricID, userID string, value float64, note *string, date *time.Time) (models.MetricLog, error)
}

// recentLogLimit bounds the embedded log history on metric listings; the
// charts only ever render the last 30 entries.
const recentLogLimit = 30

// MetricService provides business logic for metric management.
type MetricService struct {
	db     *sql.DB
	events EventServiceProvider
}

// NewMetricService creates a new MetricService.
func NewMetricService(db *sql.DB, events EventServiceProvider) *MetricService {
	return &MetricService{db: db, events: events}
}

// GetMetricsForUser retrieves all metrics owned by a user, each with its
// most recent log entries attached.
func (s *MetricService) GetMetricsForUser(userID string) ([]models.Metric, error) {
	rows, err := s.db.Query(
		"SELECT id, name, description, target, current, unit, end_date, user_id, created_at FROM metrics WHERE user_id = ?",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metrics := []models.Metric{}
	for rows.Next() {
		metric, err := scanMetric(rows)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, metric)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range metrics {
		logs, err := s.getLogs(metrics[i].ID, recentLogLimit)
		if err != nil {
			return nil, err
		}
		metrics[i].Logs = logs
	}
	return metrics, nil
}

// GetMetricByID retrieves a single metric with its full log history. The row
// is fetched regardless of owner so a missing row and a foreign row produce
// distinct errors.
func (s *MetricService) GetMetricByID(id, userID string) (models.Metric, error) {
	metric, err := s.fetchMetric(id)
	if err != nil {
		return models.Metric{}, err
	}
	if metric.UserID != userID {
		return models.Metric{}, models.ErrNotAuthorized
	}

	logs, err := s.getLogs(id, 0)
	if err != nil {
		return models.Metric{}, err
	}
	metric.Logs = logs
	return metric, nil
}

// CreateMetric creates a new metric for its owner, starting at zero progress.
func (s *MetricService) CreateMetric(metric models.Metric) (models.Metric, error) {
	metric.ID = uuid.New().String()
	metric.Current = 0

	stmt, err := s.db.Prepare(
		"INSERT INTO metrics (id, name, description, target, current, unit, end_date, user_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return models.Metric{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(metric.ID, metric.Name, metric.Description, metric.Target, metric.Current, metric.Unit, metric.EndDate, metric.UserID)
	if err != nil {
		return models.Metric{}, err
	}

	s.events.CreateEvent(metric.UserID, "metric.create", "info", fmt.Sprintf("Metric '%s' created.", metric.Name), &metric.ID)
	return s.GetMetricByID(metric.ID, metric.UserID)
}

// UpdateMetric replaces a metric's fields after the ownership check. A nil
// end date keeps the existing one.
func (s *MetricService) UpdateMetric(id, userID string, in models.Metric) (models.Metric, error) {
	existing, err := s.fetchMetric(id)
	if err != nil {
		return models.Metric{}, err
	}
	if existing.UserID != userID {
		return models.Metric{}, models.ErrNotAuthorized
	}

	endDate := in.EndDate
	if endDate == nil {
		endDate = existing.EndDate
	}

	_, err = s.db.Exec(
		"UPDATE metrics SET name = ?, description = ?, target = ?, current = ?, unit = ?, end_date = ? WHERE id = ?",
		in.Name, in.Description, in.Target, in.Current, in.Unit, endDate, id,
	)
	if err != nil {
		return models.Metric{}, err
	}

	s.events.CreateEvent(userID, "metric.update", "info", fmt.Sprintf("Metric '%s' updated.", in.Name), &id)
	return s.GetMetricByID(id, userID)
}

// DeleteMetric removes a metric and its log entries.
func (s *MetricService) DeleteMetric(id, userID string) error {
	existing, err := s.fetchMetric(id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return models.ErrNotAuthorized
	}

	// Logs reference the metric, so they go first.
	if _, err := s.db.Exec("DELETE FROM metric_logs WHERE metric_id = ?", id); err != nil {
		return err
	}
	if _, err := s.db.Exec("DELETE FROM metrics WHERE id = ?", id); err != nil {
		return err
	}

	s.events.CreateEvent(userID, "metric.delete", "info", fmt.Sprintf("Metric '%s' deleted.", existing.Name), &id)
	return nil
}

// AddLog records a new log entry and applies its delta to the parent
// metric's current value. Both writes happen in one transaction so
// concurrent submissions cannot lose an increment.
func (s *MetricService) AddLog(metricID, userID string, value float64, note *string, date *time.Time) (models.MetricLog, error) {
	existing, err := s.fetchMetric(metricID)
	if err != nil {
		return models.MetricLog{}, err
	}
	if existing.UserID != userID {
		return models.MetricLog{}, models.ErrNotAuthorized
	}

	entry := models.MetricLog{
		ID:       uuid.New().String(),
		Value:    value,
		Note:     note,
		Date:     time.Now(),
		MetricID: metricID,
	}
	if date != nil {
		entry.Date = *date
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.MetricLog{}, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO metric_logs (id, value, note, date, metric_id) VALUES (?, ?, ?, ?, ?)",
		entry.ID, entry.Value, entry.Note, entry.Date, entry.MetricID,
	)
	if err != nil {
		return models.MetricLog{}, err
	}

	_, err = tx.Exec("UPDATE metrics SET current = current + ? WHERE id = ?", value, metricID)
	if err != nil {
		return models.MetricLog{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.MetricLog{}, err
	}

	s.events.CreateEvent(userID, "metric.log", "info", fmt.Sprintf("Progress logged for '%s'.", existing.Name), &metricID)
	return entry, nil
}

// fetchMetric loads a metric row by ID with no owner filter.
func (s *MetricService) fetchMetric(id string) (models.Metric, error) {
	row := s.db.QueryRow(
		"SELECT id, name, description, target, current, unit, end_date, user_id, created_at FROM metrics WHERE id = ?",
		id,
	)
	metric, err := scanMetric(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Metric{}, models.ErrNotFound
		}
		return models.Metric{}, err
	}
	return metric, nil
}

// getLogs returns a metric's log entries, newest first. A limit of 0 means
// no limit.
func (s *MetricService) getLogs(metricID string, limit int) ([]models.MetricLog, error) {
	query := "SELECT id, value, note, date, metric_id FROM metric_logs WHERE metric_id = ? ORDER BY date DESC"
	args := []interface{}{metricID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []models.MetricLog{}
	for rows.Next() {
		var entry models.MetricLog
		var note sql.NullString
		if err := rows.Scan(&entry.ID, &entry.Value, &note, &entry.Date, &entry.MetricID); err != nil {
			return nil, err
		}
		if note.Valid {
			entry.Note = &note.String
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMetric(row rowScanner) (models.Metric, error) {
	var metric models.Metric
	var description sql.NullString
	var endDate sql.NullTime
	err := row.Scan(&metric.ID, &metric.Name, &description, &metric.Target, &metric.Current, &metric.Unit, &endDate, &metric.UserID, &metric.CreatedAt)
	if err != nil {
		return models.Metric{}, err
	}
	if description.Valid {
		metric.Description = &description.String
	}
	if endDate.Valid {
		metric.EndDate = &endDate.Time
	}
	return metric, nil
}
