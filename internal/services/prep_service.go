package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dcastano/jobtrackr-be/internal/models"
)

// PrepServiceProvider defines the interface for prep activity services.
type PrepServiceProvider interface {
	GetActivitiesForUser(userID string) ([]models.PrepActivity, error)
	GetActivityByID(id, userID string) (models.PrepActivity, error)
	CreateActivity(activity models.PrepActivity) (models.PrepActivity, error)
	UpdateActivity(id, userID string, in models.PrepActivity) (models.PrepActivity, error)
	DeleteActivity(id, userID string) error
}

// PrepService provides business logic for prep activity tracking.
type PrepService struct {
	db     *sql.DB
	events EventServiceProvider
}

// NewPrepService creates a new PrepService.
func NewPrepService(db *sql.DB, events EventServiceProvider) *PrepService {
	return &PrepService{db: db, events: events}
}

const prepColumns = "id, type, date, self_rating, notes, user_id, created_at"

// GetActivitiesForUser retrieves all prep activities owned by a user,
// newest first.
func (s *PrepService) GetActivitiesForUser(userID string) ([]models.PrepActivity, error) {
	rows, err := s.db.Query(
		"SELECT "+prepColumns+" FROM prep_activities WHERE user_id = ? ORDER BY date DESC",
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

// GetActivityByID retrieves a single prep activity after the ownership check.
func (s *PrepService) GetActivityByID(id, userID string) (models.PrepActivity, error) {
	activity, err := s.fetchActivity(id)
	if err != nil {
		return models.PrepActivity{}, err
	}
	if activity.UserID != userID {
		return models.PrepActivity{}, models.ErrNotAuthorized
	}
	return activity, nil
}

// CreateActivity records a new prep activity. The date defaults to now when
// unset.
func (s *PrepService) CreateActivity(activity models.PrepActivity) (models.PrepActivity, error) {
	activity.ID = uuid.New().String()
	if activity.Date.IsZero() {
		activity.Date = time.Now()
	}

	stmt, err := s.db.Prepare(
		"INSERT INTO prep_activities (id, type, date, self_rating, notes, user_id) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return models.PrepActivity{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(activity.ID, activity.Type, activity.Date, activity.SelfRating, activity.Notes, activity.UserID)
	if err != nil {
		return models.PrepActivity{}, err
	}

	s.events.CreateEvent(activity.UserID, "prep.create", "info", fmt.Sprintf("%s session logged.", activity.Type), &activity.ID)
	return s.GetActivityByID(activity.ID, activity.UserID)
}

// UpdateActivity replaces a prep activity's fields after the ownership
// check. A zero date keeps the existing one.
func (s *PrepService) UpdateActivity(id, userID string, in models.PrepActivity) (models.PrepActivity, error) {
	existing, err := s.fetchActivity(id)
	if err != nil {
		return models.PrepActivity{}, err
	}
	if existing.UserID != userID {
		return models.PrepActivity{}, models.ErrNotAuthorized
	}

	date := in.Date
	if date.IsZero() {
		date = existing.Date
	}

	_, err = s.db.Exec(
		"UPDATE prep_activities SET type = ?, date = ?, self_rating = ?, notes = ? WHERE id = ?",
		in.Type, date, in.SelfRating, in.Notes, id,
	)
	if err != nil {
		return models.PrepActivity{}, err
	}

	s.events.CreateEvent(userID, "prep.update", "info", fmt.Sprintf("%s session updated.", in.Type), &id)
	return s.GetActivityByID(id, userID)
}

// DeleteActivity removes a prep activity.
func (s *PrepService) DeleteActivity(id, userID string) error {
	existing, err := s.fetchActivity(id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return models.ErrNotAuthorized
	}

	if _, err := s.db.Exec("DELETE FROM prep_activities WHERE id = ?", id); err != nil {
		return err
	}

	s.events.CreateEvent(userID, "prep.delete", "info", fmt.Sprintf("%s session removed.", existing.Type), &id)
	return nil
}

// fetchActivity loads a prep activity row by ID with no owner filter.
func (s *PrepService) fetchActivity(id string) (models.PrepActivity, error) {
	row := s.db.QueryRow("SELECT "+prepColumns+" FROM prep_activities WHERE id = ?", id)
	activity, err := scanPrepActivity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PrepActivity{}, models.ErrNotFound
		}
		return models.PrepActivity{}, err
	}
	return activity, nil
}

func scanPrepActivity(row rowScanner) (models.PrepActivity, error) {
	var activity models.PrepActivity
	var selfRating sql.NullInt64
	var notes sql.NullString
	err := row.Scan(&activity.ID, &activity.Type, &activity.Date, &selfRating, &notes, &activity.UserID, &activity.CreatedAt)
	if err != nil {
		return models.PrepActivity{}, err
	}
	if selfRating.Valid {
		rating := int(selfRating.Int64)
		activity.SelfRating = &rating
	}
	if notes.Valid {
		activity.Notes = &notes.String
	}
	return activity, nil
}
