package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dcastano/jobtrackr-be/internal/models"
)

// ChallengeServiceProvider defines the interface for challenge services.
type ChallengeServiceProvider interface {
	GetChallengesForUser(userID string) ([]models.Challenge, error)
	GetChallengeByID(id, userID string) (models.Challenge, error)
	CreateChallenge(challenge models.Challenge) (models.Challenge, error)
	UpdateChallenge(id, userID string, in models.Challenge) (models.Challenge, error)
	DeleteChallenge(id, userID string) error
	AddProgress(id, userID string, progress float64) (models.Challenge, error)
}

// ChallengeService provides business logic for challenge management.
type ChallengeService struct {
	db     *sql.DB
	events EventServiceProvider
}

// NewChallengeService creates a new ChallengeService.
func NewChallengeService(db *sql.DB, events EventServiceProvider) *ChallengeService {
	return &ChallengeService{db: db, events: events}
}

const challengeColumns = "id, name, description, start_date, end_date, target, current, unit, is_completed, user_id, created_at"

// GetChallengesForUser retrieves all challenges owned by a user, soonest
// deadline first.
func (s *ChallengeService) GetChallengesForUser(userID string) ([]models.Challenge, error) {
	rows, err := s.db.Query(
		"SELECT "+challengeColumns+" FROM challenges WHERE user_id = ? ORDER BY end_date ASC",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	challenges := []models.Challenge{}
	for rows.Next() {
		challenge, err := scanChallenge(rows)
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, challenge)
	}
	return challenges, rows.Err()
}

// GetChallengeByID retrieves a single challenge after the ownership check.
func (s *ChallengeService) GetChallengeByID(id, userID string) (models.Challenge, error) {
	challenge, err := s.fetchChallenge(id)
	if err != nil {
		return models.Challenge{}, err
	}
	if challenge.UserID != userID {
		return models.Challenge{}, models.ErrNotAuthorized
	}
	return challenge, nil
}

// CreateChallenge creates a new challenge, starting at zero progress. The
// start date defaults to now when unset.
func (s *ChallengeService) CreateChallenge(challenge models.Challenge) (models.Challenge, error) {
	challenge.ID = uuid.New().String()
	challenge.Current = 0
	challenge.IsCompleted = false
	if challenge.StartDate.IsZero() {
		challenge.StartDate = time.Now()
	}

	stmt, err := s.db.Prepare(
		"INSERT INTO challenges (id, name, description, start_date, end_date, target, current, unit, is_completed, user_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return models.Challenge{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(challenge.ID, challenge.Name, challenge.Description, challenge.StartDate, challenge.EndDate, challenge.Target, challenge.Current, challenge.Unit, challenge.IsCompleted, challenge.UserID)
	if err != nil {
		return models.Challenge{}, err
	}

	s.events.CreateEvent(challenge.UserID, "challenge.create", "info", fmt.Sprintf("Challenge '%s' started.", challenge.Name), &challenge.ID)
	return s.GetChallengeByID(challenge.ID, challenge.UserID)
}

// UpdateChallenge replaces a challenge's fields after the ownership check.
// Zero dates keep the existing ones; the completed flag may be overridden
// explicitly in either direction.
func (s *ChallengeService) UpdateChallenge(id, userID string, in models.Challenge) (models.Challenge, error) {
	existing, err := s.fetchChallenge(id)
	if err != nil {
		return models.Challenge{}, err
	}
	if existing.UserID != userID {
		return models.Challenge{}, models.ErrNotAuthorized
	}

	startDate := in.StartDate
	if startDate.IsZero() {
		startDate = existing.StartDate
	}
	endDate := in.EndDate
	if endDate.IsZero() {
		endDate = existing.EndDate
	}

	_, err = s.db.Exec(
		"UPDATE challenges SET name = ?, description = ?, start_date = ?, end_date = ?, target = ?, current = ?, unit = ?, is_completed = ? WHERE id = ?",
		in.Name, in.Description, startDate, endDate, in.Target, in.Current, in.Unit, in.IsCompleted, id,
	)
	if err != nil {
		return models.Challenge{}, err
	}

	s.events.CreateEvent(userID, "challenge.update", "info", fmt.Sprintf("Challenge '%s' updated.", in.Name), &id)
	return s.GetChallengeByID(id, userID)
}

// DeleteChallenge removes a challenge.
func (s *ChallengeService) DeleteChallenge(id, userID string) error {
	existing, err := s.fetchChallenge(id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return models.ErrNotAuthorized
	}

	if _, err := s.db.Exec("DELETE FROM challenges WHERE id = ?", id); err != nil {
		return err
	}

	s.events.CreateEvent(userID, "challenge.delete", "info", fmt.Sprintf("Challenge '%s' removed.", existing.Name), &id)
	return nil
}

// AddProgress applies a progress delta and marks the challenge completed
// once the new total reaches the target.
func (s *ChallengeService) AddProgress(id, userID string, progress float64) (models.Challenge, error) {
	existing, err := s.fetchChallenge(id)
	if err != nil {
		return models.Challenge{}, err
	}
	if existing.UserID != userID {
		return models.Challenge{}, models.ErrNotAuthorized
	}

	newCurrent := existing.Current + progress
	isCompleted := newCurrent >= existing.Target

	_, err = s.db.Exec("UPDATE challenges SET current = ?, is_completed = ? WHERE id = ?", newCurrent, isCompleted, id)
	if err != nil {
		return models.Challenge{}, err
	}

	level := "info"
	message := fmt.Sprintf("Progress logged for '%s'.", existing.Name)
	if isCompleted && !existing.IsCompleted {
		message = fmt.Sprintf("Challenge '%s' completed!", existing.Name)
	}
	s.events.CreateEvent(userID, "challenge.progress", level, message, &id)

	return s.GetChallengeByID(id, userID)
}

// fetchChallenge loads a challenge row by ID with no owner filter.
func (s *ChallengeService) fetchChallenge(id string) (models.Challenge, error) {
	row := s.db.QueryRow("SELECT "+challengeColumns+" FROM challenges WHERE id = ?", id)
	challenge, err := scanChallenge(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Challenge{}, models.ErrNotFound
		}
		return models.Challenge{}, err
	}
	return challenge, nil
}

func scanChallenge(row rowScanner) (models.Challenge, error) {
	var challenge models.Challenge
	var description sql.NullString
	err := row.Scan(&challenge.ID, &challenge.Name, &description, &challenge.StartDate, &challenge.EndDate, &challenge.Target, &challenge.Current, &challenge.Unit, &challenge.IsCompleted, &challenge.UserID, &challenge.CreatedAt)
	if err != nil {
		return models.Challenge{}, err
	}
	if description.Valid {
		challenge.Description = &description.String
	}
	return challenge, nil
}
