package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dcastano/jobtrackr-be/internal/models"
)

// JobServiceProvider defines the interface for job application services.
type JobServiceProvider interface {
	GetJobsForUser(userID string) ([]models.JobApplication, error)
	GetJobByID(id, userID string) (models.JobApplication, error)
	CreateJob(job models.JobApplication) (models.JobApplication, error)
	UpdateJob(id, userID string, in models.JobApplication) (models.JobApplication, error)
	DeleteJob(id, userID string) error
}

// JobService provides business logic for job application tracking.
type JobService struct {
	db     *sql.DB
	events EventServiceProvider
}

// NewJobService creates a new JobService.
func NewJobService(db *sql.DB, events EventServiceProvider) *JobService {
	return &JobService{db: db, events: events}
}

const jobColumns = "id, job_title, company, application_url, resume_version, contact_name, contact_email, contact_linkedin, notes, status, applied_date, user_id, created_at"

// GetJobsForUser retrieves all job applications owned by a user, newest
// application first.
func (s *JobService) GetJobsForUser(userID string) ([]models.JobApplication, error) {
	rows, err := s.db.Query(
		"SELECT "+jobColumns+" FROM job_applications WHERE user_id = ? ORDER BY applied_date DESC",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []models.JobApplication{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// GetJobByID retrieves a single job application after the ownership check.
func (s *JobService) GetJobByID(id, userID string) (models.JobApplication, error) {
	job, err := s.fetchJob(id)
	if err != nil {
		return models.JobApplication{}, err
	}
	if job.UserID != userID {
		return models.JobApplication{}, models.ErrNotAuthorized
	}
	return job, nil
}

// CreateJob creates a new job application. Status defaults to Applied and
// the applied date to now when the caller leaves them unset.
func (s *JobService) CreateJob(job models.JobApplication) (models.JobApplication, error) {
	job.ID = uuid.New().String()
	if job.Status == "" {
		job.Status = models.StatusApplied
	}
	if job.AppliedDate.IsZero() {
		job.AppliedDate = time.Now()
	}

	stmt, err := s.db.Prepare(
		"INSERT INTO job_applications (id, job_title, company, application_url, resume_version, contact_name, contact_email, contact_linkedin, notes, status, applied_date, user_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return models.JobApplication{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(job.ID, job.JobTitle, job.Company, job.ApplicationURL, job.ResumeVersion, job.ContactName, job.ContactEmail, job.ContactLinkedIn, job.Notes, job.Status, job.AppliedDate, job.UserID)
	if err != nil {
		return models.JobApplication{}, err
	}

	s.events.CreateEvent(job.UserID, "job.create", "info", fmt.Sprintf("Application to %s tracked.", job.Company), &job.ID)
	return s.GetJobByID(job.ID, job.UserID)
}

// UpdateJob replaces a job application's fields after the ownership check.
// A zero applied date keeps the existing one.
func (s *JobService) UpdateJob(id, userID string, in models.JobApplication) (models.JobApplication, error) {
	existing, err := s.fetchJob(id)
	if err != nil {
		return models.JobApplication{}, err
	}
	if existing.UserID != userID {
		return models.JobApplication{}, models.ErrNotAuthorized
	}

	appliedDate := in.AppliedDate
	if appliedDate.IsZero() {
		appliedDate = existing.AppliedDate
	}

	_, err = s.db.Exec(
		"UPDATE job_applications SET job_title = ?, company = ?, application_url = ?, resume_version = ?, contact_name = ?, contact_email = ?, contact_linkedin = ?, notes = ?, status = ?, applied_date = ? WHERE id = ?",
		in.JobTitle, in.Company, in.ApplicationURL, in.ResumeVersion, in.ContactName, in.ContactEmail, in.ContactLinkedIn, in.Notes, in.Status, appliedDate, id,
	)
	if err != nil {
		return models.JobApplication{}, err
	}

	s.events.CreateEvent(userID, "job.update", "info", fmt.Sprintf("Application to %s updated.", in.Company), &id)
	return s.GetJobByID(id, userID)
}

// DeleteJob removes a job application.
func (s *JobService) DeleteJob(id, userID string) error {
	existing, err := s.fetchJob(id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return models.ErrNotAuthorized
	}

	if _, err := s.db.Exec("DELETE FROM job_applications WHERE id = ?", id); err != nil {
		return err
	}

	s.events.CreateEvent(userID, "job.delete", "info", fmt.Sprintf("Application to %s removed.", existing.Company), &id)
	return nil
}

// fetchJob loads a job application row by ID with no owner filter.
func (s *JobService) fetchJob(id string) (models.JobApplication, error) {
	row := s.db.QueryRow("SELECT "+jobColumns+" FROM job_applications WHERE id = ?", id)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.JobApplication{}, models.ErrNotFound
		}
		return models.JobApplication{}, err
	}
	return job, nil
}

func scanJob(row rowScanner) (models.JobApplication, error) {
	var job models.JobApplication
	var applicationURL, resumeVersion, contactName, contactEmail, contactLinkedIn, notes sql.NullString
	err := row.Scan(&job.ID, &job.JobTitle, &job.Company, &applicationURL, &resumeVersion, &contactName, &contactEmail, &contactLinkedIn, &notes, &job.Status, &job.AppliedDate, &job.UserID, &job.CreatedAt)
	if err != nil {
		return models.JobApplication{}, err
	}
	if applicationURL.Valid {
		job.ApplicationURL = &applicationURL.String
	}
	if resumeVersion.Valid {
		job.ResumeVersion = &resumeVersion.String
	}
	if contactName.Valid {
		job.ContactName = &contactName.String
	}
	if contactEmail.Valid {
		job.ContactEmail = &contactEmail.String
	}
	if contactLinkedIn.Valid {
		job.ContactLinkedIn = &contactLinkedIn.String
	}
	if notes.Valid {
		job.Notes = &notes.String
	}
	return job, nil
}
