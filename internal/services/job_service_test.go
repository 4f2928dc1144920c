package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/jobtrackr-be/internal/models"
)

func TestJobDefaultsOnCreate(t *testing.T) {
	db := setupTestDB(t)
	user := newTestUser(t, db, "jobs@example.com")
	service := NewJobService(db, testEvents(db))

	created, err := service.CreateJob(models.JobApplication{
		JobTitle: "Backend Engineer",
		Company:  "Acme",
		UserID:   user.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusApplied, created.Status)
	assert.WithinDuration(t, time.Now(), created.AppliedDate, 5*time.Second)
}

func TestJobListOrderedByAppliedDate(t *testing.T) {
	db := setupTestDB(t)
	user := newTestUser(t, db, "joblist@example.com")
	service := NewJobService(db, testEvents(db))

	now := time.Now()
	for i, company := range []string{"Oldest", "Middle", "Newest"} {
		_, err := service.CreateJob(models.JobApplication{
			JobTitle:    "Engineer",
			Company:     company,
			AppliedDate: now.AddDate(0, 0, i-2),
			UserID:      user.ID,
		})
		require.NoError(t, err)
	}

	jobs, err := service.GetJobsForUser(user.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, "Newest", jobs[0].Company)
	assert.Equal(t, "Oldest", jobs[2].Company)
}

func TestJobUpdateKeepsAppliedDateWhenUnset(t *testing.T) {
	db := setupTestDB(t)
	user := newTestUser(t, db, "jobupdate@example.com")
	service := NewJobService(db, testEvents(db))

	applied := time.Now().AddDate(0, 0, -4)
	created, err := service.CreateJob(models.JobApplication{
		JobTitle:    "Engineer",
		Company:     "Acme",
		AppliedDate: applied,
		UserID:      user.ID,
	})
	require.NoError(t, err)

	updated, err := service.UpdateJob(created.ID, user.ID, models.JobApplication{
		JobTitle: "Senior Engineer",
		Company:  "Acme",
		Status:   models.StatusInterview,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInterview, updated.Status)
	assert.WithinDuration(t, applied, updated.AppliedDate, time.Second)
}

func TestJobOwnership(t *testing.T) {
	db := setupTestDB(t)
	owner := newTestUser(t, db, "jowner@example.com")
	intruder := newTestUser(t, db, "jintruder@example.com")
	service := NewJobService(db, testEvents(db))

	job, err := service.CreateJob(models.JobApplication{
		JobTitle: "Engineer",
		Company:  "Acme",
		UserID:   owner.ID,
	})
	require.NoError(t, err)

	_, err = service.GetJobByID(job.ID, intruder.ID)
	assert.ErrorIs(t, err, models.ErrNotAuthorized)
	assert.ErrorIs(t, service.DeleteJob(job.ID, intruder.ID), models.ErrNotAuthorized)
	_, err = service.GetJobByID("missing", owner.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
