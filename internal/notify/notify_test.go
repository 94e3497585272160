package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholariq/scholariq/internal/db"
)

type fakeStore struct {
	targets  []db.SaverReminder
	from, to time.Time
	records  []string // "type:status"
}

func (f *fakeStore) SaversForScholarshipsClosing(ctx context.Context, from, to time.Time) ([]db.SaverReminder, error) {
	f.from, f.to = from, to
	return f.targets, nil
}

func (f *fakeStore) RecordNotification(ctx context.Context, userID, scholarshipID uuid.UUID, notificationType, message, status string) error {
	f.records = append(f.records, notificationType+":"+status)
	return nil
}

type fakeMailer struct {
	sent     []string // recipient addresses
	subjects []string
	err      error
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	f.subjects = append(f.subjects, subject)
	return nil
}

func reminderTarget(email string, deadline time.Time) db.SaverReminder {
	return db.SaverReminder{
		User: db.User{ID: uuid.New(), Email: email, FullName: "Ayesha Khan"},
		Scholarship: db.Scholarship{
			ID:             uuid.New(),
			Title:          "Global Excellence Scholarship",
			UniversityName: "University of Toronto",
			Deadline:       &deadline,
		},
	}
}

func TestRunSendsAndRecords(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{targets: []db.SaverReminder{
		reminderTarget("a@example.com", now.Add(3*24*time.Hour)),
		reminderTarget("b@example.com", now.Add(6*24*time.Hour)),
	}}
	mailer := &fakeMailer{}

	job := NewJob(store, mailer, nil)
	require.NoError(t, job.runAt(context.Background(), now))

	assert.Equal(t, []string{"a@example.com", "b@example.com"}, mailer.sent)
	assert.Equal(t, []string{"deadline_reminder:sent", "deadline_reminder:sent"}, store.records)
}

func TestRunQueriesOneToSevenDayWindow(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{}
	job := NewJob(store, &fakeMailer{}, nil)

	require.NoError(t, job.runAt(context.Background(), now))

	assert.Equal(t, now.Add(24*time.Hour), store.from)
	assert.Equal(t, now.Add(7*24*time.Hour), store.to)
}

func TestRunRecordsFailures(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{targets: []db.SaverReminder{
		reminderTarget("a@example.com", now.Add(2*24*time.Hour)),
	}}
	mailer := &fakeMailer{err: errors.New("ses throttled")}

	job := NewJob(store, mailer, nil)
	require.NoError(t, job.runAt(context.Background(), now), "send failures must not abort the sweep")

	assert.Equal(t, []string{"deadline_reminder:failed"}, store.records)
}

func TestComposeReminderCountsDays(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	target := reminderTarget("a@example.com", now.Add(5*24*time.Hour))

	subject, body := composeReminder(target, now)

	assert.Contains(t, subject, "closes in 5 day(s)")
	assert.Contains(t, body, "Hi Ayesha Khan")
	assert.Contains(t, body, "University of Toronto")
	assert.Contains(t, body, "September 6, 2026")
}
