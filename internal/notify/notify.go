// Package notify sends deadline reminder emails for saved scholarships.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scholariq/scholariq/internal/db"
)

// Reminders go out for deadlines between 1 and 7 days away. Anything closer
// is assumed too late to act on; anything further gets picked up on a later
// run.
const (
	reminderWindowMin = 24 * time.Hour
	reminderWindowMax = 7 * 24 * time.Hour
)

// Mailer sends a single email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// ReminderStore is the subset of db.DB the reminder job needs.
type ReminderStore interface {
	SaversForScholarshipsClosing(ctx context.Context, from, to time.Time) ([]db.SaverReminder, error)
	RecordNotification(ctx context.Context, userID, scholarshipID uuid.UUID, notificationType, message, status string) error
}

// SESMailer sends email through AWS SES.
type SESMailer struct {
	client *ses.Client
	sender string
}

// NewSESMailer creates a mailer in the given region sending from the given
// verified address.
func NewSESMailer(ctx context.Context, region, sender string) (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &SESMailer{client: ses.NewFromConfig(cfg), sender: sender}, nil
}

// Send delivers one email via SES.
func (m *SESMailer) Send(ctx context.Context, to, subject, body string) error {
	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(m.sender),
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// Job runs the deadline reminder sweep.
type Job struct {
	store  ReminderStore
	mailer Mailer
	logger *zap.Logger
}

// NewJob creates a reminder job.
func NewJob(store ReminderStore, mailer Mailer, logger *zap.Logger) *Job {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Job{store: store, mailer: mailer, logger: logger}
}

// Run sends one reminder per (user, saved scholarship) pair whose deadline
// falls inside the reminder window. Users already reminded about a
// scholarship are excluded by the store query. Send failures are recorded
// and do not stop the sweep.
func (j *Job) Run(ctx context.Context) error {
	return j.runAt(ctx, time.Now().UTC())
}

func (j *Job) runAt(ctx context.Context, now time.Time) error {
	targets, err := j.store.SaversForScholarshipsClosing(ctx, now.Add(reminderWindowMin), now.Add(reminderWindowMax))
	if err != nil {
		return fmt.Errorf("failed to load reminder targets: %w", err)
	}

	sent, failed := 0, 0
	for _, t := range targets {
		subject, body := composeReminder(t, now)

		status := "sent"
		if err := j.mailer.Send(ctx, t.User.Email, subject, body); err != nil {
			status = "failed"
			failed++
			j.logger.Warn("reminder send failed",
				zap.String("user_id", t.User.ID.String()),
				zap.String("scholarship_id", t.Scholarship.ID.String()),
				zap.Error(err))
		} else {
			sent++
		}

		if err := j.store.RecordNotification(ctx, t.User.ID, t.Scholarship.ID,
			"deadline_reminder", subject, status); err != nil {
			j.logger.Warn("failed to record notification", zap.Error(err))
		}
	}

	j.logger.Info("reminder sweep complete",
		zap.Int("sent", sent),
		zap.Int("failed", failed))
	return nil
}

func composeReminder(t db.SaverReminder, now time.Time) (subject, body string) {
	daysLeft := int(t.Scholarship.Deadline.Sub(now).Hours() / 24)

	subject = fmt.Sprintf("Reminder: %s closes in %d day(s)", t.Scholarship.Title, daysLeft)

	name := t.User.FullName
	if name == "" {
		name = "there"
	}
	body = fmt.Sprintf(
		"Hi %s,\n\nThe application deadline for %s at %s is %s.\n\nYou saved this scholarship on ScholarIQ. Don't miss the deadline!\n",
		name,
		t.Scholarship.Title,
		t.Scholarship.UniversityName,
		t.Scholarship.Deadline.Format("January 2, 2006"),
	)
	return subject, body
}
