package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/linesmerrill/avenue-police-api/databases"
	"github.com/linesmerrill/avenue-police-api/logging"
	"github.com/linesmerrill/avenue-police-api/models"
	"github.com/linesmerrill/avenue-police-api/reports"
	templates "github.com/linesmerrill/avenue-police-api/templates/html"
)

const (
	// MonthlySummarySpec runs the summary at 06:00 on the first day of every month
	MonthlySummarySpec = "0 6 1 * *"

	monthlySummaryLock = "monthly_summary_job"
	lockTTL            = 10 * time.Minute
	summaryTopStatutes = 5
)

// Mailer sends a single email
type Mailer interface {
	Send(toEmail, subject, htmlContent, plainText string) error
}

// SendgridMailer sends email through the sendgrid API
type SendgridMailer struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// Send implements Mailer
func (m SendgridMailer) Send(toEmail, subject, htmlContent, plainText string) error {
	from := mail.NewEmail(m.FromName, m.FromEmail)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	client := sendgrid.NewSendClient(m.APIKey)
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

// Scheduler handles periodic background jobs
type Scheduler struct {
	cron       *cron.Cron
	Reports    databases.ArrestReportDatabase
	Summaries  databases.SummaryDatabase
	LockDB     databases.SchedulerLockDatabase
	Mailer     Mailer
	Recipients []string
	instanceID string
	now        func() time.Time
}

// NewScheduler creates a new scheduler instance. mailer may be nil, in which
// case summaries are stored but not emailed.
func NewScheduler(
	reportDB databases.ArrestReportDatabase,
	summaryDB databases.SummaryDatabase,
	lockDB databases.SchedulerLockDatabase,
	mailer Mailer,
	recipients []string,
) *Scheduler {
	// Generate a unique instance ID for this pod
	instanceID := os.Getenv("DYNO") // Heroku sets this to "web.1", "web.2", etc.
	if instanceID == "" {
		instanceID = fmt.Sprintf("instance-%d", time.Now().UnixNano())
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.Local)),
		Reports:    reportDB,
		Summaries:  summaryDB,
		LockDB:     lockDB,
		Mailer:     mailer,
		Recipients: recipients,
		instanceID: instanceID,
		now:        time.Now,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(MonthlySummarySpec, s.monthlySummaryJob)
	if err != nil {
		return fmt.Errorf("failed to register monthly summary job: %w", err)
	}

	s.cron.Start()
	s.log().Info("scheduler started")
	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log().Info("scheduler stopped")
}

func (s *Scheduler) log() *zap.SugaredLogger {
	return logging.Named("scheduler")
}

func (s *Scheduler) monthlySummaryJob() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if _, err := s.RunMonthlySummary(ctx); err != nil {
		s.log().Errorw("monthly summary job failed", "error", err)
	}
}

// RunMonthlySummary summarises the previous calendar month, stores the result
// and emails it. It returns nil without doing anything when another instance
// holds the lock.
func (s *Scheduler) RunMonthlySummary(ctx context.Context) (*models.MonthlySummary, error) {
	// Try to acquire distributed lock
	acquired, err := s.LockDB.TryAcquireLock(ctx, monthlySummaryLock, s.instanceID, lockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !acquired {
		s.log().Debug("monthly summary already running on another instance, skipping")
		return nil, nil
	}
	defer func() {
		if err := s.LockDB.ReleaseLock(context.Background(), monthlySummaryLock, s.instanceID); err != nil {
			s.log().Warnw("failed to release lock", "lock", monthlySummaryLock, "error", err)
		}
	}()

	all, err := s.Reports.ListArrestReports(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list arrest reports: %w", err)
	}

	now := s.now()
	filtered := reports.Filter(all, reports.Criteria{Period: reports.PreviousMonth, Now: now})
	summary := models.MonthlySummary{
		ID:          PreviousMonthKey(now),
		Stats:       reports.ComputeStats(filtered),
		TopStatutes: reports.TopStatutes(filtered, summaryTopStatutes),
		GeneratedAt: primitive.NewDateTimeFromTime(now),
	}
	if err := s.Summaries.Upsert(ctx, summary); err != nil {
		return nil, fmt.Errorf("failed to store summary %s: %w", summary.ID, err)
	}
	s.log().Infow("monthly summary stored",
		"month", summary.ID,
		"arrests", summary.Stats.Count,
		"instance", s.instanceID)

	s.email(summary)
	return &summary, nil
}

func (s *Scheduler) email(summary models.MonthlySummary) {
	if s.Mailer == nil {
		return
	}
	subject := templates.MonthlySummarySubject(summary.ID)
	htmlContent := templates.RenderMonthlySummaryEmail(summary)
	plainText := templates.RenderMonthlySummaryText(summary)
	for _, to := range s.Recipients {
		if err := s.Mailer.Send(to, subject, htmlContent, plainText); err != nil {
			s.log().Errorw("failed to send monthly summary email", "to", to, "error", err)
		}
	}
}

// PreviousMonthKey formats the month before now as YYYY-MM
func PreviousMonthKey(now time.Time) string {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return first.AddDate(0, -1, 0).Format("2006-01")
}
