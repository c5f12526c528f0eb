package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/linesmerrill/avenue-police-api/api/handlers"
	"github.com/linesmerrill/avenue-police-api/api/scheduler"
	"github.com/linesmerrill/avenue-police-api/config"
	"github.com/linesmerrill/avenue-police-api/databases"
)

const shutdownTimeout = 15 * time.Second

var (
	port           string
	withoutCronJob bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the HTTP API, the change feed and the monthly summary job.

The port defaults to $PORT and may be overridden with --port.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (defaults to $PORT)")
	serveCmd.Flags().BoolVar(&withoutCronJob, "no-scheduler", false, "Do not run the monthly summary job on this instance")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conf := config.New()
	if port != "" {
		conf.Port = port
	}

	a := handlers.App{Config: *conf}
	if err := a.Initialize(ctx); err != nil {
		return err
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			zap.S().Warnw("failed to disconnect from database", "error", err)
		}
	}()

	if !withoutCronJob {
		s := newScheduler(conf, a.DB())
		if err := s.Start(); err != nil {
			return err
		}
		defer s.Stop()
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%v", conf.Port),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		zap.S().Infow("avenue-police-api is up and running",
			"port", conf.Port,
			"url", conf.BaseURL,
			"environment", conf.Environment)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	zap.S().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newScheduler(conf *config.Config, db databases.DatabaseHelper) *scheduler.Scheduler {
	var mailer scheduler.Mailer
	if conf.SendgridAPIKey != "" && conf.SummaryFromEmail != "" {
		mailer = scheduler.SendgridMailer{
			APIKey:    conf.SendgridAPIKey,
			FromEmail: conf.SummaryFromEmail,
			FromName:  "Avenue City Police Department",
		}
	} else {
		zap.S().Info("sendgrid is not configured, monthly summaries will not be emailed")
	}
	return scheduler.NewScheduler(
		databases.NewArrestReportDatabase(db),
		databases.NewSummaryDatabase(db),
		databases.NewSchedulerLockDatabase(db),
		mailer,
		conf.SummaryRecipients,
	)
}
