package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/linesmerrill/avenue-police-api/api"
	"github.com/linesmerrill/avenue-police-api/backup"
	"github.com/linesmerrill/avenue-police-api/config"
	"github.com/linesmerrill/avenue-police-api/databases"
	"github.com/linesmerrill/avenue-police-api/models"
	"github.com/linesmerrill/avenue-police-api/notify"
	"github.com/linesmerrill/avenue-police-api/reports"
	"github.com/linesmerrill/avenue-police-api/roles"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	Broker   *databases.Broker
	Notifier notify.Notifier
	Cache    *reports.Cache

	client   databases.ClientHelper
	dbHelper databases.DatabaseHelper
}

// reportSource feeds the dashboard cache from the two collections it reads
type reportSource struct {
	arrests  databases.ArrestReportDatabase
	officers databases.UserDatabase
}

func (s reportSource) ListArrestReports(ctx context.Context) ([]models.ArrestReport, error) {
	return s.arrests.ListArrestReports(ctx)
}

func (s reportSource) ListOfficers(ctx context.Context) ([]models.User, error) {
	return s.officers.ListOfficers(ctx)
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	if a.Broker == nil {
		a.Broker = databases.NewBroker()
	}
	if a.Notifier == nil {
		a.Notifier = notify.NewDiscord(a.Config.DiscordWebhookURL)
	}

	udb := databases.NewUserDatabase(a.dbHelper)
	sdb := databases.NewStatuteDatabase(a.dbHelper)
	adb := databases.NewArrestReportDatabase(a.dbHelper)
	cdb := databases.NewCounterDatabase(a.dbHelper)

	if a.Cache == nil {
		a.Cache = reports.NewCache(reportSource{arrests: adb, officers: udb})
	}
	cache := a.Cache
	a.Broker.Subscribe(func(e databases.ChangeEvent) {
		if e.Kind == databases.ArrestReportsChanged || e.Kind == databases.OfficersChanged {
			cache.Invalidate()
		}
	})

	// with change streams on, every write reaches the broker from the
	// database itself, so handlers stay quiet to avoid double events
	var events databases.ChangePublisher = a.Broker
	if a.Config.ChangeStreamsEnabled {
		events = databases.NopPublisher{}
	}

	// setup go-guardian for middleware
	m := &api.MiddlewareDB{DB: udb, Secret: []byte(a.Config.JWTSecret), TTL: a.Config.TokenTTL}
	m.SetupGoGuardian()

	s := Statute{DB: sdb, Events: events}
	ar := ArrestReport{DB: adb, SDB: sdb, Cache: a.Cache, Events: events, Notifier: a.Notifier}
	re := Report{Cache: a.Cache}
	o := Officer{DB: udb, Events: events}
	feed := ChangeFeed{Notifier: a.Broker}
	up := Upload{
		CloudName:    a.Config.CloudinaryCloudName,
		APIKey:       a.Config.CloudinaryAPIKey,
		APISecret:    a.Config.CloudinaryAPISecret,
		UploadPreset: a.Config.CloudinaryUploadPreset,
	}
	ex := Export{Stores: backup.Stores{Officers: udb, Statutes: sdb, Reports: adb, Counters: cdb}}

	timeout := api.TimeoutMiddleware(a.Config.RequestTimeout)
	if a.Config.RequestTimeout <= 0 {
		timeout = func(h http.Handler) http.Handler { return h }
	}
	protect := func(op roles.Operation, h http.HandlerFunc) http.Handler {
		return timeout(m.Middleware(api.RequireCapability(op)(h)))
	}

	r := api.New()

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", timeout(m.BasicAuth(http.HandlerFunc(m.CreateToken)))).Methods("POST")

	apiCreate.Handle("/statutes", timeout(http.HandlerFunc(s.StatutesHandler))).Methods("GET")
	apiCreate.Handle("/statutes", protect(roles.ManageStatutes, s.CreateStatuteHandler)).Methods("POST")
	apiCreate.Handle("/statutes/reset", protect(roles.ManageStatutes, s.ResetStatutesHandler)).Methods("POST")
	apiCreate.Handle("/statutes/{statute_id}", protect(roles.ManageStatutes, s.UpdateStatuteHandler)).Methods("PUT")
	apiCreate.Handle("/statutes/{statute_id}", protect(roles.ManageStatutes, s.DeleteStatuteHandler)).Methods("DELETE")

	apiCreate.Handle("/arrests/preview", protect(roles.SubmitArrest, ar.PreviewArrestHandler)).Methods("POST")
	apiCreate.Handle("/arrests", protect(roles.SubmitArrest, ar.CreateArrestReportHandler)).Methods("POST")
	apiCreate.Handle("/arrests", protect(roles.ViewReports, ar.ArrestReportsHandler)).Methods("GET")
	apiCreate.Handle("/arrests", protect(roles.WipeData, ar.WipeArrestReportsHandler)).Methods("DELETE")
	apiCreate.Handle("/arrests/{arrest_id}", protect(roles.ViewReports, ar.ArrestReportByIDHandler)).Methods("GET")

	apiCreate.Handle("/reports/dashboard", protect(roles.ViewReports, re.DashboardHandler)).Methods("GET")
	apiCreate.Handle("/reports/top-statutes.png", protect(roles.ViewReports, re.TopStatutesChartHandler)).Methods("GET")
	apiCreate.Handle("/reports/refresh", protect(roles.ViewReports, re.RefreshHandler)).Methods("POST")

	apiCreate.Handle("/officers", protect(roles.ViewReports, o.OfficersHandler)).Methods("GET")
	apiCreate.Handle("/officers", protect(roles.ManageOfficers, o.CreateOfficerHandler)).Methods("POST")
	apiCreate.Handle("/officers/me", protect(roles.EditProfile, o.ProfileHandler)).Methods("GET")
	apiCreate.Handle("/officers/me", protect(roles.EditProfile, o.UpdateProfileHandler)).Methods("PATCH")
	apiCreate.Handle("/officers/{officer_id}/status", protect(roles.ManageOfficers, o.UpdateOfficerStatusHandler)).Methods("PATCH")
	apiCreate.Handle("/officers/{officer_id}", protect(roles.ManageOfficers, o.DeleteOfficerHandler)).Methods("DELETE")
	apiCreate.Handle("/officers/{passport}/arrest-count", protect(roles.SubmitArrest, ar.ArrestCountHandler)).Methods("GET")

	apiCreate.Handle("/export", protect(roles.WipeData, ex.ExportHandler)).Methods("GET")
	apiCreate.Handle("/uploads/signature", protect(roles.EditProfile, up.GenerateSignatureHandler)).Methods("POST")

	// no timeout, the connection outlives any request deadline
	apiCreate.Handle("/ws/changes", api.TokenFromQuery(m.Middleware(api.RequireCapability(roles.ViewReports)(http.HandlerFunc(feed.ChangeFeedHandler))))).Methods("GET")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize(ctx context.Context) error {
	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.client = client
	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect(ctx)
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("avenue-police-api has connected to the database")

	if err := databases.NewArrestReportDatabase(a.dbHelper).EnsureIndexes(ctx); err != nil {
		zap.S().Warnw("failed to ensure arrest report indexes", "error", err)
	}
	udb := databases.NewUserDatabase(a.dbHelper)
	if err := udb.EnsureIndexes(ctx); err != nil {
		zap.S().Warnw("failed to ensure officer indexes", "error", err)
	}
	if _, err := BootstrapHeadDeveloper(ctx, udb, a.Config.HeadDevName, a.Config.HeadDevPassport, a.Config.HeadDevPassword); err != nil {
		zap.S().Errorw("failed to bootstrap head developer", "error", err)
	}

	a.Broker = databases.NewBroker()
	if a.Config.ChangeStreamsEnabled {
		if err := databases.WatchChanges(ctx, a.dbHelper, a.Broker); err != nil {
			return err
		}
		zap.S().Info("watching change streams")
	}

	// initialize api router
	a.initializeRoutes()
	return nil
}

// DB returns the connected database, for background jobs sharing the connection
func (a *App) DB() databases.DatabaseHelper {
	return a.dbHelper
}

// Close disconnects from the database
func (a *App) Close(ctx context.Context) error {
	if a.client == nil {
		return nil
	}
	return a.client.Disconnect(ctx)
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}
