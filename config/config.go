package config

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/linesmerrill/avenue-police-api/logging"
	"github.com/linesmerrill/avenue-police-api/models"
)

// Config holds the project config values
type Config struct {
	URL                  string
	DatabaseName         string
	BaseURL              string
	Port                 string
	Environment          string
	JWTSecret            string
	TokenTTL             time.Duration
	RequestTimeout       time.Duration
	ChangeStreamsEnabled bool

	DiscordWebhookURL string

	SendgridAPIKey    string
	SummaryFromEmail  string
	SummaryRecipients []string

	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadPreset string

	HeadDevPassport string
	HeadDevPassword string
	HeadDevName     string
}

// New sets up all config related services. Values come from the environment,
// optionally overridden by a config.yaml in the working directory or
// /etc/avenue-police/.
func New() *Config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/avenue-police/")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_NAME", "avenue-police")
	v.SetDefault("ENVIRONMENT", "local")
	v.SetDefault("TOKEN_TTL", "12h")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("CHANGE_STREAMS_ENABLED", false)
	v.SetDefault("HEAD_DEV_NAME", "Head Developer")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			zap.S().Warnw("failed to read config file", "error", err)
		}
	}

	conf := &Config{
		URL:                    v.GetString("DB_URI"),
		DatabaseName:           v.GetString("DB_NAME"),
		BaseURL:                v.GetString("BASE_URL"),
		Port:                   v.GetString("PORT"),
		Environment:            v.GetString("ENVIRONMENT"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		TokenTTL:               v.GetDuration("TOKEN_TTL"),
		RequestTimeout:         v.GetDuration("REQUEST_TIMEOUT"),
		ChangeStreamsEnabled:   v.GetBool("CHANGE_STREAMS_ENABLED"),
		DiscordWebhookURL:      v.GetString("DISCORD_WEBHOOK_URL"),
		SendgridAPIKey:         v.GetString("SENDGRID_API_KEY"),
		SummaryFromEmail:       v.GetString("SUMMARY_FROM_EMAIL"),
		SummaryRecipients:      splitList(v.GetString("SUMMARY_RECIPIENTS")),
		CloudinaryCloudName:    v.GetString("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:       v.GetString("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret:    v.GetString("CLOUDINARY_API_SECRET"),
		CloudinaryUploadPreset: v.GetString("CLOUDINARY_UPLOAD_PRESET"),
		HeadDevPassport:        v.GetString("HEAD_DEV_PASSPORT"),
		HeadDevPassword:        v.GetString("HEAD_DEV_PASSWORD"),
		HeadDevName:            v.GetString("HEAD_DEV_NAME"),
	}

	//setup zap logger and replace default logger
	logger, err := setLogger(conf.Environment)
	if err != nil {
		logger = zap.NewExample()
	}
	_ = zap.ReplaceGlobals(logger)

	return conf
}

func setLogger(environment string) (*zap.Logger, error) {
	return logging.New(environment)
}

// splitList splits a comma separated value, dropping blanks
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().Errorw(message, "status", httpStatusCode, "error", err)
	body := models.ErrorMessageResponse{
		Response: models.MessageError{Message: message},
	}
	if err != nil {
		body.Response.Error = err.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	_ = json.NewEncoder(w).Encode(body)
}
