package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/basic"
	"github.com/shaj13/go-guardian/auth/strategies/bearer"
	"github.com/shaj13/go-guardian/store"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/linesmerrill/avenue-police-api/databases"
	"github.com/linesmerrill/avenue-police-api/models"
	"github.com/linesmerrill/avenue-police-api/roles"
)

// credentialCacheTTL bounds how long a validated login or token is trusted
// before the strategy runs again
const credentialCacheTTL = time.Minute

var (
	// ErrInvalidCredentials is returned when the passport or password do not match
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInactiveOfficer is returned when a deactivated account tries to log in
	ErrInactiveOfficer = errors.New("officer is inactive")
)

// MiddlewareDB is a struct that holds the database and token settings
type MiddlewareDB struct {
	DB     databases.UserDatabase
	Secret []byte
	TTL    time.Duration

	authenticator auth.Authenticator
}

// Claims are carried in every access token
type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Principal is the authenticated caller of a request
type Principal struct {
	Name     string
	Passport string
	Role     roles.Role
}

type contextKey string

const principalKey contextKey = "principal"

// WithPrincipal returns a copy of ctx carrying p
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the caller stored by the auth middleware
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// SetupGoGuardian sets up the go-guardian strategies. Basic auth is only
// accepted on the token route, every other route expects a bearer token.
func (m *MiddlewareDB) SetupGoGuardian() {
	m.authenticator = auth.New()
	cache := store.NewFIFO(context.Background(), credentialCacheTTL)
	basicStrategy := basic.New(m.ValidateUser, cache)
	tokenStrategy := bearer.New(m.ValidateToken, cache)

	m.authenticator.EnableStrategy(basic.StrategyKey, basicStrategy)
	m.authenticator.EnableStrategy(bearer.CachedStrategyKey, tokenStrategy)
}

// BasicAuth guards the login route with passport:password basic auth
func (m *MiddlewareDB) BasicAuth(next http.Handler) http.Handler {
	return m.guard(basic.StrategyKey, next)
}

// Middleware requires a valid bearer token and stores the caller in the request context
func (m *MiddlewareDB) Middleware(next http.Handler) http.Handler {
	return m.guard(bearer.CachedStrategyKey, next)
}

func (m *MiddlewareDB) guard(key auth.StrategyKey, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		info, err := m.authenticator.Strategy(key).Authenticate(r.Context(), r)
		if err != nil {
			zap.S().Infow("unauthorized",
				"url", r.URL.Path,
				"error", err)
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		p, err := principalFromInfo(info)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		zap.S().Debugw("authenticated", "passport", p.Passport, "role", p.Role)
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

// RequireCapability rejects callers whose role cannot perform op
func RequireCapability(op roles.Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if !roles.Can(p.Role, op) {
				zap.S().Infow("forbidden",
					"passport", p.Passport,
					"role", p.Role,
					"operation", op)
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// TokenFromQuery lets browser websocket clients pass the bearer token as ?token=
func TokenFromQuery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			if t := r.URL.Query().Get("token"); t != "" {
				r.Header.Set("Authorization", "Bearer "+t)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// CreateToken returns a signed access token for the officer that passed basic auth
func (m *MiddlewareDB) CreateToken(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := WithQueryTimeout(r.Context())
	defer cancel()
	user, err := m.DB.FindByPassport(ctx, p.Passport)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "failed to get officer by passport")
		return
	}

	signed, expiresAt, err := m.IssueToken(*user)
	if err != nil {
		zap.S().Errorw("failed to sign token", "error", err)
		writeError(w, http.StatusInternalServerError, "token generation failed")
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(models.Token{
		Token:     signed,
		ExpiresAt: expiresAt.Unix(),
		User:      user.Redacted(),
	})
}

// IssueToken signs an HS256 access token for user
func (m *MiddlewareDB) IssueToken(user models.User) (string, time.Time, error) {
	if len(m.Secret) == 0 {
		return "", time.Time{}, errors.New("jwt secret is not set")
	}
	now := time.Now()
	expiresAt := now.Add(m.TTL)
	claims := Claims{
		Name: user.Details.Name,
		Role: user.Details.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Details.Passport,
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseToken verifies the signature and expiry of an access token
func (m *MiddlewareDB) ParseToken(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return m.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if _, ok := roles.Parse(claims.Role); !ok {
		return nil, fmt.Errorf("unknown role %q", claims.Role)
	}
	return claims, nil
}

// ValidateToken is the bearer strategy callback
func (m *MiddlewareDB) ValidateToken(ctx context.Context, r *http.Request, token string) (auth.Info, error) {
	claims, err := m.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return auth.NewDefaultUser(claims.Name, claims.Subject, []string{claims.Role}, nil), nil
}

// ValidateUser is the basic strategy callback, it checks the passport and
// password against the roster
func (m *MiddlewareDB) ValidateUser(ctx context.Context, r *http.Request, passport, password string) (auth.Info, error) {
	ctx, cancel := WithQueryTimeout(ctx)
	defer cancel()

	user, err := m.DB.FindByPassport(ctx, passport)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Details.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Details.Active {
		return nil, ErrInactiveOfficer
	}
	role, ok := roles.Parse(user.Details.Role)
	if !ok {
		return nil, fmt.Errorf("unknown role %q", user.Details.Role)
	}
	return auth.NewDefaultUser(user.Details.Name, user.Details.Passport, []string{string(role)}, nil), nil
}

func principalFromInfo(info auth.Info) (Principal, error) {
	groups := info.Groups()
	if len(groups) == 0 {
		return Principal{}, errors.New("token has no role")
	}
	role, ok := roles.Parse(groups[0])
	if !ok {
		return Principal{}, fmt.Errorf("unknown role %q", groups[0])
	}
	return Principal{Name: info.UserName(), Passport: info.ID(), Role: role}, nil
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
