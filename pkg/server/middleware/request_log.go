package middleware

import (
	"context"
	"log"
	"net"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/openagri/aegis/pkg/config"
	"github.com/openagri/aegis/pkg/model"
)

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogger is middleware that records each request in the activity log
type RequestLogger struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewRequestLogger creates a new activity logging middleware
func NewRequestLogger(db *gorm.DB, cfg *config.Config) *RequestLogger {
	return &RequestLogger{DB: db, Config: cfg}
}

// ClientIP resolves the caller's address. X-Forwarded-For is honored only
// when the direct peer is a configured trusted proxy.
func (l *RequestLogger) ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" && l.Config != nil && l.Config.IsTrustedProxy(host) {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	return host
}

// Middleware returns an HTTP middleware that writes one activity_log row
// per request. Logging failures never fail the request.
func (l *RequestLogger) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		holder := &claimsHolder{}
		r = r.WithContext(context.WithValue(r.Context(), holderContextKey, holder))

		next.ServeHTTP(recorder, r)

		entry := model.RequestLog{
			IPAddress:      l.ClientIP(r),
			UserAgent:      r.UserAgent(),
			Path:           r.URL.Path,
			QueryString:    r.URL.RawQuery,
			Method:         r.Method,
			ResponseStatus: recorder.status,
		}

		// The authenticator fills the holder once a token checks out, which
		// this outer middleware reads back after the chain returns.
		if holder.claims != nil && holder.claims.UUID != "" {
			var id uint
			err := l.DB.Model(&model.User{}).Where("uuid = ?", holder.claims.UUID).Limit(1).Pluck("id", &id).Error
			if err == nil && id != 0 {
				entry.UserID = &id
			}
		}

		if err := l.DB.Create(&entry).Error; err != nil {
			log.Printf("activity log write failed: %v", err)
		}
	})
}
