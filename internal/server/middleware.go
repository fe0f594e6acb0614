package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	apperrors "listing-frontdesk/internal/common/errors"
	"listing-frontdesk/internal/common/metrics"
	"listing-frontdesk/internal/session"
)

type contextKey string

const sessionKey contextKey = "session"

// sessionFromContext returns the session attached by withSession, or absent.
func sessionFromContext(ctx context.Context) session.State {
	if s, ok := ctx.Value(sessionKey).(session.State); ok {
		return s
	}
	return session.Absent()
}

// statusRecorder captures the response status for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// observeMiddleware logs each request and records the request metrics against
// the route template, not the raw path, to keep label cardinality bounded.
func (s *Server) observeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if template, err := current.GetPathTemplate(); err == nil {
				route = template
			}
		}

		elapsed := time.Since(start)
		metrics.RequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(recorder.status)).Inc()
		metrics.RequestDuration.WithLabelValues(route, r.Method).Observe(elapsed.Seconds())

		s.log.Info("Request handled", map[string]interface{}{
			"method":   r.Method,
			"route":    route,
			"status":   recorder.status,
			"duration": elapsed.String(),
		})
	})
}

// bearerToken extracts the session token from the Authorization header,
// falling back to the session cookie for browser callers.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if cookie, err := r.Cookie("session"); err == nil {
		return cookie.Value
	}
	return ""
}

// withSession resolves the caller's session and passes it along in the
// request context. A missing token yields an absent session; a present but
// invalid token is rejected.
func (s *Server) withSession(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := session.Absent()

		if token := bearerToken(r); token != "" {
			parsed, err := s.deps.Sessions.Parse(token)
			if err != nil {
				s.errHandler.HandleRequestError(w, r, err)
				return
			}
			state = parsed
		}

		ctx := context.WithValue(r.Context(), sessionKey, state)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireSession is withSession but rejects absent callers outright.
func (s *Server) requireSession(next http.HandlerFunc) http.Handler {
	return s.withSession(func(w http.ResponseWriter, r *http.Request) {
		if sessionFromContext(r.Context()).Kind == session.KindAbsent {
			s.errHandler.HandleRequestError(w, r,
				apperrors.NewSessionInvalidError("no session token provided"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
