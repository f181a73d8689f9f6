package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dgarciab/retention-portal/internal/domain"
)

// Actor identity headers. Authentication happens upstream; the gateway
// forwards the authenticated identity in these headers.
const (
	actorIDHeader    = "X-Actor-Id"
	actorNameHeader  = "X-Actor-Name"
	actorRolesHeader = "X-Actor-Roles"

	actorKey = contextKey("actor")
)

func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := getRequestID(r.Context())

		log := s.log.With(
			slog.String("request_id", requestID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr),
			slog.String("user_agent", r.UserAgent()),
		)
		log.Info("request started")

		t1 := time.Now()

		next.ServeHTTP(w, r)

		log.Info("request completed",
			slog.String("duration", time.Since(t1).String()),
		)
	})
}

// actorContext extracts the acting identity from the forwarded headers and
// stores it in the request context. Unknown role names are dropped; a missing
// id leaves a zero actor, which downstream visibility rules treat as seeing
// nothing.
func (s *Server) actorContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var actor domain.Actor

		if rawID := r.Header.Get(actorIDHeader); rawID != "" {
			if id, err := strconv.ParseInt(rawID, 10, 64); err == nil {
				actor.IdentityID = id
			}
		}

		actor.Name = r.Header.Get(actorNameHeader)

		if rawRoles := r.Header.Get(actorRolesHeader); rawRoles != "" {
			for _, raw := range strings.Split(rawRoles, ",") {
				role := domain.ParseRole(strings.TrimSpace(raw))
				if role != domain.RoleUnknown {
					actor.Roles = append(actor.Roles, role)
				}
			}
		}

		ctx := context.WithValue(r.Context(), actorKey, actor)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getActor(ctx context.Context) domain.Actor {
	if actor, ok := ctx.Value(actorKey).(domain.Actor); ok {
		return actor
	}

	return domain.Actor{}
}
