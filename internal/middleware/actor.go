package middleware

import (
	"context"
	"net/http"
)

// ActorHeader names the caller for audit fields. There is no authentication
// beyond this header.
const ActorHeader = "X-Actor-Name"

type contextKey string

const actorKey contextKey = "actor"

func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), actorKey, r.Header.Get(ActorHeader))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ActorFromContext(ctx context.Context) string {
	actor, _ := ctx.Value(actorKey).(string)
	return actor
}
