package shared

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/cityinfo-api/internal/service/auth"
)

// ContextKey is the key type for request-scoped values.
type ContextKey string

const (
	// ClaimsContextKey holds the validated *auth.Claims of the caller.
	ClaimsContextKey ContextKey = "claims"

	// TraceIDKey holds the request's trace ID.
	TraceIDKey ContextKey = "traceID"

	// TraceIDHeader carries the trace ID in and out of the API.
	TraceIDHeader = "X-Trace-ID"
)

// WithClaims returns a copy of ctx carrying the caller's claims.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, ClaimsContextKey, claims)
}

// GetClaims returns the caller's claims placed in the context by the
// authentication middleware.
func GetClaims(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*auth.Claims)
	if !ok || claims == nil {
		return nil, false
	}
	return claims, true
}

// WithTraceID returns a copy of ctx carrying traceID.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID returns the request's trace ID, or "" when none is set.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// NewTraceID returns a random trace ID as 32 lowercase hex characters.
func NewTraceID() string {
	return compactUUID(uuid.New())
}

// NormalizeTraceID accepts a client-supplied trace ID in any UUID spelling
// and returns it in trace ID form. ok is false for anything else.
func NormalizeTraceID(raw string) (traceID string, ok bool) {
	if raw == "" || len(raw) > 45 {
		return "", false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return compactUUID(id), true
}

func compactUUID(id uuid.UUID) string {
	return strings.ReplaceAll(id.String(), "-", "")
}
