package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	ActorID string
	Meta    map[string]any
}

// AuditLogger records security relevant actions apart from the request log.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
