package logging

import (
	"context"

	"go.uber.org/zap"
)

// AuditEventType names a state change recorded in the audit trail.
type AuditEventType string

const (
	AuditProjectCreate AuditEventType = "project_create"
	AuditProjectUpdate AuditEventType = "project_update"
	AuditProjectDelete AuditEventType = "project_delete"
	AuditTaskCreate    AuditEventType = "task_create"
	AuditTaskUpdate    AuditEventType = "task_update"
	AuditTaskDelete    AuditEventType = "task_delete"
	AuditCommentCreate AuditEventType = "comment_create"
	AuditCommentUpdate AuditEventType = "comment_update"
	AuditCommentDelete AuditEventType = "comment_delete"
	AuditOrgCreate     AuditEventType = "organization_create"
	AuditOrgDelete     AuditEventType = "organization_delete"
)

// AuditEvent is one entry of the audit trail.
type AuditEvent struct {
	Type         AuditEventType
	Organization string // slug; empty when the request carried none
	EntityID     int64
	Success      bool
	Message      string
}

// AuditLogger writes audit events as structured zap entries.
type AuditLogger struct {
	requestID string
}

// AuditWithRequest tags every event with the HTTP request id.
func AuditWithRequest(requestID string) *AuditLogger {
	return &AuditLogger{requestID: requestID}
}

type requestIDKey struct{}

// WithRequestID stores the HTTP request id in ctx for audit entries.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// AuditFrom returns an audit logger tagged with ctx's request id, if any.
func AuditFrom(ctx context.Context) *AuditLogger {
	return AuditWithRequest(RequestID(ctx))
}

// Log records event. Failed mutations are logged at warn level.
func (a *AuditLogger) Log(event AuditEvent) {
	if !IsCategoryEnabled(CategoryAudit) {
		return
	}
	fields := []zap.Field{
		zap.String("category", string(CategoryAudit)),
		zap.String("event", string(event.Type)),
		zap.String("org", event.Organization),
		zap.Int64("entity_id", event.EntityID),
		zap.Bool("success", event.Success),
	}
	if a.requestID != "" {
		fields = append(fields, zap.String("request_id", a.requestID))
	}
	l := root().WithOptions(zap.AddCallerSkip(-1))
	if event.Success {
		l.Info(event.Message, fields...)
	} else {
		l.Warn(event.Message, fields...)
	}
}

// Mutation is shorthand for Log with the common fields.
func (a *AuditLogger) Mutation(t AuditEventType, org string, id int64, success bool, message string) {
	a.Log(AuditEvent{Type: t, Organization: org, EntityID: id, Success: success, Message: message})
}
