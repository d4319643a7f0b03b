package logging

import (
	"context"
)

// Context keys for common log fields.
type contextKey string

const (
	// RunIDKey is the context key for the ledger run ID that correlates
	// every log line emitted by one `coe check` invocation.
	RunIDKey contextKey = "run_id"

	// CandidateMarkKey is the context key for the candidate project name
	// being checked.
	CandidateMarkKey contextKey = "candidate_mark"

	// NamespaceKey is the context key for the namespace an adapter call is
	// running against (e.g. "npm", "github_org").
	NamespaceKey contextKey = "namespace"

	// CheckIDKey is the context key for a single Check's content-addressed
	// ID, as produced by hashids.CheckID.
	CheckIDKey contextKey = "check_id"
)

// WithRunID adds a run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID retrieves the run ID from the context.
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDKey).(string); ok {
		return runID
	}
	return ""
}

// WithCandidateMark adds the candidate project name being checked to the context.
func WithCandidateMark(ctx context.Context, mark string) context.Context {
	return context.WithValue(ctx, CandidateMarkKey, mark)
}

// GetCandidateMark retrieves the candidate project name from the context.
func GetCandidateMark(ctx context.Context) string {
	if mark, ok := ctx.Value(CandidateMarkKey).(string); ok {
		return mark
	}
	return ""
}

// WithNamespace adds the namespace a check is running against to the context.
func WithNamespace(ctx context.Context, namespace string) context.Context {
	return context.WithValue(ctx, NamespaceKey, namespace)
}

// GetNamespace retrieves the namespace from the context.
func GetNamespace(ctx context.Context) string {
	if namespace, ok := ctx.Value(NamespaceKey).(string); ok {
		return namespace
	}
	return ""
}

// WithCheckID adds a Check's content-addressed ID to the context.
func WithCheckID(ctx context.Context, checkID string) context.Context {
	return context.WithValue(ctx, CheckIDKey, checkID)
}

// GetCheckID retrieves the check ID from the context.
func GetCheckID(ctx context.Context) string {
	if checkID, ok := ctx.Value(CheckIDKey).(string); ok {
		return checkID
	}
	return ""
}

// extractContextFields extracts common fields from context for logging.
// Returns a slice of key-value pairs suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if runID := GetRunID(ctx); runID != "" {
		fields = append(fields, "run_id", runID)
	}

	if mark := GetCandidateMark(ctx); mark != "" {
		fields = append(fields, "candidate_mark", mark)
	}

	if namespace := GetNamespace(ctx); namespace != "" {
		fields = append(fields, "namespace", namespace)
	}

	if checkID := GetCheckID(ctx); checkID != "" {
		fields = append(fields, "check_id", checkID)
	}

	return fields
}

// ContextLogger is a logger that automatically includes context fields.
type ContextLogger struct {
	logger *Logger
	ctx    context.Context
}

// NewContextLogger creates a logger that automatically includes context fields.
func NewContextLogger(logger *Logger, ctx context.Context) *ContextLogger {
	return &ContextLogger{
		logger: logger.WithContext(ctx),
		ctx:    ctx,
	}
}

// Debug logs a debug message with context fields.
func (cl *ContextLogger) Debug(msg string, args ...any) {
	cl.logger.DebugContext(cl.ctx, msg, args...)
}

// Info logs an info message with context fields.
func (cl *ContextLogger) Info(msg string, args ...any) {
	cl.logger.InfoContext(cl.ctx, msg, args...)
}

// Warn logs a warning message with context fields.
func (cl *ContextLogger) Warn(msg string, args ...any) {
	cl.logger.WarnContext(cl.ctx, msg, args...)
}

// Error logs an error message with context fields.
func (cl *ContextLogger) Error(msg string, args ...any) {
	cl.logger.ErrorContext(cl.ctx, msg, args...)
}

// With creates a new context logger with additional fields.
func (cl *ContextLogger) With(args ...any) *ContextLogger {
	return &ContextLogger{
		logger: cl.logger.With(args...),
		ctx:    cl.ctx,
	}
}
