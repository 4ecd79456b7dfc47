package logging

import (
	"context"
)

// Context keys for common log fields.
type contextKey string

const (
	// RunIDKey is the context key for check run IDs.
	RunIDKey contextKey = "run_id"

	// WorkspaceKey is the context key for the workspace directory.
	WorkspaceKey contextKey = "workspace"

	// TriggerKey is the context key for what started a run (cli, file, schedule).
	TriggerKey contextKey = "trigger"
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

// WithWorkspace adds a workspace directory to the context.
func WithWorkspace(ctx context.Context, workspace string) context.Context {
	return context.WithValue(ctx, WorkspaceKey, workspace)
}

// GetWorkspace retrieves the workspace directory from the context.
func GetWorkspace(ctx context.Context) string {
	if workspace, ok := ctx.Value(WorkspaceKey).(string); ok {
		return workspace
	}
	return ""
}

// WithTrigger adds the run trigger to the context.
func WithTrigger(ctx context.Context, trigger string) context.Context {
	return context.WithValue(ctx, TriggerKey, trigger)
}

// GetTrigger retrieves the run trigger from the context.
func GetTrigger(ctx context.Context) string {
	if trigger, ok := ctx.Value(TriggerKey).(string); ok {
		return trigger
	}
	return ""
}

// extractContextFields returns the context fields as key-value pairs
// suitable for Logger.With.
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if runID := GetRunID(ctx); runID != "" {
		fields = append(fields, "run_id", runID)
	}
	if workspace := GetWorkspace(ctx); workspace != "" {
		fields = append(fields, "workspace", workspace)
	}
	if trigger := GetTrigger(ctx); trigger != "" {
		fields = append(fields, "trigger", trigger)
	}

	return fields
}
