package logging

import (
	"context"
	"testing"
)

func TestContextKeys(t *testing.T) {
	ctx := context.Background()

	// Test RunID
	ctx = WithRunID(ctx, "run-123")
	if got := GetRunID(ctx); got != "run-123" {
		t.Errorf("GetRunID() = %q, want %q", got, "run-123")
	}

	// Test CandidateMark
	ctx = WithCandidateMark(ctx, "acme")
	if got := GetCandidateMark(ctx); got != "acme" {
		t.Errorf("GetCandidateMark() = %q, want %q", got, "acme")
	}

	// Test Namespace
	ctx = WithNamespace(ctx, "npm")
	if got := GetNamespace(ctx); got != "npm" {
		t.Errorf("GetNamespace() = %q, want %q", got, "npm")
	}

	// Test CheckID
	ctx = WithCheckID(ctx, "chk.npm.abc123")
	if got := GetCheckID(ctx); got != "chk.npm.abc123" {
		t.Errorf("GetCheckID() = %q, want %q", got, "chk.npm.abc123")
	}
}

func TestContextKeys_Empty(t *testing.T) {
	ctx := context.Background()

	// Test that getters return empty strings for missing values
	tests := []struct {
		name string
		get  func(context.Context) string
	}{
		{"RunID", GetRunID},
		{"CandidateMark", GetCandidateMark},
		{"Namespace", GetNamespace},
		{"CheckID", GetCheckID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.get(ctx); got != "" {
				t.Errorf("Get%s() = %q, want empty string", tt.name, got)
			}
		})
	}
}

func TestExtractContextFields(t *testing.T) {
	tests := []struct {
		name       string
		setupCtx   func(context.Context) context.Context
		wantFields map[string]string
	}{
		{
			name: "empty context",
			setupCtx: func(ctx context.Context) context.Context {
				return ctx
			},
			wantFields: map[string]string{},
		},
		{
			name: "run ID only",
			setupCtx: func(ctx context.Context) context.Context {
				return WithRunID(ctx, "run-123")
			},
			wantFields: map[string]string{
				"run_id": "run-123",
			},
		},
		{
			name: "multiple fields",
			setupCtx: func(ctx context.Context) context.Context {
				ctx = WithRunID(ctx, "run-456")
				ctx = WithCandidateMark(ctx, "acme")
				ctx = WithNamespace(ctx, "npm")
				return ctx
			},
			wantFields: map[string]string{
				"run_id":         "run-456",
				"candidate_mark": "acme",
				"namespace":      "npm",
			},
		},
		{
			name: "all fields",
			setupCtx: func(ctx context.Context) context.Context {
				ctx = WithRunID(ctx, "run-789")
				ctx = WithCandidateMark(ctx, "acme")
				ctx = WithNamespace(ctx, "github_org")
				ctx = WithCheckID(ctx, "chk.github_org.abc")
				return ctx
			},
			wantFields: map[string]string{
				"run_id":         "run-789",
				"candidate_mark": "acme",
				"namespace":      "github_org",
				"check_id":       "chk.github_org.abc",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := tt.setupCtx(context.Background())
			fields := extractContextFields(ctx)

			// Convert []any to map for easier checking
			fieldsMap := make(map[string]string)
			for i := 0; i < len(fields); i += 2 {
				key := fields[i].(string)
				value := fields[i+1].(string)
				fieldsMap[key] = value
			}

			// Check expected fields are present
			for key, expectedValue := range tt.wantFields {
				if gotValue, ok := fieldsMap[key]; !ok {
					t.Errorf("Expected field %q not found", key)
				} else if gotValue != expectedValue {
					t.Errorf("Field %q = %q, want %q", key, gotValue, expectedValue)
				}
			}

			// Check no extra fields
			if len(fieldsMap) != len(tt.wantFields) {
				t.Errorf("Got %d fields, want %d. Fields: %v",
					len(fieldsMap), len(tt.wantFields), fieldsMap)
			}
		})
	}
}

func TestContextLogger(t *testing.T) {
	// This test verifies that ContextLogger properly wraps the logger
	// Actual logging is tested in logger_test.go

	ctx := context.Background()
	ctx = WithRunID(ctx, "run-cl-1")
	ctx = WithCandidateMark(ctx, "acme")

	// Create a basic logger (using nil config to test error handling is in logger_test)
	logger, err := New(Config{
		Level:         "info",
		Format:        "json",
		RedactSecrets: false,
		BufferSize:    100,
	})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Shutdown()

	// Create context logger
	ctxLogger := NewContextLogger(logger, ctx)
	if ctxLogger == nil {
		t.Fatal("NewContextLogger returned nil")
	}

	// Test that methods don't panic
	ctxLogger.Debug("debug message")
	ctxLogger.Info("info message")
	ctxLogger.Warn("warn message")
	ctxLogger.Error("error message")

	// Test With
	childLogger := ctxLogger.With("extra", "value")
	if childLogger == nil {
		t.Fatal("ContextLogger.With returned nil")
	}

	childLogger.Info("child message")
}

func TestContextLogger_With(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-with-1")

	logger, err := New(Config{
		Level:         "info",
		Format:        "json",
		RedactSecrets: false,
		BufferSize:    100,
	})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Shutdown()

	ctxLogger := NewContextLogger(logger, ctx)

	// Create child logger with additional fields
	childLogger := ctxLogger.With("key1", "value1", "key2", 42)
	if childLogger == nil {
		t.Fatal("ContextLogger.With returned nil")
	}

	// Verify it doesn't panic
	childLogger.Info("test message")
}

func TestContextChaining(t *testing.T) {
	// Test that context values can be added incrementally
	ctx := context.Background()
	ctx = WithRunID(ctx, "run-chain-1")
	ctx = WithCandidateMark(ctx, "acme")
	ctx = WithNamespace(ctx, "npm")

	// Verify all values are present
	if got := GetRunID(ctx); got != "run-chain-1" {
		t.Errorf("After chaining, GetRunID() = %q, want %q", got, "run-chain-1")
	}
	if got := GetCandidateMark(ctx); got != "acme" {
		t.Errorf("After chaining, GetCandidateMark() = %q, want %q", got, "acme")
	}
	if got := GetNamespace(ctx); got != "npm" {
		t.Errorf("After chaining, GetNamespace() = %q, want %q", got, "npm")
	}

	// Add more values
	ctx = WithCheckID(ctx, "chk.npm.xyz")

	if got := GetCheckID(ctx); got != "chk.npm.xyz" {
		t.Errorf("After more chaining, GetCheckID() = %q, want %q", got, "chk.npm.xyz")
	}

	// Verify original values still present
	if got := GetRunID(ctx); got != "run-chain-1" {
		t.Errorf("Original value changed: GetRunID() = %q, want %q", got, "run-chain-1")
	}
}

func TestContextOverwrite(t *testing.T) {
	// Test that context values can be overwritten
	ctx := context.Background()
	ctx = WithRunID(ctx, "run-old")

	if got := GetRunID(ctx); got != "run-old" {
		t.Errorf("Initial GetRunID() = %q, want %q", got, "run-old")
	}

	// Overwrite with new value
	ctx = WithRunID(ctx, "run-new")

	if got := GetRunID(ctx); got != "run-new" {
		t.Errorf("After overwrite, GetRunID() = %q, want %q", got, "run-new")
	}
}

func BenchmarkExtractContextFields(b *testing.B) {
	ctx := context.Background()
	ctx = WithRunID(ctx, "run-bench")
	ctx = WithCandidateMark(ctx, "acme")
	ctx = WithNamespace(ctx, "npm")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = extractContextFields(ctx)
	}
}

func BenchmarkWithRunID(b *testing.B) {
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = WithRunID(ctx, "run-123")
	}
}

func BenchmarkGetRunID(b *testing.B) {
	ctx := WithRunID(context.Background(), "run-123")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetRunID(ctx)
	}
}
