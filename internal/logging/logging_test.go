package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-figref/pkg/interfaces"
)

func TestModuleLoggerDefaultsToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "")
	if logger == nil {
		t.Fatal("expected logger, got nil")
	}
	// No-op logger must absorb calls without panicking.
	logger.Info("ignored")
	logger.WithContext(context.Background()).Debug("ignored")
}

func TestModuleLoggerAttachesModuleField(t *testing.T) {
	provider := &stubProvider{logger: &stubFieldsLogger{}}

	logger := ModuleLogger(provider, "figref.prescan")
	if logger == nil {
		t.Fatal("expected logger, got nil")
	}

	if provider.requested != "figref.prescan" {
		t.Fatalf("expected module name to reach provider, got %q", provider.requested)
	}
	if provider.logger.fields["module"] != "figref.prescan" {
		t.Fatalf("expected module field, got %v", provider.logger.fields)
	}
}

func TestWithFieldsSkipsPlainLoggers(t *testing.T) {
	logger := NoOp()
	if got := WithFields(logger, map[string]any{"k": "v"}); got != logger {
		// noopLogger implements FieldsLogger and returns itself.
		t.Fatalf("expected same logger back, got %#v", got)
	}
	if got := WithFields(nil, map[string]any{"k": "v"}); got != nil {
		t.Fatalf("expected nil passthrough, got %#v", got)
	}
}

type stubProvider struct {
	logger    *stubFieldsLogger
	requested string
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = name
	return s.logger
}

type stubFieldsLogger struct {
	fields map[string]any
}

func (s *stubFieldsLogger) Trace(string, ...any) {}
func (s *stubFieldsLogger) Debug(string, ...any) {}
func (s *stubFieldsLogger) Info(string, ...any)  {}
func (s *stubFieldsLogger) Warn(string, ...any)  {}
func (s *stubFieldsLogger) Error(string, ...any) {}
func (s *stubFieldsLogger) Fatal(string, ...any) {}

func (s *stubFieldsLogger) WithContext(context.Context) interfaces.Logger {
	return s
}

func (s *stubFieldsLogger) WithFields(fields map[string]any) interfaces.Logger {
	s.fields = fields
	return s
}
