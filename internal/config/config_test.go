package config

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Test data defaults
	if cfg.Data.Source != "file" {
		t.Errorf("expected data source 'file', got %s", cfg.Data.Source)
	}
	if cfg.Data.File != "persons.json" {
		t.Errorf("expected data file 'persons.json', got %s", cfg.Data.File)
	}

	// Test source defaults
	if cfg.Source.Port != 3306 {
		t.Errorf("expected source port 3306, got %d", cfg.Source.Port)
	}
	if cfg.Source.TLS != "preferred" {
		t.Errorf("expected source TLS 'preferred', got %s", cfg.Source.TLS)
	}

	// Test completion defaults
	if cfg.Completion.Binding != "Person" {
		t.Errorf("expected binding 'Person', got %s", cfg.Completion.Binding)
	}
	if cfg.Completion.MaxDepth != 8 {
		t.Errorf("expected max_depth 8, got %d", cfg.Completion.MaxDepth)
	}

	// Test runner defaults
	if cfg.Runner.EchoConsole {
		t.Error("expected echo_console disabled by default")
	}
	if cfg.Runner.MaxCallStack != 4096 {
		t.Errorf("expected max_call_stack 4096, got %d", cfg.Runner.MaxCallStack)
	}

	// Test logging defaults
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected logging level 'warn', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Output != "stderr" {
		t.Errorf("expected logging output 'stderr', got %s", cfg.Logging.Output)
	}
}

func TestIndentString(t *testing.T) {
	tests := []struct {
		indent int
		want   string
	}{
		{0, ""},
		{-1, ""},
		{2, "  "},
		{4, "    "},
	}

	for _, tt := range tests {
		got := OutputConfig{Indent: tt.indent}.IndentString()
		if got != tt.want {
			t.Errorf("IndentString(%d) = %q, want %q", tt.indent, got, tt.want)
		}
	}
}
