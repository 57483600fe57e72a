package config

import (
	"testing"

	"github.com/jeanpaul/chatparse/internal/chatparse"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dialect != "generic" {
		t.Errorf("Default dialect = %q, want %q", cfg.Dialect, "generic")
	}
	if cfg.ReasoningFormat != "generic" {
		t.Errorf("Default reasoning_format = %q, want %q", cfg.ReasoningFormat, "generic")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig() failed validation: %v", err)
	}
}

func TestValidateRejectsUnknownDialect(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dialect = "not-a-dialect"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown dialect, got nil")
	}
}

func TestValidateRejectsUnknownReasoningFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReasoningFormat = "not-a-format"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown reasoning_format, got nil")
	}
}

func TestValidateFillsThinkLiterals(t *testing.T) {
	cfg := &Config{Dialect: "generic", ReasoningFormat: "none"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if cfg.ThinkOpen != "<think>" || cfg.ThinkClose != "</think>" {
		t.Errorf("Validate() did not fill default think literals, got %q/%q", cfg.ThinkOpen, cfg.ThinkClose)
	}
}

func TestSyntaxTranslation(t *testing.T) {
	cfg := &Config{
		ReasoningFormat:    "deepseek",
		ReasoningInContent: true,
		ThinkingForcedOpen: true,
		ThinkOpen:          "<reason>",
		ThinkClose:         "</reason>",
	}
	syn := cfg.Syntax()

	if syn.ReasoningFormat != chatparse.ReasoningDeepSeek {
		t.Errorf("Syntax().ReasoningFormat = %v, want ReasoningDeepSeek", syn.ReasoningFormat)
	}
	if !syn.ReasoningInContent || !syn.ThinkingForcedOpen {
		t.Error("Syntax() did not carry ReasoningInContent/ThinkingForcedOpen through")
	}
	if syn.ThinkOpen != "<reason>" || syn.ThinkClose != "</reason>" {
		t.Errorf("Syntax() think literals = %q/%q, want custom values preserved", syn.ThinkOpen, syn.ThinkClose)
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("CHATPARSE_TEST_VAR", "hello")
	if got := expandEnv("prefix-$CHATPARSE_TEST_VAR-suffix"); got != "prefix-hello-suffix" {
		t.Errorf("expandEnv() = %q, want %q", got, "prefix-hello-suffix")
	}
	if got := expandEnv("$UNSET_CHATPARSE_VAR"); got != "$UNSET_CHATPARSE_VAR" {
		t.Errorf("expandEnv() on unset var = %q, want unchanged", got)
	}
}
