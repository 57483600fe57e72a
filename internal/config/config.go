// Package config loads the chatparse.Syntax a parser runs with from a YAML
// file, the same viper + $VAR-expansion pattern the teacher used for
// provider profiles, repointed at syntax configuration instead of
// providers/models.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"

	"github.com/jeanpaul/chatparse/internal/chatmsg"
	"github.com/jeanpaul/chatparse/internal/chatparse"
)

// Config is the on-disk shape of chatparse.yaml: which dialect to run and
// the Syntax it runs with.
type Config struct {
	Dialect string `yaml:"dialect" mapstructure:"dialect"` // "generic" | "deepseek" | "xmlfunctions"

	ReasoningFormat    string `yaml:"reasoning_format" mapstructure:"reasoning_format"` // "none" | "generic" | "deepseek"
	ReasoningInContent bool   `yaml:"reasoning_in_content" mapstructure:"reasoning_in_content"`
	ThinkingForcedOpen bool   `yaml:"thinking_forced_open" mapstructure:"thinking_forced_open"`
	ThinkOpen          string `yaml:"think_open" mapstructure:"think_open"`
	ThinkClose         string `yaml:"think_close" mapstructure:"think_close"`

	// Tools is a whitelist of tool names the XMLFunctions dialect accepts;
	// empty means no whitelist (any function name is accepted).
	Tools []string `yaml:"tools" mapstructure:"tools"`
}

var envVarRe = regexp.MustCompile(`\$([A-Z_][A-Z0-9_]*)`)

func expandEnv(s string) string {
	return envVarRe.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimPrefix(match, "$")
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}

func DefaultConfig() *Config {
	return &Config{
		Dialect:         "generic",
		ReasoningFormat: "generic",
		ThinkOpen:       "<think>",
		ThinkClose:      "</think>",
	}
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "chatparse")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "chatparse")
}

// Load reads chatparse.yaml from the current directory or the user's config
// directory, falling back to DefaultConfig when no file is present.
// Environment variables override file values via CHATPARSE_* (e.g.
// CHATPARSE_DIALECT), and any $VAR reference inside ThinkOpen or ThinkClose
// is additionally expanded against the process environment; other fields are
// not expanded.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("chatparse")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(configDir())

	viper.SetEnvPrefix("CHATPARSE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg.ThinkOpen = expandEnv(cfg.ThinkOpen)
	cfg.ThinkClose = expandEnv(cfg.ThinkClose)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for internally inconsistent settings.
func (c *Config) Validate() error {
	switch c.Dialect {
	case "generic", "deepseek", "xmlfunctions":
	default:
		return fmt.Errorf("config: dialect %q must be one of generic, deepseek, xmlfunctions", c.Dialect)
	}
	switch c.ReasoningFormat {
	case "none", "generic", "deepseek":
	default:
		return fmt.Errorf("config: reasoning_format %q must be one of none, generic, deepseek", c.ReasoningFormat)
	}
	if c.ThinkOpen == "" {
		c.ThinkOpen = "<think>"
	}
	if c.ThinkClose == "" {
		c.ThinkClose = "</think>"
	}
	return nil
}

// Syntax translates the loaded configuration into a chatparse.Syntax.
func (c *Config) Syntax() chatparse.Syntax {
	format := chatparse.ReasoningGeneric
	switch c.ReasoningFormat {
	case "none":
		format = chatparse.ReasoningNone
	case "deepseek":
		format = chatparse.ReasoningDeepSeek
	}
	return chatparse.Syntax{
		ReasoningFormat:    format,
		ReasoningInContent: c.ReasoningInContent,
		ThinkingForcedOpen: c.ThinkingForcedOpen,
		ThinkOpen:          c.ThinkOpen,
		ThinkClose:         c.ThinkClose,
	}
}

// ToolWhitelist turns the configured Tools names into bare ToolDefs (no
// declared Parameters), for callers that whitelist by name alone rather than
// supplying a full tool-schema file. Returns nil when Tools is empty (nil or
// zero-length alike), which the XML tool-call parser treats as no whitelist.
func (c *Config) ToolWhitelist() []chatmsg.ToolDef {
	if len(c.Tools) == 0 {
		return nil
	}
	tools := make([]chatmsg.ToolDef, len(c.Tools))
	for i, name := range c.Tools {
		tools[i] = chatmsg.ToolDef{Name: name}
	}
	return tools
}
