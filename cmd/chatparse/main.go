// Command chatparse parses one assistant turn from a file or stdin through a
// configured dialect and prints the resulting message as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jeanpaul/chatparse/internal/chatmsg"
	"github.com/jeanpaul/chatparse/internal/chatparse/dialect"
	"github.com/jeanpaul/chatparse/internal/chatparse/internal/logx"
	"github.com/jeanpaul/chatparse/internal/config"
	"github.com/jeanpaul/chatparse/internal/schema"
)

func main() {
	dialectFlag := flag.String("dialect", "", "Dialect to parse with (generic, deepseek, xmlfunctions); overrides the config file")
	profileFlag := flag.String("profile", "", "Load a saved config profile by name instead of chatparse.yaml")
	inputFlag := flag.String("input", "", "Read the turn from this file instead of stdin")
	toolsFlag := flag.String("tools", "", "Path to a JSON file holding a []chatmsg.ToolDef tool schema set")
	partialFlag := flag.Bool("partial", false, "Treat input as a possibly-incomplete turn (more bytes may still arrive)")
	debugFlag := flag.Bool("debug", false, "Log recoverable format errors at debug level")
	flag.Usage = showHelp
	flag.Parse()

	if *debugFlag {
		logx.SetLevel(-4) // slog.LevelDebug
	}

	cfg, err := loadConfig(*profileFlag)
	if err != nil {
		fatal("config error: %s", err)
	}
	if *dialectFlag != "" {
		cfg.Dialect = *dialectFlag
		if err := cfg.Validate(); err != nil {
			fatal("config error: %s", err)
		}
	}

	input, err := readInput(*inputFlag)
	if err != nil {
		fatal("failed to read input: %s", err)
	}

	tools, err := readTools(*toolsFlag)
	if err != nil {
		fatal("failed to read tool schema: %s", err)
	}
	if tools == nil {
		tools = cfg.ToolWhitelist()
	}

	d := buildDialect(cfg, tools)
	msg, err := d.Parse(input, *partialFlag, tools)
	if err != nil {
		fatal("parse error: %s", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(msg); err != nil {
		fatal("failed to encode message: %s", err)
	}
}

type parser interface {
	Parse(input string, isPartial bool, tools []chatmsg.ToolDef) (*chatmsg.Message, error)
}

func buildDialect(cfg *config.Config, tools []chatmsg.ToolDef) parser {
	switch cfg.Dialect {
	case "deepseek":
		return dialect.DeepSeek{ReasoningInContent: cfg.ReasoningInContent}
	case "xmlfunctions":
		return dialect.XMLFunctions{Syntax: cfg.Syntax(), Validator: schemaValidatorFor(tools)}
	default:
		return dialect.Generic{Syntax: cfg.Syntax()}
	}
}

// schemaValidatorFor only wires a Validator when at least one tool declares
// Parameters; otherwise there is nothing to check against.
func schemaValidatorFor(tools []chatmsg.ToolDef) *schema.Validator {
	for _, t := range tools {
		if t.Parameters != nil {
			return schema.NewValidator()
		}
	}
	return nil
}

func loadConfig(profile string) (*config.Config, error) {
	if profile != "" {
		return config.LoadProfile(profile)
	}
	return config.Load()
}

func readInput(path string) (string, error) {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func readTools(path string) ([]chatmsg.ToolDef, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tools []chatmsg.ToolDef
	if err := json.Unmarshal(data, &tools); err != nil {
		return nil, fmt.Errorf("invalid tool schema file: %w", err)
	}
	return tools, nil
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "chatparse: "+format+"\n", args...)
	os.Exit(1)
}

func showHelp() {
	fmt.Fprint(os.Stderr, `chatparse - parse one assistant turn into a structured message

USAGE:
  chatparse [flags] < transcript.txt
  chatparse [flags] --input transcript.txt

FLAGS:
`)
	flag.PrintDefaults()
}
