// Command chatparse-tui replays a transcript through a dialect parser one
// chunk at a time and shows how the resulting message grows, to make the
// prefix-extension guarantee visible: each reparse only ever appends to or
// completes what the previous one produced.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	dialectFlag := flag.String("dialect", "", "Dialect to replay with (generic, deepseek, xmlfunctions); overrides the config file")
	profileFlag := flag.String("profile", "", "Load a saved config profile by name instead of chatparse.yaml")
	inputFlag := flag.String("input", "", "Replay this file instead of stdin")
	toolsFlag := flag.String("tools", "", "Path to a JSON file holding a []chatmsg.ToolDef tool schema set")
	chunkFlag := flag.Int("chunk", 8, "Bytes revealed per step")
	flag.Parse()

	cfg, err := loadConfig(*profileFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chatparse-tui: config error: %s\n", err)
		os.Exit(1)
	}
	if *dialectFlag != "" {
		cfg.Dialect = *dialectFlag
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "chatparse-tui: config error: %s\n", err)
			os.Exit(1)
		}
	}

	transcript, err := readInput(*inputFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chatparse-tui: failed to read input: %s\n", err)
		os.Exit(1)
	}

	tools, err := readTools(*toolsFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chatparse-tui: failed to read tool schema: %s\n", err)
		os.Exit(1)
	}
	if tools == nil {
		tools = cfg.ToolWhitelist()
	}

	m := newModel(cfg, tools, transcript, *chunkFlag)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "chatparse-tui: %s\n", err)
		os.Exit(1)
	}
}
