package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jeanpaul/chatparse/internal/chatmsg"
	"github.com/jeanpaul/chatparse/internal/config"
)

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
