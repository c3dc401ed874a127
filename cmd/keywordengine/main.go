package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"KeywordEngine/internal/app"
	"KeywordEngine/internal/config"
	"KeywordEngine/internal/domain"
	"KeywordEngine/internal/logging"
)

// Reads a content document (JSON: {"id", "title", "body", "headings"}) from
// the path argument or stdin, runs one extraction, prints the result JSON.
func main() {
	ctx := context.Background()
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	content, err := readContent(os.Args[1:])
	if err != nil {
		logger.Error("read content", "error", err)
		os.Exit(1)
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build application", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	result, err := application.Extract(ctx, content)
	if err != nil {
		logger.Error("extraction failed", "error", err)
		os.Exit(1)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
}

func readContent(args []string) (domain.Content, error) {
	var raw []byte
	var err error

	if len(args) > 0 && args[0] != "-" {
		raw, err = os.ReadFile(args[0])
	} else {
		raw, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return domain.Content{}, err
	}

	var content domain.Content
	if err := json.Unmarshal(raw, &content); err != nil {
		return domain.Content{}, err
	}
	return content, nil
}
