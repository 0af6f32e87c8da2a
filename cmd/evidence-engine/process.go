// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/evidence-engine/internal/phi"
	"github.com/pdiddy/evidence-engine/internal/pipeline"
	"github.com/pdiddy/evidence-engine/internal/ratelimit"
	"github.com/pdiddy/evidence-engine/internal/scoring"
)

// limiter is shared across invocations within the process.
var limiter *ratelimit.Limiter

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the full summarization pipeline on a clinical note",
	Long: `Process runs a clinical note through the complete pipeline: evidence
retrieval, summarization, per-recommendation evidence matching, confidence
scoring, grounding checks, translation, and audit recording. The structured
response is written to stdout as JSON.

Notes containing likely protected health information are rejected before any
processing; de-identify the note and retry.`,
	RunE: runProcess,
}

func runProcess(cmd *cobra.Command, args []string) error {
	note, err := readNote(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	// Reject PHI before the note reaches any other component.
	if detected, classes := phi.Detect(note); detected {
		return fmt.Errorf("note appears to contain protected health information (%s); de-identify it and retry", strings.Join(classes, ", "))
	}

	callerID, _ := cmd.Flags().GetString("user")
	if limiter == nil {
		limiter = ratelimit.New(cfg.RateLimit)
	}
	limitKey := callerID
	if limitKey == "" {
		limitKey = "anonymous"
	}
	if !limiter.Allow(limitKey) {
		return fmt.Errorf("rate limit exceeded: at most %d requests per %s", cfg.RateLimit.Limit, cfg.RateLimit.Window)
	}

	model, err := newProvider(cfg)
	if err != nil {
		return err
	}
	svc, err := openRetrieval(cfg, model, logger)
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	orchestrator := pipeline.New(
		svc,
		model,
		scoring.NewDetector(cfg.Scoring),
		newRecorder(cfg, store, logger),
		logger,
	)

	requestID, _ := cmd.Flags().GetString("request-id")
	response, err := orchestrator.ProcessNote(context.Background(), note, requestID, callerID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(response)
}

// readNote resolves the note text from --note, --note-file, or stdin.
func readNote(cmd *cobra.Command, args []string) (string, error) {
	if note, _ := cmd.Flags().GetString("note"); note != "" {
		return note, nil
	}
	if file, _ := cmd.Flags().GetString("note-file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading note file: %w", err)
		}
		return string(data), nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	return "", fmt.Errorf("note required: provide --note, --note-file, or the note as an argument")
}

func init() {
	processCmd.Flags().String("note", "", "clinical note text")
	processCmd.Flags().String("note-file", "", "path to a file containing the note")
	processCmd.Flags().String("request-id", "", "request UUID (default: generated)")
	processCmd.Flags().String("user", "", "caller identifier for rate limiting and the audit trail (stored only as a hash)")

	rootCmd.AddCommand(processCmd)
}
