// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Query the evidence index directly",
	Long: `Search embeds the query with the configured provider and returns the
most similar corpus documents with their cosine similarities. Useful for
inspecting what evidence the pipeline would retrieve for a given text.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	if query == "" && len(args) > 0 {
		query = strings.Join(args, " ")
	}
	if query == "" {
		return fmt.Errorf("query required: pass it as an argument or via --query")
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

	model, err := newProvider(cfg)
	if err != nil {
		return err
	}
	svc, err := openRetrieval(cfg, model, logger)
	if err != nil {
		return err
	}

	topK, _ := cmd.Flags().GetInt("top-k")
	if topK <= 0 {
		topK = cfg.Retrieval.TopK
	}

	hits, err := svc.Search(context.Background(), query, topK)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(hits)
	}

	if len(hits) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-10s  %-60s  %s\n", "Rank", "Similarity", "Title", "PMCID")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 95))
	for i, hit := range hits {
		title := hit.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-10.4f  %-60s  %s\n", i+1, hit.Similarity, title, hit.PMCID)
	}
	return nil
}

func init() {
	searchCmd.Flags().String("query", "", "free-text query")
	searchCmd.Flags().Int("top-k", 0, "number of results (0 = use configured default)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
