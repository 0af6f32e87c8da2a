// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/evidence-engine/internal/corpus"
	"github.com/pdiddy/evidence-engine/internal/retrieval"
	"github.com/pdiddy/evidence-engine/internal/vecindex"
	"github.com/pdiddy/evidence-engine/pkg/types"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Build and inspect the evidence index",
	Long: `Corpus manages the vector index the pipeline retrieves evidence from.
Use build to embed and index a document collection, and info to inspect
an existing index.`,
}

var corpusBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Embed a document collection and write the evidence index",
	Long: `Build embeds each corpus document with the configured provider, indexes
the vectors, and writes the index plus its document metadata sidecar to the
configured index path. With no --file, the built-in demo collection is used.`,
	RunE: runCorpusBuild,
}

func runCorpusBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	var docs []types.Document
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		docs, err = corpus.LoadFile(file)
		if err != nil {
			return err
		}
	} else {
		docs = corpus.Demo()
	}

	model, err := newProvider(cfg)
	if err != nil {
		return err
	}

	index := vecindex.New(cfg.Retrieval.Dimension)
	svc := retrieval.NewService(index, model, logger)
	if err := svc.AddDocuments(context.Background(), docs); err != nil {
		return err
	}

	if err := index.Save(cfg.Retrieval.IndexPath); err != nil {
		return err
	}
	fmt.Printf("Indexed %d documents to %s\n", index.Len(), cfg.Retrieval.IndexPath)
	return nil
}

var corpusInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show document count and dimension of the evidence index",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		index, err := vecindex.Load(cfg.Retrieval.IndexPath)
		if err != nil {
			return err
		}
		fmt.Printf("Index:     %s\n", cfg.Retrieval.IndexPath)
		fmt.Printf("Documents: %d\n", index.Len())
		fmt.Printf("Dimension: %d\n", index.Dimension())
		return nil
	},
}

func init() {
	corpusBuildCmd.Flags().String("file", "", "YAML corpus file (default: built-in demo collection)")

	corpusCmd.AddCommand(corpusBuildCmd)
	corpusCmd.AddCommand(corpusInfoCmd)

	rootCmd.AddCommand(corpusCmd)
}
