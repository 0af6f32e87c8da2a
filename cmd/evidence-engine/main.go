// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the evidence-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/evidence-engine/internal/audit"
	"github.com/pdiddy/evidence-engine/internal/logging"
	"github.com/pdiddy/evidence-engine/internal/provider"
	"github.com/pdiddy/evidence-engine/internal/retrieval"
	"github.com/pdiddy/evidence-engine/internal/secrets"
	"github.com/pdiddy/evidence-engine/internal/vecindex"
	"github.com/pdiddy/evidence-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the evidence-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "evidence-engine",
	Short: "Evidence-grounded summarization of clinical notes",
	Long: `evidence-engine turns free-text clinical notes into structured, evidence-backed
summaries. Every recommendation is matched against a medical literature index,
scored for confidence, checked for grounding, and attested by a signed PHI-free
audit record.

Each operation is a subcommand: corpus builds and inspects the evidence index,
search queries it directly, process runs the full summarization pipeline, and
audit lists and verifies the tamper-evident trail.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./evidence-engine.yaml or ~/.config/evidence-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("evidence-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "evidence-engine"))
		}
	}

	viper.SetEnvPrefix("EVIDENCE_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig merges the config file and environment over the defaults.
func loadConfig() (types.PipelineConfig, error) {
	cfg := types.DefaultPipelineConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.PipelineConfig{}, fmt.Errorf("parsing configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger from config.
func newLogger(cfg types.PipelineConfig) (*zap.Logger, error) {
	return logging.New(cfg.Logging)
}

// newProvider selects the model provider for the configured mode.
func newProvider(cfg types.PipelineConfig) (provider.ModelProvider, error) {
	switch cfg.Provider.Mode {
	case types.ProviderModeDemo, "":
		return provider.NewDemo(), nil
	case types.ProviderModeHTTP:
		providerCfg := cfg.Provider
		providerCfg.APIKey = secretDefault("model-api-key", providerCfg.APIKey)
		return provider.NewHTTP(providerCfg), nil
	default:
		return nil, fmt.Errorf("unknown provider mode %q: use demo or http", cfg.Provider.Mode)
	}
}

// openRetrieval loads the evidence index from disk and wraps it in a
// retrieval service.
func openRetrieval(cfg types.PipelineConfig, model provider.ModelProvider, logger *zap.Logger) (*retrieval.Service, error) {
	index, err := vecindex.Load(cfg.Retrieval.IndexPath)
	if err != nil {
		return nil, fmt.Errorf("loading evidence index %s (run 'evidence-engine corpus build' first): %w", cfg.Retrieval.IndexPath, err)
	}
	return retrieval.NewService(index, model, logger), nil
}

// openStore selects the audit store for the configured mode.
func openStore(cfg types.PipelineConfig) (audit.Store, func() error, error) {
	switch cfg.Audit.Mode {
	case types.AuditModeDemo, "":
		store, err := audit.NewFileStore(cfg.Audit.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() error { return nil }, nil
	case types.AuditModeSQLite:
		store, err := audit.NewSQLiteStore(cfg.Audit.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown audit mode %q: use demo or sqlite", cfg.Audit.Mode)
	}
}

// newRecorder wires the audit recorder over the configured store, using
// the production signing key when one is present in .secrets/.
func newRecorder(cfg types.PipelineConfig, store audit.Store, logger *zap.Logger) *audit.Recorder {
	var key []byte
	if v := secretDefault("audit-signing-key", ""); v != "" {
		key = []byte(v)
	}
	return audit.NewRecorder(store, key, cfg.Audit.ModelVersion, logger)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
