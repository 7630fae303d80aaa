package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/modelfix-agent/internal/adapters/console"
	"github.com/PabloGalante/modelfix-agent/internal/adapters/llm"
	"github.com/PabloGalante/modelfix-agent/internal/adapters/modelfile"
	filestore "github.com/PabloGalante/modelfix-agent/internal/adapters/storage/file"
	firestorestore "github.com/PabloGalante/modelfix-agent/internal/adapters/storage/firestore"
	memstore "github.com/PabloGalante/modelfix-agent/internal/adapters/storage/memory"
	"github.com/PabloGalante/modelfix-agent/internal/app/session"
	"github.com/PabloGalante/modelfix-agent/internal/app/workflow"
	"github.com/PabloGalante/modelfix-agent/internal/config"
	"github.com/PabloGalante/modelfix-agent/internal/domain"
	"github.com/PabloGalante/modelfix-agent/internal/observability"
	"github.com/PabloGalante/modelfix-agent/internal/prompt"
)

var (
	flagModelPath string
	flagMockLLM   bool
)

var rootCmd = &cobra.Command{
	Use:   "modelfix",
	Short: "Interactive LLM-assisted correction of LTS/FLTL models",
	Long: `modelfix drives a human-in-the-loop correction workflow for
LTS/FLTL behavioral models used in Discrete Controller Synthesis.

It first asks the model for spelling fixes, then loops on grammar
fixes: you apply each suggestion to the model file, try to compile,
and paste the compiler error back until compilation succeeds.`,
	RunE: run,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&flagModelPath, "model-file", "f", "", "path to the model under correction (overrides MODELFIX_MODEL_PATH)")
	rootCmd.Flags().BoolVar(&flagMockLLM, "mock-llm", false, "use the offline mock model client")
}

func run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	log := observability.Logger()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagModelPath != "" {
		cfg.ModelPath = flagModelPath
	}
	if flagMockLLM {
		cfg.UseMockLLM = true
	}

	// Model client: mock or Gemini by config (useful for dev).
	var client domain.ModelClient
	if cfg.UseMockLLM {
		log.Info("using mock model client")
		client = llm.NewMockClient()
	} else {
		log.Info("using Gemini model client", "model", cfg.ModelName)
		client, err = llm.NewGeminiClient(ctx, llm.GeminiConfig{
			GCPProject:  cfg.GCPProject,
			GCPLocation: cfg.GCPLocation,
		})
		if err != nil {
			return fmt.Errorf("initializing Gemini client: %w", err)
		}
	}

	// Storage: file, memory or Firestore.
	var store domain.HistoryStore
	switch cfg.StorageBackend {
	case "firestore":
		if cfg.GCPProject == "" {
			return fmt.Errorf("MODELFIX_GCP_PROJECT is required for the firestore storage backend")
		}
		log.Info("using Firestore storage", "project", cfg.GCPProject)
		store, err = firestorestore.NewStore(ctx, cfg.GCPProject)
		if err != nil {
			return fmt.Errorf("initializing Firestore store: %w", err)
		}
	case "memory":
		log.Info("using in-memory storage")
		store = memstore.NewStore()
	default:
		log.Info("using file storage", "snapshot", cfg.HistoryPath, "audit_log", cfg.AuditLogPath)
		store = filestore.NewStore(cfg.HistoryPath, cfg.AuditLogPath)
	}

	prompts, err := prompt.Load(cfg.PromptDir)
	if err != nil {
		return fmt.Errorf("loading prompt templates: %w", err)
	}

	source := modelfile.NewSource(cfg.ModelPath)
	initialText, err := source.Read(ctx)
	if err != nil {
		return err
	}

	ui := console.New(os.Stdin, os.Stdout)
	svc := session.NewService(client, store)
	eng := workflow.New(svc, prompts, source, ui, cfg.ModelName, initialText)

	if err := eng.Run(ctx); err != nil {
		return err
	}

	ui.Say("")
	ui.ShowSuggestion("Final Model", eng.FinalModel())
	return nil
}
