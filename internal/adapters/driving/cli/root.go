// Package cli implements the command line interface for dietcoach.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dietcoach-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/dietcoach-cli/internal/adapters/driven/embedding/openai"
	llmopenai "github.com/custodia-labs/dietcoach-cli/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/dietcoach-cli/internal/adapters/driven/recipes/embedded"
	"github.com/custodia-labs/dietcoach-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/dietcoach-cli/internal/adapters/driven/vector/chromem"
	"github.com/custodia-labs/dietcoach-cli/internal/core/domain"
	"github.com/custodia-labs/dietcoach-cli/internal/core/ports/driving"
	"github.com/custodia-labs/dietcoach-cli/internal/core/services"
	"github.com/custodia-labs/dietcoach-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "0.1.0"

var verbose bool

// Services are wired lazily by the commands that need them. Tests
// replace them with fakes.
var (
	advisorService driving.AdvisorService
	indexService   driving.IndexService
	dietService    driving.DietService
	plannerService driving.PlannerService
)

var (
	loadedSettings *domain.Settings
	closers        []io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "dietcoach",
	Short: "Personal diet coach with recipe Q&A from the terminal",
	Long: `dietcoach tracks your profile, meals and weight, and answers
nutrition questions grounded in its built-in recipe collection.

Answers cite the recipes they are based on and never invent dishes
that are not in the collection.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print pipeline details to stderr")
}

// Execute runs the root command and releases wired resources.
func Execute() error {
	defer closeAll()
	return rootCmd.Execute()
}

func closeAll() {
	for _, c := range closers {
		if err := c.Close(); err != nil {
			logger.Warn("Closing resource: %v", err)
		}
	}
	closers = nil
}

// getSettings loads configuration once per invocation.
func getSettings() (domain.Settings, error) {
	if loadedSettings != nil {
		return *loadedSettings, nil
	}
	settings, err := file.Load("")
	if err != nil {
		return domain.Settings{}, fmt.Errorf("loading configuration: %w", err)
	}
	loadedSettings = &settings
	return settings, nil
}

// getDietService wires the SQLite-backed diet service on first use.
func getDietService() (driving.DietService, error) {
	if dietService != nil {
		return dietService, nil
	}

	settings, err := getSettings()
	if err != nil {
		return nil, err
	}

	store, err := sqlite.NewStore(settings.DietDBPath)
	if err != nil {
		return nil, fmt.Errorf("opening diet database: %w", err)
	}
	closers = append(closers, store)

	dietService = services.NewDietService(store.ProfileStore(), store.FoodLogStore(), store.WeightLogStore())
	return dietService, nil
}

// getPlannerService wires the planner over the embedded corpus.
func getPlannerService() (driving.PlannerService, error) {
	if plannerService != nil {
		return plannerService, nil
	}
	plannerService = services.NewPlannerService(embedded.New())
	return plannerService, nil
}

// getIndexService wires the index manager on first use. It needs an
// API key for the embedding calls.
func getIndexService() (driving.IndexService, error) {
	if indexService != nil {
		return indexService, nil
	}

	svc, err := buildIndexService()
	if err != nil {
		return nil, err
	}
	indexService = svc
	return indexService, nil
}

// getAdvisorService wires the full answer pipeline on first use.
func getAdvisorService() (driving.AdvisorService, error) {
	if advisorService != nil {
		return advisorService, nil
	}

	settings, err := getSettings()
	if err != nil {
		return nil, err
	}

	indexSvc, err := getIndexService()
	if err != nil {
		return nil, err
	}
	retriever, ok := indexSvc.(driving.Retriever)
	if !ok {
		return nil, errors.New("index service does not support retrieval")
	}

	chat, err := llmopenai.NewChatService(llmopenai.Config{
		APIKey: settings.APIKey,
		Model:  settings.ChatModel,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrChatUnavailable, err)
	}
	closers = append(closers, chat)

	diet, err := getDietService()
	if err != nil {
		return nil, err
	}

	advisor, err := services.NewAdvisorService(retriever, chat, diet, settings)
	if err != nil {
		return nil, fmt.Errorf("creating advisor: %w", err)
	}
	advisorService = advisor
	return advisorService, nil
}

func buildIndexService() (*services.IndexService, error) {
	settings, err := getSettings()
	if err != nil {
		return nil, err
	}
	if settings.APIKey == "" {
		return nil, fmt.Errorf("%w: set OPENAI_API_KEY in the environment, a .env file or ~/.dietcoach/config.toml", domain.ErrEmbeddingUnavailable)
	}

	store, err := chromem.New(settings.IndexDir, settings.Collection)
	if err != nil {
		return nil, fmt.Errorf("opening vector store: %w", err)
	}
	closers = append(closers, store)

	embedder, err := openai.NewEmbeddingService(openai.Config{
		APIKey: settings.APIKey,
		Model:  settings.EmbeddingModel,
	})
	if err != nil {
		return nil, fmt.Errorf("creating embedding service: %w", err)
	}
	closers = append(closers, embedder)

	return services.NewIndexService(embedded.New(), store, embedder, settings.ChunkSize, settings.ChunkOverlap), nil
}
