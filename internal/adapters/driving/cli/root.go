// Package cli implements the cobra command tree for the jurisync CLI.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/atrium-legal/jurisync-cli/internal/adapters/driven/config/file"
	"github.com/atrium-legal/jurisync-cli/internal/adapters/driven/storage/memory"
	"github.com/atrium-legal/jurisync-cli/internal/adapters/driven/storage/sqlite"
	courtbotconn "github.com/atrium-legal/jurisync-cli/internal/connectors/courtbot"
	datajudconn "github.com/atrium-legal/jurisync-cli/internal/connectors/datajud"
	portaltjconn "github.com/atrium-legal/jurisync-cli/internal/connectors/portaltj"
	"github.com/atrium-legal/jurisync-cli/internal/core/ports/driven"
	"github.com/atrium-legal/jurisync-cli/internal/core/ports/driving"
	"github.com/atrium-legal/jurisync-cli/internal/core/services"
	"github.com/atrium-legal/jurisync-cli/internal/logger"
	"github.com/atrium-legal/jurisync-cli/internal/normalisers"
	courtbotnorm "github.com/atrium-legal/jurisync-cli/internal/normalisers/courtbot"
	datajudnorm "github.com/atrium-legal/jurisync-cli/internal/normalisers/datajud"
	portaltjnorm "github.com/atrium-legal/jurisync-cli/internal/normalisers/portaltj"
	"github.com/atrium-legal/jurisync-cli/internal/resilience"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var (
	verboseFlag   bool
	configDirFlag string
	dataDirFlag   string
)

// Services the commands run against. Wired lazily by ensureServices;
// tests substitute mocks and skip wiring entirely.
var (
	searchService driving.ConsolidatedSearch
	syncRunner    driving.SyncRunner
	quotaService  driving.QuotaService

	docStore driven.DocumentStore
)

var rootCmd = &cobra.Command{
	Use:   "jurisync",
	Short: "Aggregate Brazilian judicial case data from multiple sources",
	Long: `jurisync fetches judicial case records from the official DataJud API
and configured portal vendors, consolidates them into one record per
case and synchronises changed records into the local case store.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "configuration directory (default ~/.jurisync)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "case database directory (default ~/.jurisync/data)")
}

// Execute runs the command tree and releases wired resources.
func Execute() error {
	defer func() {
		if docStore != nil {
			_ = docStore.Close()
		}
	}()
	return rootCmd.Execute()
}

// ensureServices wires the production dependency graph on first use.
func ensureServices() error {
	if searchService != nil && syncRunner != nil && quotaService != nil {
		return nil
	}

	cfg, err := configfile.NewConfigStore(configDirFlag)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	var store driven.DocumentStore
	if syncDryRun {
		// Writes land in a throwaway store; nothing touches disk.
		store = memory.NewDocumentStore()
	} else {
		dataDir := dataDirFlag
		if dataDir == "" {
			dataDir = cfg.GetString("storage.data_dir")
		}
		store, err = sqlite.NewStore(dataDir)
		if err != nil {
			return fmt.Errorf("opening case store: %w", err)
		}
	}
	docStore = store

	registry := normalisers.NewRegistry()
	registry.Register(datajudnorm.New())
	registry.Register(portaltjnorm.New())
	registry.Register(courtbotnorm.New())

	official := datajudconn.New(datajudconn.Config{
		BaseURL:           cfg.GetString("datajud.base_url"),
		APIKey:            cfg.GetString("datajud.api_key"),
		RequestsPerSecond: cfg.GetFloat("datajud.requests_per_second"),
	})

	adapters := []driven.SourceAdapter{official}
	if u := cfg.GetString("portaltj.base_url"); u != "" {
		adapters = append(adapters, portaltjconn.New(portaltjconn.Config{
			BaseURL: u,
			Token:   cfg.GetString("portaltj.token"),
		}))
	}
	if u := cfg.GetString("courtbot.base_url"); u != "" {
		adapters = append(adapters, courtbotconn.New(courtbotconn.Config{
			BaseURL: u,
			APIKey:  cfg.GetString("courtbot.api_key"),
		}))
	}

	searchService = services.NewConsolidator(adapters, registry, services.ConsolidatorConfig{})

	writer := services.NewWriter(store)
	quota := services.NewQuotaTracker(store, cfg.GetInt("quota.daily_write_budget"))
	quotaService = quota

	executor := resilience.NewExecutor(resilience.Config{
		Breaker: resilience.NewBreaker(0, 0),
	})
	syncRunner = services.NewSyncOrchestrator(official, registry, writer, quota, store, executor, services.SyncConfig{
		PageSize:  cfg.GetInt("sync.page_size"),
		MaxPages:  cfg.GetInt("sync.max_pages"),
		PageDelay: time.Duration(cfg.GetInt("sync.page_delay_seconds")) * time.Second,
	})

	return nil
}
