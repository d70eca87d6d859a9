package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamal-hamza/shot-cli/internal/adapters/clipboard"
	"github.com/kamal-hamza/shot-cli/internal/adapters/repository"
	"github.com/kamal-hamza/shot-cli/internal/adapters/store"
	"github.com/kamal-hamza/shot-cli/internal/core/ports"
	"github.com/kamal-hamza/shot-cli/internal/core/services"
	"github.com/kamal-hamza/shot-cli/pkg/config"
	"github.com/kamal-hamza/shot-cli/pkg/logging"
	"github.com/kamal-hamza/shot-cli/pkg/ui"
	"github.com/kamal-hamza/shot-cli/pkg/vault"
)

var (
	// Global vault and configuration
	appVault  *vault.Vault
	appConfig *config.Config

	// Logger writes to shot.log in the vault
	logger *zap.Logger

	// Storage
	blobStore store.Store
	draftRepo *repository.DraftRepository

	// Services
	archiveService *services.ArchiveService
	listService    *services.ListService
	draftService   *services.DraftService

	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "shot",
	Short: "shot - A cinematic prompt builder for AI video",
	Long: ui.StyleTitle.Render("shot") + " - Shot Builder\n\n" +
		"Describe a video shot field by field (scene, camera, lens, lighting,\n" +
		"mood, actions, audio, dialogue) and assemble it into one clean prompt.\n" +
		"Drafts persist between runs; finished prompts are archived with tags.",
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
	PersistentPostRun: shutdownApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if expanded, ok := resolveAliasArgs(os.Args[1:]); ok {
		rootCmd.SetArgs(expanded)
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(composeCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(actionCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(termCmd)
	rootCmd.AddCommand(guideCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(duplicateCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(aliasCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// needsVault reports whether a command works on the vault contents
func needsVault(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "init", "purge", "version", "guide", "help", "completion":
		return false
	}
	return true
}

// initializeApp initializes the application components
func initializeApp(cmd *cobra.Command, args []string) error {
	v, err := vault.New()
	if err != nil {
		return fmt.Errorf("failed to initialize vault: %w", err)
	}
	appVault = v

	cfg, err := config.Load(appVault.ConfigPath)
	if err != nil {
		fmt.Println(ui.FormatWarning("Config unreadable, using defaults: " + err.Error()))
		cfg = config.DefaultConfig()
	}
	cfg.ApplyEnv()
	appConfig = cfg
	ui.SetTheme(appConfig.ColorTheme)

	if !needsVault(cmd) {
		return nil
	}

	// Check if vault exists
	if !appVault.Exists() {
		fmt.Println(ui.FormatError("Vault not initialized"))
		fmt.Println(ui.FormatInfo("Run 'shot init' to initialize the vault"))
		return fmt.Errorf("vault not found at %s", appVault.RootPath)
	}

	log, err := logging.New(appVault.LogPath(), appConfig.LogLevel, verbose)
	if err != nil {
		return err
	}
	logger = log

	s, err := store.Open(appConfig.Backend, appVault)
	if err != nil {
		return err
	}
	blobStore = s

	draftRepo = repository.NewDraftRepository(appVault.DraftPath())
	wireServices(blobStore, draftRepo, clipboard.New())

	logger.Debug("app initialized",
		zap.String("command", cmd.CommandPath()),
		zap.String("backend", appConfig.Backend),
		zap.String("vault", appVault.RootPath))

	return nil
}

// wireServices builds the services over the given adapters
func wireServices(blobs ports.BlobStore, drafts ports.DraftRepository, clip ports.Clipboard) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if appConfig == nil {
		appConfig = config.DefaultConfig()
	}

	archiveService = services.NewArchiveService(blobs, appConfig.StorageKey, logger)
	listService = services.NewListService(archiveService).WithPreviewLength(appConfig.PreviewLength)
	draftService = services.NewDraftService(drafts, clip, logger)
}

// shutdownApp flushes the logger and releases the store
func shutdownApp(cmd *cobra.Command, args []string) {
	if blobStore != nil {
		if err := blobStore.Close(); err != nil && logger != nil {
			logger.Warn("failed to close store", zap.Error(err))
		}
		blobStore = nil
	}
	if logger != nil {
		_ = logger.Sync()
	}
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}
