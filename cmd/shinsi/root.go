package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/kerbaras/shinsi/pkg/app"
	"github.com/kerbaras/shinsi/pkg/app/screens"
	"github.com/kerbaras/shinsi/pkg/config"
	"github.com/kerbaras/shinsi/pkg/data"
	"github.com/kerbaras/shinsi/pkg/imageloader"
	"github.com/kerbaras/shinsi/pkg/integrations"
	"github.com/kerbaras/shinsi/pkg/services"
	"github.com/kerbaras/shinsi/pkg/sources"
	"github.com/kerbaras/shinsi/pkg/utils"
	"github.com/spf13/cobra"
)

var (
	configDir string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "shinsi",
	Short: "A doujinshi library in your terminal",
	Long:  "Browse, download and read galleries with a TUI, or manage the local library from the command line",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// The TUI owns the terminal, so logs go to a file in the config directory.
		logFile, err := os.OpenFile(filepath.Join(cfg.Dir, "shinsi.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer logFile.Close()
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level})))

		env, err := setup(cfg)
		if err != nil {
			return err
		}
		defer env.Close()

		prefs, err := config.LoadPreferences(env.cfg.PreferencesPath())
		if err != nil {
			return err
		}

		deps := &screens.Deps{
			Repo:      env.repo,
			Library:   env.library,
			Images:    env.images,
			Prefs:     &prefs,
			PrefsPath: env.cfg.PreferencesPath(),
			ExportDir: exportDir(),
			Logger:    slog.Default(),
		}
		return app.NewApp(deps).Run()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Directory holding config.yaml, the database and downloads (default ~/.shinsi)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// env holds everything a command needs, built from the loaded config.
type env struct {
	cfg     *config.Config
	repo    *data.Repository
	library *services.Library
	images  *imageloader.Loader
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}
	return cfg, nil
}

// openEnv loads the config and builds the command environment from it.
func openEnv() (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return setup(cfg)
}

func setup(cfg *config.Config) (*env, error) {
	repo, err := data.Open(cfg.Database.Path, data.WithLogger(slog.Default()))
	if err != nil {
		return nil, err
	}

	source := sources.NewEHentai(cfg.Source.BaseURL, cfg.Source.APIURL)
	images := imageloader.New(utils.NewAPI(""), cfg.Downloads.Dir, cfg.Images.ThumbnailWidth)
	downloader := services.NewDownloader(source, repo, images, cfg.Downloads.Dir, cfg.Downloads.Concurrency)
	library := services.NewLibrary(source, repo, downloader, integrations.NewEPubBuilder())

	return &env{cfg: cfg, repo: repo, library: library, images: images}, nil
}

func (e *env) Close() error {
	return e.repo.Close()
}

func exportDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Downloads")
}

