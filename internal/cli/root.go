package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LeJamon/goMarketd/internal/config"
	"github.com/LeJamon/goMarketd/internal/core/ledger/service"
	_ "github.com/LeJamon/goMarketd/internal/core/tx/all"
	"github.com/LeJamon/goMarketd/internal/di"
	"github.com/LeJamon/goMarketd/internal/log"
)

var (
	// Global flags
	configFile string
	debug      bool
	verbose    bool
	quiet      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "marketd",
	Short: "goMarketd - NFT and SFT marketplace engine",
	Long: `goMarketd runs an NFT/SFT marketplace over a persistent key-value store:
auctions (single item, whole batch, fixed price per unit), standing offers,
royalty and marketplace cut settlement, and escrow for accounts that must
pull their funds.`,
	Version:       "0.1.0-dev",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", config.DefaultConfigPath(), "configuration file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable normally suppressed debug logging")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log warnings to the console")
}

// app is the wired process state of one command invocation.
type app struct {
	cfg       *config.Config
	log       *zap.Logger
	container *di.Container
	provider  *di.Provider
}

// openApp loads the configuration and wires the services lazily.
func openApp() (*app, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}
	logger, err := log.NewLogger(log.Options{
		Path:  cfg.Log.Path,
		Debug: cfg.Log.Debug || debug || verbose,
		Quiet: quiet,
	})
	if err != nil {
		return nil, err
	}

	container := di.New()
	provider := di.NewProvider(container, cfg)
	if err := provider.RegisterAll(logger); err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: logger, container: container, provider: provider}, nil
}

func (a *app) Close() error {
	_ = a.log.Sync()
	return a.container.Close()
}

// withMarket runs fn against the market service and closes the app after.
func withMarket(fn func(a *app, svc *service.Service) error) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	svc, err := a.provider.GetMarketService()
	if err != nil {
		return err
	}
	return fn(a, svc)
}

// printJSON writes v indented to the command output.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
