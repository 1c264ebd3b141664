package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LeJamon/goMarketd/internal/core/ledger/genesis"
)

var genesisFile string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the genesis state into an empty store",
	Long: `Load the genesis file (market.genesis_file, or --genesis) and write the
marketplace config, funded accounts and token royalties into the state store.
Fails when the store already holds a marketplace.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		path := a.cfg.GenesisPath()
		if genesisFile != "" {
			path = genesisFile
		}
		g, err := genesis.Load(path)
		if err != nil {
			return err
		}
		store, err := a.provider.GetState()
		if err != nil {
			return err
		}
		if err := genesis.Apply(store, g); err != nil {
			return err
		}
		a.log.Info("genesis applied",
			zap.String("path", path),
			zap.String("owner", g.Owner),
			zap.Int("accounts", len(g.Accounts)),
			zap.Int("tokens", len(g.Tokens)))
		fmt.Fprintf(cmd.OutOrStdout(), "initialized marketplace owned by %s\n", g.Owner)
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&genesisFile, "genesis", "", "genesis file overriding market.genesis_file")
	rootCmd.AddCommand(initCmd)
}
