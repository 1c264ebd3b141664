package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/LeJamon/goMarketd/internal/core/amount"
	"github.com/LeJamon/goMarketd/internal/core/ledger/service"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
	"github.com/LeJamon/goMarketd/internal/storage/history"
)

var (
	queryToken   string
	queryNonce   uint64
	querySeller  string
	queryOfferor string
	historyAcct  string
	historyType  string
	historyLimit int
)

// ErrNotFound is returned by lookups of a missing auction or offer.
var ErrNotFound = errors.New("not found")

func parseID(arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", arg, err)
	}
	return id, nil
}

var auctionCmd = &cobra.Command{
	Use:   "auction <id>",
	Short: "Show one auction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withMarket(func(_ *app, svc *service.Service) error {
			a, found, err := svc.Auction(id)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("auction %d: %w", id, ErrNotFound)
			}
			return printJSON(cmd, a)
		})
	},
}

var offerCmd = &cobra.Command{
	Use:   "offer <id>",
	Short: "Show one offer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withMarket(func(_ *app, svc *service.Service) error {
			o, found, err := svc.Offer(id)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("offer %d: %w", id, ErrNotFound)
			}
			return printJSON(cmd, o)
		})
	},
}

var auctionsCmd = &cobra.Command{
	Use:   "auctions",
	Short: "List live auctions by token or by seller",
	RunE: func(cmd *cobra.Command, args []string) error {
		if (queryToken == "") == (querySeller == "") {
			return fmt.Errorf("exactly one of --token or --seller is required")
		}
		return withMarket(func(_ *app, svc *service.Service) error {
			var (
				list []*sle.Auction
				err  error
			)
			if queryToken != "" {
				list, err = svc.AuctionsByToken(queryToken, queryNonce)
			} else {
				list, err = svc.AuctionsBySeller(querySeller)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd, list)
		})
	},
}

var offersCmd = &cobra.Command{
	Use:   "offers",
	Short: "List live offers by wanted token or by offeror",
	RunE: func(cmd *cobra.Command, args []string) error {
		if (queryToken == "") == (queryOfferor == "") {
			return fmt.Errorf("exactly one of --token or --offeror is required")
		}
		return withMarket(func(_ *app, svc *service.Service) error {
			var (
				list []*sle.Offer
				err  error
			)
			if queryToken != "" {
				list, err = svc.OffersByToken(queryToken, queryNonce)
			} else {
				list, err = svc.OffersByOfferor(queryOfferor)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd, list)
		})
	},
}

var claimableCmd = &cobra.Command{
	Use:   "claimable <address> <token> [nonce]",
	Short: "Show the escrowed amount an account can claim",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return assetQuery(cmd, args, (*service.Service).Claimable)
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance <address> <token> [nonce]",
	Short: "Show an account balance",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return assetQuery(cmd, args, (*service.Service).Balance)
	},
}

func assetQuery(cmd *cobra.Command, args []string, read func(*service.Service, string, string, uint64) (amount.Amount, error)) error {
	var nonce uint64
	if len(args) == 3 {
		n, err := strconv.ParseUint(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid nonce %q: %w", args[2], err)
		}
		nonce = n
	}
	return withMarket(func(_ *app, svc *service.Service) error {
		v, err := read(svc, args[0], args[1], nonce)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), v.String())
		return nil
	})
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List journaled transactions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMarket(func(_ *app, svc *service.Service) error {
			records, err := svc.History(cmd.Context(), history.Filter{
				Account: historyAcct,
				TxType:  historyType,
				Limit:   historyLimit,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, records)
		})
	},
}

func init() {
	auctionsCmd.Flags().StringVar(&queryToken, "token", "", "token identifier")
	auctionsCmd.Flags().Uint64Var(&queryNonce, "nonce", 0, "token nonce")
	auctionsCmd.Flags().StringVar(&querySeller, "seller", "", "seller address")

	offersCmd.Flags().StringVar(&queryToken, "token", "", "wanted token identifier")
	offersCmd.Flags().Uint64Var(&queryNonce, "nonce", 0, "wanted token nonce")
	offersCmd.Flags().StringVar(&queryOfferor, "offeror", "", "offeror address")

	historyCmd.Flags().StringVar(&historyAcct, "account", "", "only transactions submitted by this account")
	historyCmd.Flags().StringVar(&historyType, "type", "", "only this transaction type")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "maximum number of records")

	rootCmd.AddCommand(auctionCmd, offerCmd, auctionsCmd, offersCmd, claimableCmd, balanceCmd, historyCmd)
}
