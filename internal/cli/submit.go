package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LeJamon/goMarketd/internal/core/ledger/service"
	"github.com/LeJamon/goMarketd/internal/core/tx"
)

var submitCmd = &cobra.Command{
	Use:   "submit [file...]",
	Short: "Apply JSON transactions",
	Long: `Apply transactions read from JSON files, or from stdin when no file is
given. A file holds one transaction object or an array of them. Each result is
printed as JSON in submission order. Rejected transactions are reported in
their result and do not stop the batch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var inputs [][]byte
		if len(args) == 0 {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			inputs = append(inputs, data)
		}
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			inputs = append(inputs, data)
		}

		return withMarket(func(a *app, svc *service.Service) error {
			for _, data := range inputs {
				txs, err := splitTransactions(data)
				if err != nil {
					return err
				}
				for _, raw := range txs {
					res, err := svc.SubmitJSON(cmd.Context(), raw)
					if err != nil {
						return err
					}
					a.log.Debug("submitted",
						zap.String("hash", res.Hash),
						zap.String("result", res.Result.String()))
					if err := printJSON(cmd, submitOutput(res)); err != nil {
						return err
					}
				}
			}
			return nil
		})
	},
}

// splitTransactions accepts a single object or an array of objects.
func splitTransactions(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty transaction input")
	}
	if trimmed[0] != '[' {
		return []json.RawMessage{trimmed}, nil
	}
	var txs []json.RawMessage
	if err := json.Unmarshal(trimmed, &txs); err != nil {
		return nil, fmt.Errorf("parse transaction array: %w", err)
	}
	return txs, nil
}

type submitResult struct {
	Hash      string       `json:"hash"`
	Result    string       `json:"result"`
	Applied   bool         `json:"applied"`
	Message   string       `json:"message,omitempty"`
	Timestamp uint64       `json:"timestamp"`
	Meta      *tx.Metadata `json:"meta,omitempty"`
}

func submitOutput(res tx.ApplyResult) submitResult {
	return submitResult{
		Hash:      res.Hash,
		Result:    res.Result.String(),
		Applied:   res.Applied,
		Message:   res.Message,
		Timestamp: res.Timestamp,
		Meta:      res.Metadata,
	}
}

func init() {
	rootCmd.AddCommand(submitCmd)
}
