package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goMarketd/internal/core/ledger/genesis"
	"github.com/LeJamon/goMarketd/internal/crypto"
	_ "github.com/LeJamon/goMarketd/internal/storage/database/bbolt"
)

const testConfig = `[database]
backend = "bbolt"
path = "db"
compression = "lz4"

[history]
driver = "sqlite"
dsn = "history.db"

[market]
genesis_file = "genesis.json"
`

type cliEnv struct {
	dir    string
	conf   string
	owner  string
	seller string
	buyer  string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	e := &cliEnv{
		dir:    dir,
		conf:   filepath.Join(dir, "marketd.toml"),
		owner:  crypto.DeriveKeyPair("owner").Address(),
		seller: crypto.DeriveKeyPair("seller").Address(),
		buyer:  crypto.DeriveKeyPair("buyer").Address(),
	}
	require.NoError(t, os.WriteFile(e.conf, []byte(testConfig), 0o644))

	g := fmt.Sprintf(`{
		"owner": %q,
		"custody": %q,
		"cut_bp": 250,
		"accounts": [
			{"address": %q, "balances": [{"Token": "ART-a1b2c3", "Nonce": 1, "Amount": "1"}]},
			{"address": %q, "balances": [{"Token": "NATIVE", "Amount": "1000"}]}
		]
	}`, e.owner, crypto.DeriveKeyPair("custody").Address(), e.seller, e.buyer)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "genesis.json"), []byte(g), 0o644))
	return e
}

// run executes the root command with fresh flag values.
func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	queryToken, queryNonce, querySeller, queryOfferor = "", 0, "", ""
	historyAcct, historyType, historyLimit = "", "", 50
	genesisFile = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--conf", e.conf, "-q"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func (e *cliEnv) writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInitOnce(t *testing.T) {
	e := newCLIEnv(t)

	out, err := e.run(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, e.owner)

	_, err = e.run(t, "init")
	assert.ErrorIs(t, err, genesis.ErrAlreadyInitialized)
}

func TestSubmitAndQuery(t *testing.T) {
	e := newCLIEnv(t)
	_, err := e.run(t, "init")
	require.NoError(t, err)

	deadline := time.Now().Unix() + 3600
	txs := e.writeFile(t, "txs.json", fmt.Sprintf(`[
		{
			"TransactionType": "AuctionCreate",
			"Account": %q,
			"Payment": {"Token": "ART-a1b2c3", "Nonce": 1, "Amount": "1"},
			"PaymentToken": "NATIVE",
			"MinPrice": "100",
			"MaxPrice": "0",
			"MinIncrement": "0",
			"Deadline": %d
		},
		{
			"TransactionType": "AuctionBid",
			"Account": %q,
			"Payment": {"Token": "NATIVE", "Amount": "150"},
			"AuctionID": 1
		}
	]`, e.seller, deadline, e.buyer))

	out, err := e.run(t, "submit", txs)
	require.NoError(t, err)

	dec := json.NewDecoder(strings.NewReader(out))
	var results []submitResult
	for dec.More() {
		var r submitResult
		require.NoError(t, dec.Decode(&r))
		results = append(results, r)
	}
	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.Applied, r.Message)
		assert.Equal(t, "tesSUCCESS", r.Result)
	}

	out, err = e.run(t, "auctions", "--token", "ART-a1b2c3", "--nonce", "1")
	require.NoError(t, err)
	var auctions []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &auctions))
	assert.Len(t, auctions, 1)

	out, err = e.run(t, "balance", e.buyer, "NATIVE")
	require.NoError(t, err)
	assert.Equal(t, "850", strings.TrimSpace(out))

	out, err = e.run(t, "history", "--account", e.buyer)
	require.NoError(t, err)
	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "AuctionBid", records[0]["tx_type"])

	_, err = e.run(t, "auction", "7")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQueryFlagValidation(t *testing.T) {
	e := newCLIEnv(t)

	_, err := e.run(t, "auctions")
	assert.Error(t, err)
	_, err = e.run(t, "offers", "--token", "ART-a1b2c3", "--offeror", e.buyer)
	assert.Error(t, err)
	_, err = e.run(t, "auction", "abc")
	assert.Error(t, err)
}

func TestSplitTransactions(t *testing.T) {
	one, err := splitTransactions([]byte(` {"TransactionType": "AuctionEnd"} `))
	require.NoError(t, err)
	assert.Len(t, one, 1)

	many, err := splitTransactions([]byte(`[{"a": 1}, {"b": 2}]`))
	require.NoError(t, err)
	assert.Len(t, many, 2)

	_, err = splitTransactions([]byte("  "))
	assert.Error(t, err)
}

func TestConfigExample(t *testing.T) {
	e := newCLIEnv(t)
	path := filepath.Join(e.dir, "example.toml")

	out, err := e.run(t, "config", "example", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.FileExists(t, path)
}
