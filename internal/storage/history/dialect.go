package history

import (
	"strconv"
	"strings"

	_ "github.com/lib/pq"  // PostgreSQL driver
	_ "modernc.org/sqlite" // SQLite driver
)

// dialect holds what differs between the supported SQL engines.
type dialect struct {
	driver     string
	schema     []string
	numbered   bool // $1 placeholders instead of ?
	singleConn bool
}

var sqliteDialect = dialect{
	driver: "sqlite",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			seq         INTEGER PRIMARY KEY AUTOINCREMENT,
			id          TEXT NOT NULL UNIQUE,
			hash        TEXT NOT NULL,
			account     TEXT NOT NULL,
			tx_type     TEXT NOT NULL,
			result      TEXT NOT NULL,
			applied     INTEGER NOT NULL,
			ledger_time INTEGER NOT NULL,
			created_id  INTEGER NOT NULL,
			raw_tx      TEXT NOT NULL,
			meta        TEXT,
			recorded_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS transactions_account ON transactions (account, seq)`,
		`CREATE INDEX IF NOT EXISTS transactions_hash ON transactions (hash)`,
	},
	// one connection serializes writers and keeps :memory: databases shared
	singleConn: true,
}

var postgresDialect = dialect{
	driver: "postgres",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			seq         BIGSERIAL PRIMARY KEY,
			id          UUID NOT NULL UNIQUE,
			hash        TEXT NOT NULL,
			account     TEXT NOT NULL,
			tx_type     TEXT NOT NULL,
			result      TEXT NOT NULL,
			applied     INTEGER NOT NULL,
			ledger_time BIGINT NOT NULL,
			created_id  BIGINT NOT NULL,
			raw_tx      TEXT NOT NULL,
			meta        TEXT,
			recorded_at BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS transactions_account ON transactions (account, seq)`,
		`CREATE INDEX IF NOT EXISTS transactions_hash ON transactions (hash)`,
	},
	numbered: true,
}

// rebind rewrites ? placeholders for engines that number them.
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
