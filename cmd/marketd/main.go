package main

import (
	"github.com/LeJamon/goMarketd/internal/cli"
	_ "github.com/LeJamon/goMarketd/internal/storage/database/bbolt"
	_ "github.com/LeJamon/goMarketd/internal/storage/database/pebble"
)

func main() {
	cli.Execute()
}
