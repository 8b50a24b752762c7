// Command stockroom keeps an inventory catalog of SKUs, quantities and unit
// prices in a CSV/JSON file, SQLite, or Redis.
package main

import (
	"os"

	"github.com/roach88/stockroom/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
