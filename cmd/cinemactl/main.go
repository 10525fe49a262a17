// Command cinemactl runs operational tasks against the cinema database:
// schema migration, sample data and ticket lookups.
package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
