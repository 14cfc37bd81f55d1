package main

import (
	"os"

	"reviewd/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
