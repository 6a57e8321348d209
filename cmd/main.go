package main

import (
	"os"

	"github.com/skillcheck-ai/skillcheck-api/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
