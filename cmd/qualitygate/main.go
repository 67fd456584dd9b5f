package main

import (
	"fmt"
	"os"

	"github.com/qualitygate/qualitygate/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "qualitygate:", err)
		os.Exit(1)
	}
}
