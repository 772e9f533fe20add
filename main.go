package main

import (
	"os"

	"github.com/deeppath/deeppath-mcp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
