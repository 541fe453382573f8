package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/doeshing/deskcommander/internal/infrastructure/cli"
)

func main() {
	ctx := context.Background()
	root := cli.NewRootCmd(cli.Options{Verbose: isVerbose()})

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func isVerbose() bool {
	value := os.Getenv("DESKCOMMANDER_DEBUG")
	return strings.EqualFold(value, "1") || strings.EqualFold(value, "true")
}
