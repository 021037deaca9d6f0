package main

import (
	"context"
	"fmt"
	"os"

	"azaymonitor/internal/commands"
)

// Populated at build-time via -ldflags.
var version = "dev"

func main() {
	if err := commands.NewApp(version).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "azaysim:", err)
		os.Exit(1)
	}
}
