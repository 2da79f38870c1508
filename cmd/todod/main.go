package main

import (
	"context"
	"fmt"
	"os"

	"todod/internal/config"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "todod: %v\n", err)
		fmt.Fprintln(os.Stderr, "hint: fix ~/.todod.toml or point TODOD_CONFIG_DIR at another directory.")
		return 1
	}
	if path := cfg.TrustedProjectConfigPath; path != "" {
		fmt.Fprintf(os.Stderr, "warning: using trusted project config from %s\n", path)
	}

	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		for _, line := range formatCLIError(err) {
			fmt.Fprintln(os.Stderr, line)
		}
		return 1
	}
	return 0
}
