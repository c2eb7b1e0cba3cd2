package main

import (
	"fmt"
	"os"

	"github.com/oriskedar/examplan/internal/cli"
	"github.com/oriskedar/examplan/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	app := cli.NewApp(cfg)
	return app.Execute()
}
