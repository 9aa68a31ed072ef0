package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/invest-atlas/pkg/runtime/terminal"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	cli := terminal.NewCLI(terminal.Options{Output: os.Stdout})

	if err := cli.ExecuteContext(ctx); err != nil {
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
