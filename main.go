package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/awsdrill/awsdrill/internal/aws"
	"github.com/awsdrill/awsdrill/internal/config"
	"github.com/awsdrill/awsdrill/internal/logger"
	"github.com/awsdrill/awsdrill/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogFile)

	ctx := context.Background()
	var client *aws.Client
	switch {
	case cfg.HasStaticCredentials():
		client, err = aws.NewClientWithStaticCredentials(ctx, cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken)
	case cfg.Profile != "":
		client, err = aws.NewClientWithProfile(ctx, cfg.Profile)
	default:
		client, err = aws.NewClient(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading AWS credentials: %v\n", err)
		os.Exit(1)
	}

	log.Info().Str("profile", cfg.Profile).Strs("regions", cfg.Regions).Msg("starting")

	p := tea.NewProgram(tui.New(client, cfg, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
