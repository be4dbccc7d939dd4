package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/memoelle/storefront-go/internal/config"
	"github.com/memoelle/storefront-go/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:           "storefront",
	Short:         "Cart and wishlist state service for the memoelle storefront",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// setup loads configuration and builds the logger shared by every command.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
