package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/askiada/go-cvpg/internal/config"
	"github.com/askiada/go-cvpg/internal/logger"
	"github.com/askiada/go-cvpg/pkg/transform"
)

// app is shared by the commands once the configuration is loaded.
type app struct {
	configPath string
	cfg        *config.Config
	logger     *logrus.Logger
	registry   *transform.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{registry: transform.Default}

	cmd := &cobra.Command{
		Use:           "cvpg",
		Short:         "Explore image transforms and their parameters",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	cmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "configuration file, created with the defaults when missing")

	cmd.AddCommand(newListCmd(a), newParamsCmd(a), newRunCmd(a))
	return cmd
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	l, err := logger.New(cfg.Application, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg, a.logger = cfg, l
	return nil
}
