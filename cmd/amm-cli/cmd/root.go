// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"os"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/cpamm/config"
	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/utils"
)

type cli struct {
	configPath string
	logLevel   string
	logDir     string

	config  *config.Config
	log     logging.Logger
	factory *logFactory
}

func NewRootCmd() *cobra.Command {
	c := &cli{}
	cmd := &cobra.Command{
		Use:   "amm-cli",
		Short: "Constant-product liquidity pool engine",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return c.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			c.close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cobra.EnablePrefixMatching = true
	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.DisableAutoGenTag = true
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	cmd.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a json config file")
	cmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level, overrides the config")
	cmd.PersistentFlags().StringVar(&c.logDir, "log-dir", "", "log directory, overrides the config")

	cmd.AddCommand(
		newRunCmd(c),
		newShellCmd(c),
		newQuoteCmd(),
	)
	return cmd
}

func (c *cli) init() error {
	var raw []byte
	if len(c.configPath) > 0 {
		b, err := os.ReadFile(c.configPath)
		if err != nil {
			return err
		}
		raw = b
	}
	cfg, err := config.New(raw)
	if err != nil {
		return err
	}
	if len(c.logLevel) > 0 {
		cfg.LogLevel, err = logging.ToLevel(c.logLevel)
		if err != nil {
			return err
		}
	}
	if len(c.logDir) > 0 {
		cfg.LogDir = c.logDir
	}
	c.config = cfg

	loggingConfig := logging.Config{
		DisplayLevel:            cfg.GetLogLevel(),
		LogLevel:                cfg.GetLogLevel(),
		LogFormat:               logging.Colors,
		DisableWriterDisplaying: !cfg.LogDisplay,
		RotatingWriterConfig: logging.RotatingWriterConfig{
			MaxSize:  8,
			MaxFiles: 4,
			MaxAge:   7,
		},
	}
	if len(cfg.LogDir) > 0 {
		loggingConfig.Directory, err = utils.InitSubDirectory(cfg.LogDir, consts.Name)
		if err != nil {
			return err
		}
		loggingConfig.LogFormat = logging.JSON
	}

	c.factory = newLogFactory(loggingConfig)
	c.log, err = c.factory.Make(consts.Name)
	if err != nil {
		c.factory.Close()
		return err
	}
	c.log.Debug("cli initialized",
		zap.Stringer("logLevel", cfg.LogLevel),
		zap.String("logDir", loggingConfig.Directory),
		zap.Uint16("defaultFeeBPS", cfg.DefaultFeeBPS),
		zap.String("feeSink", cfg.FeeSink),
	)
	return nil
}

func (c *cli) close() {
	if c.factory != nil {
		c.factory.Close()
	}
}
