package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/moltaidev/usdc-mandate/pkg/cli"
	"github.com/moltaidev/usdc-mandate/pkg/config"
	"github.com/moltaidev/usdc-mandate/pkg/report"
	"github.com/moltaidev/usdc-mandate/pkg/telemetry/logging"
	"github.com/moltaidev/usdc-mandate/pkg/workspace"
)

// app carries what every command needs after flags are parsed.
type app struct {
	cfg    *config.Config
	logger *logging.Logger
	format cli.OutputFormat
	stdout io.Writer
	stderr io.Writer
	now    func() time.Time
}

// newApp loads configuration and builds the logger for cmd. formats lists
// the output formats cmd supports; the default is text and json.
func newApp(cmd *cobra.Command, formats ...cli.OutputFormat) (*app, error) {
	if len(formats) == 0 {
		formats = []cli.OutputFormat{cli.FormatText, cli.FormatJSON}
	}

	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if outputFormat != "" {
		cfg.Output.Format = outputFormat
	}
	format, err := cli.ParseOutputFormat(cfg.Output.Format, formats...)
	if err != nil {
		return nil, err
	}

	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	logCfg := logging.ConfigFrom(cfg.Telemetry.Logging)
	logCfg.Writer = cmd.ErrOrStderr()
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}

	config.SetConfig(cfg)

	return &app{
		cfg:    cfg,
		logger: logger,
		format: format,
		stdout: cmd.OutOrStdout(),
		stderr: cmd.ErrOrStderr(),
		now:    time.Now,
	}, nil
}

// configPath returns the configuration file in effect, or "" when running
// on defaults.
func (a *app) configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if _, err := os.Stat(config.DefaultConfigFile); errors.Is(err, fs.ErrNotExist) {
		return ""
	}
	return config.DefaultConfigFile
}

// alertThreshold returns usage.alert_threshold from the active
// configuration, which watch replaces when the config file changes.
func (a *app) alertThreshold() float64 {
	if cfg := config.GetConfig(); cfg != nil {
		return cfg.Usage.AlertThreshold
	}
	return a.cfg.Usage.AlertThreshold
}

// workspaceDir resolves the workspace for the optional positional argument.
func (a *app) workspaceDir(args []string) (string, error) {
	arg := a.cfg.Workspace.Path
	if len(args) > 0 && args[0] != "" {
		arg = args[0]
	}

	dir, err := workspace.ResolveFromEnvironment(arg)
	if err != nil {
		return "", fmt.Errorf("failed to resolve workspace: %w", err)
	}
	return dir, nil
}

// layout returns the document names configured for the workspace.
func (a *app) layout() workspace.Layout {
	return workspace.Layout{
		MandateFile: a.cfg.Workspace.MandateFile,
		LedgerFile:  a.cfg.Workspace.LedgerFile,
	}
}

// load reads both documents of the workspace at dir.
func (a *app) load(dir string) (mandateDoc, ledgerDoc report.Document) {
	mandatePath, ledgerPath := a.layout().Paths(dir)
	return workspace.Load(report.KindMandate, mandatePath), workspace.Load(report.KindLedger, ledgerPath)
}
