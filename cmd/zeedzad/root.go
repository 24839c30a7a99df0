package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"zeedzad/web/pkg/api"
	"zeedzad/web/pkg/cli"
	"zeedzad/web/pkg/config"
	"zeedzad/web/pkg/telemetry/logging"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile      string
	verbose      bool
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "zeedzad",
	Short: "zeedzad web gateway and game resolution tools",
	Long: `zeedzad fronts the video catalog backend with an /api gateway and
provides commands to find the game shown in a video and bind it.

Game searches try the local catalog first and fall back to the external
metadata service only when nothing local matches.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", errorText(err))
		return cli.ExitCode(err)
	}
	return cli.ExitOK
}

// errorText is the message printed for a failed command. With --verbose,
// backend call failures include the request line and error kind.
func errorText(err error) string {
	var apiErr *api.Error
	if verbose && errors.As(err, &apiErr) {
		return fmt.Sprintf("%v\n  %s", err, apiErr.Detail())
	}
	return err.Error()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format (text, json; default text on a terminal)")
}

// loadConfig loads the configuration file (missing is fine) with
// environment overrides and installs it as the global configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError(cfgFile, err.Error())
	}
	config.SetConfig(cfg)
	return cfg, nil
}

// setupLogging installs the default logger. Command output goes to stdout,
// so the client commands log to stderr.
func setupLogging(cfg *config.Config, toStderr bool) (*slog.Logger, error) {
	lc := logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
	}
	if verbose {
		lc.Level = "debug"
	}
	if toStderr {
		lc.Writer = os.Stderr
		if !verbose {
			lc.Level = "warn"
		}
	}

	logger, err := logging.Setup(lc)
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	return logger, nil
}

// printResult writes v to the command's stdout in the selected format.
func printResult(cmd *cobra.Command, v any) error {
	format, err := cli.ParseOutputFormat(outputFormat)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	return cli.NewFormatter(format, out).FormatTo(out, v)
}
