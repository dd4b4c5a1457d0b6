package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/epuerta/repopatch/internal/config"
	"github.com/epuerta/repopatch/internal/logging"
	"github.com/epuerta/repopatch/internal/server"
)

var (
	// Version is set during build
	Version = "dev"
	// GitCommit is set during build
	GitCommit = "none"
	// BuildDate is set during build
	BuildDate = "unknown"

	// Logger instance - global within main package for simplicity
	appLogger logging.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "repopatch [flags]",
	Short: "Local backend for browsing a repository and applying patches",
	Long: `Repopatch serves a small HTTP API over a local filesystem: list an
ignore-aware directory tree, read files individually or in batches, and
apply multi-file unified diffs with fuzzy hunk matching.

Examples:
  repopatch
  repopatch --port 8090 --debug
  repopatch --https --cert server.cert --key server.key`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runServer(cmd)
	},
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
}

func init() {
	rootCmd.PersistentFlags().IntP("port", "p", 0, "Port to listen on (default 3000)")
	rootCmd.PersistentFlags().Bool("https", false, "Serve TLS using --cert and --key")
	rootCmd.PersistentFlags().String("cert", "", "Path to the TLS certificate file")
	rootCmd.PersistentFlags().String("key", "", "Path to the TLS private key file")
	rootCmd.PersistentFlags().StringP("origins", "o", "", "Comma-separated list of allowed CORS origins")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to a file")
	rootCmd.PersistentFlags().String("log-file", "", "Path to the log file (default: stderr)")

	// Bind standard Go flags to pflag
	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)
}

func runServer(cmd *cobra.Command) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	applyFlagOverrides(cmd, cfg)

	appLogger = newLogger(cfg)
	defer appLogger.Close()

	srv := server.New(cfg, appLogger)

	// Run the server in the background so signals can stop it gracefully.
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			appLogger.Log("server exited with error: %v", err)
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		}
	case sig := <-sigCh:
		appLogger.Log("received signal %v, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			appLogger.Log("shutdown error: %v", err)
		}
	}
}

// applyFlagOverrides folds explicitly set command-line flags into the
// configuration, taking precedence over file and environment values.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}
	if flags.Changed("https") {
		cfg.UseHTTPS, _ = flags.GetBool("https")
	}
	if flags.Changed("cert") {
		cfg.CertFile, _ = flags.GetString("cert")
	}
	if flags.Changed("key") {
		cfg.KeyFile, _ = flags.GetString("key")
	}
	if flags.Changed("origins") {
		origins, _ := flags.GetString("origins")
		cfg.AllowedOrigins = config.SplitOrigins(origins)
	}
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}
	if flags.Changed("log-file") {
		cfg.LogFile, _ = flags.GetString("log-file")
	}
}

// newLogger picks the logger for this run: a file logger when a path is
// configured or debug mode is on, stderr otherwise. Debug mode without an
// explicit path logs under the user's config directory.
func newLogger(cfg *config.Config) logging.Logger {
	logFile := cfg.LogFile
	if logFile == "" && cfg.Debug {
		home, err := os.UserHomeDir()
		if err == nil {
			logFile = filepath.Join(home, config.DefaultConfigDir, "debug.log")
		}
	}
	if logFile != "" {
		l, err := logging.NewFileLogger(logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to open log file: %v, logging to stderr\n", err)
			return logging.NewConsoleLogger()
		}
		return l
	}
	return logging.NewConsoleLogger()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
