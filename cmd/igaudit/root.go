package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"igaudit/pkg/audit"
	"igaudit/pkg/config"
	"igaudit/pkg/logger"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	outputFile string
	headful    bool
	proxy      string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "igaudit",
	Short: "Audit Instagram accounts for inauthentic engagement",
	Long: `igaudit inspects an Instagram account's engagement and follower base
for signs of inauthentic activity.

It drives a logged-in headless browser session to sample recent posts,
their comments, and a slice of the follower list, then derives:
  - engagement metrics with an additive risk score
  - per-follower bot classification with aggregated reasons
  - a Bayesian authenticity estimate over coarse account signals

The browser session directory must already hold a logged-in profile;
igaudit never performs the login itself.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is $HOME/.igaudit.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "write the JSON report to a file instead of stdout")
	rootCmd.PersistentFlags().BoolVar(&headful, "headful", false, "run the browser with a visible window")
	rootCmd.PersistentFlags().StringVar(&proxy, "proxy", "", "proxy server for all browser traffic")

	rootCmd.SetVersionTemplate(`igaudit {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// setup loads configuration, applies global flag overrides, and returns a
// ready engine plus its logger.
func setup() (*audit.Engine, logger.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if headful {
		cfg.Session.Headless = false
	}
	if proxy != "" {
		cfg.Session.Proxy = proxy
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		return nil, nil, fmt.Errorf("initialize logger: %w", err)
	}
	log := logger.GetLogger()
	log.WithField("version", version).Debug("igaudit starting")

	return audit.NewEngine(cfg, log), log, nil
}
