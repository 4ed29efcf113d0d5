package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/GeorgeHahn/vector/api"
	"github.com/GeorgeHahn/vector/config"
	"github.com/GeorgeHahn/vector/util/metrics"
)

var (
	serverAddr  string
	tokens      []string
	metricsMode string
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Serve the validated catalog over HTTP",
	Long:  `Daemon loads and validates the catalog, then serves it as a read-only HTTP API. It refuses to start while the catalog has outstanding diagnostics, so consumers never observe a partial or invalid catalog.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runDaemon(cmd)
	},
}

func runDaemon(cmd *cobra.Command) {
	// Auto-load configuration from the working directory and bind it,
	// along with CATALOG_* environment variables, to the daemon flags.
	configFile, err := config.FindConfigFile(".")
	maybeFail(err, "searching for configuration")
	if configFile != "" {
		viper.SetConfigFile(configFile)
		err = viper.ReadInConfig()
		maybeFail(err, "invalid config file (%s)", configFile)
		logger.Infof("Using configuration file: %s", configFile)
	}
	config.BindFlagSet(cmd.Flags())
	config.BindFlagSet(cmd.InheritedFlags())

	cat, parseErrors := loadCatalog()
	diags := cat.Validate()
	if len(parseErrors) > 0 || len(diags) > 0 {
		for _, d := range diags {
			fmt.Fprintf(os.Stderr, "%s\n", d.Error())
		}
		maybeFail(fmt.Errorf("%d parse errors, %d diagnostics", len(parseErrors), len(diags)),
			"refusing to serve an invalid catalog")
	}

	options := api.ExtraOptions{
		Tokens: tokens,
	}
	switch metricsMode {
	case "OFF":
	case "ON":
		options.MetricsEndpoint = true
		metrics.RegisterPrometheusMetrics()
	default:
		maybeFail(fmt.Errorf("unknown metrics mode %q", metricsMode), "metrics-mode must be ON or OFF")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Infof("serving %d components on %s", cat.Len(), serverAddr)
	api.Serve(ctx, serverAddr, cat, logger, options)
}

func init() {
	daemonCmd.Flags().StringVarP(&serverAddr, "server", "S", ":8980", "host:port to serve the catalog API on")
	daemonCmd.Flags().StringArrayVarP(&tokens, "token", "t", nil, "access token for the API; repeat for multiple tokens")
	daemonCmd.Flags().StringVarP(&metricsMode, "metrics-mode", "", "OFF", "enable the /metrics endpoint: [ON, OFF]")
}
