// Root command for the probe CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/probe/internal/client"
	"github.com/mesh-intelligence/probe/internal/paths"
	"github.com/mesh-intelligence/probe/pkg/probe"
)

// defaultServerURL is where client commands look for a probe server
// when neither --server nor config.yaml says otherwise.
const defaultServerURL = "http://localhost:9175"

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagServer    string
	flagJSON      bool
)

// Values loaded from config.yaml by PersistentPreRunE so all
// subcommands can use them.
var (
	configServerURL  string
	configDataDir    string
	configListenAddr string
)

var rootCmd = &cobra.Command{
	Use:     "probe",
	Short:   "Probe reads and writes device properties at runtime",
	Long: `Probe exposes an application's property tree over HTTP and lets you
navigate it by dotted path (for example "axis0.motor.velocity") to read,
write, watch, and snapshot individual values.`,
	Version: probe.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configServerURL = cfg.GetString(cfgKeyServerURL)
		configDataDir = cfg.GetString(cfgKeyDataDir)
		configListenAddr = cfg.GetString(cfgKeyListenAddr)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory for snapshots (default: $(CWD)/.probe-db)")
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "probe server URL (default: "+defaultServerURL+")")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(snapshotCmd)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > PROBE_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveDataDir returns the data directory following the precedence:
// --data-dir flag > config.yaml data_dir > PROBE_DATA_DIR env > default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveServerURL returns the server URL following the precedence:
// --server flag > config.yaml server_url > built-in default.
func resolveServerURL() string {
	if flagServer != "" {
		return flagServer
	}
	if configServerURL != "" {
		return configServerURL
	}
	return defaultServerURL
}

// newClient returns a property API client for the resolved server.
func newClient() *client.Client {
	return client.New(resolveServerURL())
}
