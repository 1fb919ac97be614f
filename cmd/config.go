package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xvierd/pomo-cli/internal/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the configuration file",
	Long:  `Show the effective configuration after defaults, config file, environment and flags are merged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		source := app.viper.ConfigFileUsed()
		if _, err := os.Stat(source); source == "" || err != nil {
			source = "defaults"
		}
		fmt.Fprintf(out, "# source: %s\n", source)

		keys := app.viper.AllKeys()
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(out, "%s = %v\n", key, app.viper.Get(key))
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configOptional = true
		defer func() { configOptional = false }()
		return initializeServices(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			var err error
			path, err = config.GetConfigPath()
			if err != nil {
				return err
			}
		}

		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		write := app.viper.SafeWriteConfigAs
		if configForce {
			write = app.viper.WriteConfigAs
		}
		if err := write(path); err != nil {
			var exists viper.ConfigFileAlreadyExistsError
			if errors.As(err, &exists) {
				return fmt.Errorf("%s already exists; use --force to overwrite", path)
			}
			return fmt.Errorf("failed to write config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Config written to %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
}
