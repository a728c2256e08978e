package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yeisme/greeter/pkg/configs"
)

var (
	noColor bool

	configCmd = &cobra.Command{
		Use:     "config",
		Short:   "Manage greeter configuration",
		Long:    `greeter config allows you to view and manage your greeter configuration settings.`,
		Aliases: []string{"c"},
	}

	configValidateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Validate greeter configuration",
		Long: `greeter config validate checks the configuration file and GREETER_* environment variables.

The port must be between 1 and 65535 and server.variant must name a built-in greeting
unless server.greeting is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// 配置已在 PersistentPreRunE 中加载并校验
			fileUsed := greeterCtx.ConfigFileUsed()
			if fileUsed == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No config file found, defaults are valid")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config file is valid: %s\n", fileUsed)
			return nil
		},
		Aliases: []string{"check", "verify"},
	}

	configListCmd = &cobra.Command{
		Use:   "list [section]",
		Short: "List greeter configuration",
		Long: `greeter config list displays the current configuration settings.

You can specify a section to display only that part of the configuration:
  - app: Application settings
  - log: Logging settings
  - server: Greeter listener settings
  - admin: Health and metrics listener settings

Examples:
  greeter config list                    # Show all configuration (viper raw data)
  greeter config list --all              # Show all configuration with defaults
  greeter config list server             # Show only server settings
  greeter config list --format json      # Output in JSON format
  greeter config list server --all --toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section := ""
			if len(args) > 0 {
				section = args[0]
			}

			format := configs.GetOutputFormatFromFlags(cmd)
			showAll, _ := cmd.Flags().GetBool("all")

			data, err := configs.GetConfigSection(greeterCtx.Viper, section, showAll)
			if err != nil {
				return fmt.Errorf("error getting config section: %w", err)
			}

			return configs.OutputData(data, format, cmd.OutOrStdout(), !noColor)
		},
		Aliases: []string{"ls"},
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Initialize greeter configuration",
		Long: `greeter config init creates a new configuration file with default settings.

Examples:
  greeter config init                    # Create .greeter.yaml in current directory
  greeter config init --path /etc/greeter/greeter.yaml
  greeter config init --format toml      # Create .greeter.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("path")
			formatStr, _ := cmd.Flags().GetString("format")

			format, err := configs.ParseOutputFormat(formatStr)
			if err != nil {
				return err
			}
			if format == configs.FormatText {
				return errors.New("text format is not supported for config files")
			}

			if path == "" {
				path = ".greeter." + string(format)
			}

			if err := configs.CreateDefaultConfig(path, format); err != nil {
				return fmt.Errorf("failed to create config file: %w", err)
			}

			log.Info().Msgf("Config file created successfully: %s", path)
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(
		configListCmd,
		configValidateCmd,
		configInitCmd,
	)

	configListCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	configListCmd.Flags().StringP("format", "f", "", fmt.Sprintf("Output format (%s)", strings.Join(configs.ValidFormats(), ", ")))
	configListCmd.Flags().Bool("yaml", false, "Output in YAML format")
	configListCmd.Flags().Bool("json", false, "Output in JSON format")
	configListCmd.Flags().Bool("toml", false, "Output in TOML format")
	configListCmd.Flags().Bool("text", false, "Output in plain text format")
	configListCmd.Flags().BoolP("all", "a", false, "Show complete configuration with defaults (processed struct)")

	configInitCmd.Flags().StringP("path", "p", "", "Path to the config file")
	configInitCmd.Flags().StringP("format", "f", "yaml", "Format of the config file (yaml, json, toml)")
}
