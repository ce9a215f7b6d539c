// Package cmd implements the command-line interface for the key races
// reporter. It provides the root command and subcommands for assembling,
// inspecting, and scheduling reports.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/keyraces/cmd/report"
	"github.com/jonesrussell/keyraces/cmd/schedule"
	"github.com/jonesrussell/keyraces/cmd/targets"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug mode for all commands
	Debug bool

	// rootCmd represents the root command for the keyraces CLI.
	rootCmd = &cobra.Command{
		Use:   "keyraces",
		Short: "An election key races aggregator and reporter",
		Long: `Aggregate hand-curated race data with best-effort scraped data and
publish a ranked key races report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command
func Execute() error {
	// Load .env file early so environment variables are available
	_ = godotenv.Load()

	// Parse flags early to get debug flag before creating logger
	_ = rootCmd.ParseFlags(os.Args[1:])

	// Initialize configuration
	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	// Execute the root command with a fresh context
	return rootCmd.ExecuteContext(context.Background())
}

// init initializes the root command and its subcommands.
func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or ./config/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug mode")

	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("keyraces version %s\n", "1.0.0")
		},
	})

	// Add subcommands
	rootCmd.AddCommand(report.Command())
	rootCmd.AddCommand(targets.Command())
	rootCmd.AddCommand(schedule.Command())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	// Set config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	// Enable automatic environment variable reading before setting defaults
	// so environment variables take precedence over defaults
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults (only used if environment variables or config file don't provide values)
	setDefaults()

	// Read config file
	// Config file is optional: config can come from file, environment variables, or defaults
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Config file not found: %v (using defaults and environment variables)\n", err)
	}

	// Bind command-line flags to Viper
	if err := bindCommandLineFlags(); err != nil {
		return err
	}

	// Map environment variables to config keys
	if err := bindAppEnvVars(); err != nil {
		return err
	}

	// Bind SMTP environment variables
	if err := bindSMTPEnvVars(); err != nil {
		return err
	}

	// Set development logging settings
	setupDevelopmentLogging()

	return nil
}

// bindCommandLineFlags binds command-line flags to Viper.
func bindCommandLineFlags() error {
	if err := viper.BindPFlag("app.debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		return fmt.Errorf("failed to bind debug flag: %w", err)
	}
	if err := viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")); err != nil {
		return fmt.Errorf("failed to bind config flag: %w", err)
	}
	return nil
}

// bindAppEnvVars binds application and logger environment variables to config keys.
func bindAppEnvVars() error {
	if err := viper.BindEnv("app.environment", "APP_ENV"); err != nil {
		return fmt.Errorf("failed to bind APP_ENV: %w", err)
	}
	if err := viper.BindEnv("app.debug", "APP_DEBUG"); err != nil {
		return fmt.Errorf("failed to bind APP_DEBUG: %w", err)
	}
	if err := viper.BindEnv("logger.level", "LOG_LEVEL"); err != nil {
		return fmt.Errorf("failed to bind LOG_LEVEL: %w", err)
	}
	if err := viper.BindEnv("logger.encoding", "LOG_FORMAT"); err != nil {
		return fmt.Errorf("failed to bind LOG_FORMAT: %w", err)
	}
	if err := viper.BindEnv("provider", "KEYRACES_PROVIDER"); err != nil {
		return fmt.Errorf("failed to bind KEYRACES_PROVIDER: %w", err)
	}
	return nil
}

// bindSMTPEnvVars binds SMTP environment variables to config keys, so
// credentials never need to live in the config file.
func bindSMTPEnvVars() error {
	if err := viper.BindEnv("email.smtp.host", "SMTP_HOST"); err != nil {
		return fmt.Errorf("failed to bind SMTP_HOST: %w", err)
	}
	if err := viper.BindEnv("email.smtp.port", "SMTP_PORT"); err != nil {
		return fmt.Errorf("failed to bind SMTP_PORT: %w", err)
	}
	if err := viper.BindEnv("email.smtp.user", "SMTP_USER"); err != nil {
		return fmt.Errorf("failed to bind SMTP_USER: %w", err)
	}
	if err := viper.BindEnv("email.smtp.password", "SMTP_PASSWORD"); err != nil {
		return fmt.Errorf("failed to bind SMTP_PASSWORD: %w", err)
	}
	if err := viper.BindEnv("email.smtp.from", "SMTP_FROM"); err != nil {
		return fmt.Errorf("failed to bind SMTP_FROM: %w", err)
	}
	return nil
}

// setupDevelopmentLogging configures development logging settings based on environment and debug flag.
func setupDevelopmentLogging() {
	// Check both the flag variable and Viper to ensure we catch the debug flag
	debugFlag := Debug || viper.GetBool("app.debug")
	isDev := viper.GetString("app.environment") == "development"

	// Only set debug level if explicitly requested via flag or APP_DEBUG
	if debugFlag {
		viper.Set("logger.level", "debug")
	}

	// Set development mode formatting if in development environment,
	// without changing the log level
	if isDev {
		viper.Set("logger.development", true)
		viper.Set("logger.encoding", "console")
	}

	// Synchronize global Debug variable with Viper's value
	Debug = debugFlag
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults - production safe
	viper.SetDefault("app", map[string]any{
		"environment": "production",
		"debug":       false,
	})

	// Logger defaults - production safe
	viper.SetDefault("logger", map[string]any{
		"level":       "info",
		"development": false,
		"encoding":    "json",
	})

	// Provider and input defaults
	viper.SetDefault("provider", "wikipedia")
	viper.SetDefault("inputs", map[string]any{
		"curated": "races.curated.yaml",
		"targets": "races.targets.yaml",
	})

	// Behavior defaults - polite toward upstream sources
	viper.SetDefault("behavior", map[string]any{
		"request_delay":  "1s",
		"max_pages":      40,
		"workers":        4,
		"target_timeout": "20s",
		"run_timeout":    "5m",
	})
}
