// Package main is the entry point for the finconvert CLI. Running it with no
// subcommand opens the interactive submission form; `submit` drives the same
// conversion client non-interactively.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cvanwyk/finconvert/internal/config"
	"github.com/cvanwyk/finconvert/internal/ui"
	"github.com/cvanwyk/finconvert/internal/upload"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "finconvert",
	Short: "Upload financial statement PDFs for Excel consolidation",
	Long: `finconvert collects annual financial statement PDFs, a client name, and
optional parser instructions, submits them to the remote conversion backend,
and saves the consolidated Excel workbook it returns.

With no subcommand it opens the interactive form. Use "submit" to convert
from scripts or a plain shell.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load(viper.GetViper())
		client := upload.New(cfg)

		p := tea.NewProgram(ui.InitialModel(client), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./finconvert.yaml or ~/.config/finconvert/config.yaml)")
	rootCmd.PersistentFlags().String("endpoint", "", "conversion backend URL")
	rootCmd.PersistentFlags().String("output-dir", "", "directory for downloaded workbooks (default: current directory)")
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("error loading .env file", "err", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("finconvert")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "finconvert"))
		}
	}

	viper.SetEnvPrefix("FINCONVERT")
	viper.AutomaticEnv()

	viper.BindPFlag("endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
	viper.BindPFlag("output_dir", rootCmd.PersistentFlags().Lookup("output-dir"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
