package cmd

import (
	"fmt"
	"os"

	"github.com/dzjyyds666/aqtoml/pkg/edit"
	"github.com/dzjyyds666/aqtoml/pkg/logging"
	"github.com/spf13/cobra"
)

const version = "v0.2.0"

type RootParams struct {
	LogLevel  string `json:"log_level"`  // 日志级别
	LogFormat string `json:"log_format"` // 日志格式 text|json
	Color     string `json:"color"`      // auto|always|never
}

var rootParams = &RootParams{}

// store 在每次命令执行前按日志参数重建
var store = edit.New()

var rootCmd = &cobra.Command{
	Use:   "aq",
	Short: "Aq is a tool for processing various types of data.",
	Long:  "Aq is a tool for processing various types of data. It reads, queries and edits TOML documents while keeping their layout.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(logging.Options{
			Level:  rootParams.LogLevel,
			Format: rootParams.LogFormat,
			Writer: cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}
		store = edit.New(edit.WithLogger(l))
		return nil
	},
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Aq",
	Long:  `All software has versions. This is Aq's`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Aq %s -- HEAD\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootParams.LogLevel, "log-level", "error", "log level: debug|info|warn|error|off")
	rootCmd.PersistentFlags().StringVar(&rootParams.LogFormat, "log-format", "text", "log format: text|json")
	rootCmd.PersistentFlags().StringVar(&rootParams.Color, "color", "auto", "colorize output: auto|always|never")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(tomlCmd)
}
