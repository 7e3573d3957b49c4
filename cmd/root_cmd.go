package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// GlobalParams 所有子命令共用的参数
type GlobalParams struct {
	Schema   string // schema 描述文件 (yaml/toml)
	Encoding string // 配置文件编码
	Verbose  bool   // 输出调试日志
}

var global = &GlobalParams{}

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

var rootCmd = &cobra.Command{
	Use:   "curlyconf",
	Short: "Curlyconf reads schema-checked curly-brace config files.",
	Long:  "Curlyconf reads curly-brace keyword/value config files, checks them against a schema and renders them as text, JSON, YAML or TOML.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if global.Verbose {
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		}
	},
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
	Short: "Print the version number of Curlyconf",
	Long:  `All software has versions. This is Curlyconf's`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "Curlyconf v0.1 -- HEAD")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&global.Schema, "schema", "s", "", "schema description file (.yaml or .toml)")
	rootCmd.PersistentFlags().StringVarP(&global.Encoding, "encoding", "e", "utf-8", "text encoding of the input file")
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "log debug information to stderr")
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(exportCmd)
}
