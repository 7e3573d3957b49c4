package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dzjyyds666/curlyconf/parse"
	"github.com/dzjyyds666/curlyconf/parse/curly"
	"github.com/dzjyyds666/curlyconf/pkg"
	"github.com/spf13/cobra"
)

type ParseParams struct {
	Input  string // 输入文件路径
	Output string // 输出文件地址
}

var checkParams = &ParseParams{}
var dumpParams = &ParseParams{}
var fmtParams = &ParseParams{}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a config file against its schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(cmd.Context(), checkParams.Input); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "ok")
		return nil
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the parsed section tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		section, err := loadConfig(cmd.Context(), dumpParams.Input)
		if err != nil {
			return err
		}
		return curly.Fdump(cmd.OutOrStdout(), section)
	},
}

var fmtCmd = &cobra.Command{
	Use:   "fmt",
	Short: "Rewrite a config file in canonical form",
	RunE: func(cmd *cobra.Command, args []string) error {
		section, err := loadConfig(cmd.Context(), fmtParams.Input)
		if err != nil {
			return err
		}
		out, err := pkg.OpenOutput(fmtParams.Output, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if err := curly.Encode(out, section); err != nil {
			out.Close()
			return err
		}
		return out.Close()
	},
}

func init() {
	checkCmd.Flags().StringVarP(&checkParams.Input, "input", "i", "", "input file path")
	dumpCmd.Flags().StringVarP(&dumpParams.Input, "input", "i", "", "input file path")
	fmtCmd.Flags().StringVarP(&fmtParams.Input, "input", "i", "", "input file path")
	fmtCmd.Flags().StringVarP(&fmtParams.Output, "output", "o", "", "output path")
}

// loadConfig 检查输入文件，加载 schema 并解析
func loadConfig(ctx context.Context, input string) (*curly.Section, error) {
	if len(input) == 0 {
		return nil, errors.New("no input file path")
	}
	exist, err := pkg.CheckFileExist(input)
	if err != nil {
		return nil, fmt.Errorf("check file exist error: %w", err)
	}
	if !exist {
		return nil, errors.New("input file not exist")
	}
	if len(global.Schema) == 0 {
		return nil, errors.New("no schema file path")
	}

	schema, err := parse.LoadSchema(global.Schema)
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	section, err := curly.Parse(ctx, input, global.Encoding, schema)
	if err != nil {
		logger.Debug("parse failed", "file", input, "schema", schema.Name(), "error", err)
		return nil, err
	}
	logger.Debug("parsed config", "file", input, "schema", schema.Name(), "encoding", global.Encoding, "elapsed", time.Since(start))
	return section, nil
}
