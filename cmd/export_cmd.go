package cmd

import (
	"fmt"
	"strings"

	"github.com/dzjyyds666/curlyconf/parse"
	"github.com/dzjyyds666/curlyconf/parse/curly"
	"github.com/dzjyyds666/curlyconf/pkg"
	"github.com/spf13/cobra"
)

type ExportParams struct {
	Find   string `json:"find"`   // 查找的key，形如 repo.0.url
	Input  string `json:"input"`  // 输入文件路径
	Output string `json:"output"` // 输出文件地址
	Format string `json:"format"` // json / yaml / toml，为空时按输出文件后缀判断
}

var exportParams = &ExportParams{}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a config file as JSON, YAML or TOML",
	RunE:  exportRun,
}

func init() {
	exportCmd.Flags().StringVarP(&exportParams.Find, "find", "f", "", "find")
	exportCmd.Flags().StringVarP(&exportParams.Input, "input", "i", "", "input file path")
	exportCmd.Flags().StringVarP(&exportParams.Output, "output", "o", "", "output path")
	exportCmd.Flags().StringVar(&exportParams.Format, "format", "", "output format: json, yaml or toml")
}

func exportRun(cmd *cobra.Command, args []string) error {
	format := parse.FormatFromPath(exportParams.Output)
	if exportParams.Format != "" {
		f, err := parse.ParseFormat(exportParams.Format)
		if err != nil {
			return err
		}
		format = f
	}

	section, err := loadConfig(cmd.Context(), exportParams.Input)
	if err != nil {
		return err
	}

	var value any = section
	if exportParams.Find != "" {
		v, ok := curly.Get(section, strings.Split(exportParams.Find, ".")...)
		if !ok {
			return fmt.Errorf("key %q not found", exportParams.Find)
		}
		value = v
	}

	out, err := pkg.OpenOutput(exportParams.Output, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := parse.Export(out, value, format); err != nil {
		out.Close()
		return err
	}
	logger.Debug("exported config", "file", exportParams.Input, "format", format, "find", exportParams.Find)
	return out.Close()
}
