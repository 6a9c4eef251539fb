package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/charlie0129/unitconv/pkg/config"
	"github.com/charlie0129/unitconv/pkg/converter"
	"github.com/charlie0129/unitconv/pkg/history"
	"github.com/charlie0129/unitconv/pkg/types"
)

func NewConvertCommand() *cobra.Command {
	var (
		category   string
		local      bool
		precision  int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "convert [value] [from] [to]",
		Aliases: []string{"c"},
		Short:   "Convert a value from one unit to another",
		GroupID: gBasic,
		Long: `Convert a value from one unit to another.

Units can be identifiers ("degC"), labels ("Celsius (°C)") or expressions
("kilometer/hour"). Use --category to restrict units to one category. The value
must not be negative.`,
		Example: `  unitconv convert 5 mile kilometer
  unitconv convert 100 degC degF --precision 1
  unitconv convert 3 "Acre (ac)" "Hectare (ha)" --category Area
  unitconv convert 60 mile/hour m/s --local`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseFloatArg(args[0], "value")
			if err != nil {
				return err
			}
			if precision > config.MaxPrecision {
				return fmt.Errorf("precision must be between 0 and %d, got %d", config.MaxPrecision, precision)
			}

			req := converter.Request{
				Value:    value,
				From:     args[1],
				To:       args[2],
				Category: category,
			}

			var resp *types.ConvertResponse
			if local {
				resp, err = convertLocal(req, precision)
			} else {
				resp, err = apiClient.Convert(req)
				if err == nil && precision >= 0 {
					resp.Message = converter.Describe(resp.Resolved(), resp.Result, precision)
				}
			}
			if err != nil {
				return fmt.Errorf("failed to convert: %w", err)
			}

			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), resp)
			}

			out := cmd.OutOrStdout()
			switch resp.Result.Kind {
			case converter.KindSuccess:
				fmt.Fprintln(out, color.New(color.Bold, color.FgGreen).Sprint(resp.Message))
				return nil
			case converter.KindIncompatible:
				fmt.Fprintln(out, color.New(color.Bold, color.FgYellow).Sprint(resp.Message))
			default:
				fmt.Fprintln(out, color.New(color.Bold, color.FgRed).Sprint(resp.Message))
			}
			return fmt.Errorf("conversion %s", resp.Result.Kind)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&category, "category", "c", "", "only accept units from this category")
	f.BoolVar(&local, "local", false, "convert in-process instead of asking the daemon")
	f.IntVarP(&precision, "precision", "p", -1, "decimal places to show (default: from config)")
	f.BoolVar(&jsonOutput, "json", false, "print the result as JSON")

	return cmd
}

// convertLocal runs a conversion without the daemon. The precision comes
// from the config file unless overridden.
func convertLocal(req converter.Request, precision int) (*types.ConvertResponse, error) {
	if precision < 0 {
		conf, err := config.NewFile(configPath)
		if err != nil {
			return nil, err
		}
		precision = conf.Precision()
	}

	resolved, res, msg, err := converter.New(nil).Do(req, precision)
	if err != nil {
		return nil, err
	}

	return &types.ConvertResponse{
		Record:  history.NewRecord(resolved, res),
		Message: msg,
	}, nil
}
