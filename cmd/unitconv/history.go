package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/unitconv/pkg/converter"
)

func NewHistoryCommand() *cobra.Command {
	var (
		clearAll   bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "history",
		Short:   "Show recent conversions made through the daemon",
		GroupID: gAdvanced,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if clearAll {
				ret, err := apiClient.ClearHistory()
				if err != nil {
					return fmt.Errorf("failed to clear history: %w", err)
				}
				if ret != "" {
					logrus.Debugf("daemon responded: %s", ret)
				}
				logrus.Infof("successfully cleared history")
				return nil
			}

			records, err := apiClient.GetHistory()
			if err != nil {
				return fmt.Errorf("failed to get history: %w", err)
			}

			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), records)
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No conversions yet.")
				return nil
			}

			for _, rec := range records {
				ts := rec.Time.Local().Format(time.DateTime)
				var outcome string
				switch rec.Result.Kind {
				case converter.KindSuccess:
					outcome = color.GreenString("%g", rec.Result.Magnitude)
				case converter.KindIncompatible:
					outcome = color.YellowString("incompatible")
				default:
					outcome = color.RedString("failed: %s", rec.Result.Message)
				}
				fmt.Fprintf(out, "%s  %g %s -> %s = %s\n", ts, rec.Value, rec.From, rec.To, outcome)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&clearAll, "clear", false, "clear the history")
	f.BoolVar(&jsonOutput, "json", false, "print the history as JSON")

	return cmd
}
