package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/unitconv/pkg/events"
)

func NewWatchCommand() *cobra.Command {
	var names []string

	cmd := &cobra.Command{
		Use:     "watch",
		Short:   "Print daemon events as they happen",
		GroupID: gAdvanced,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			evCh, err := apiClient.SubscribeEvents(ctx, names...)
			if err != nil {
				return err
			}

			logrus.Info("watching daemon events, press Ctrl-C to stop")
			printEvents(cmd.OutOrStdout(), evCh)

			if ctx.Err() == nil {
				return fmt.Errorf("daemon closed the event stream")
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&names, "event", "e", nil,
		fmt.Sprintf("only show these events (%s, %s, %s, %s)",
			events.ConversionCompleted, events.HistoryCleared, events.HistoryPruned, events.ConfigChanged))

	return cmd
}

// printEvents writes one line per event until evCh is closed.
func printEvents(w io.Writer, evCh <-chan events.Event) {
	for ev := range evCh {
		logrus.WithFields(logrus.Fields{
			"event": ev.Name,
			"data":  string(ev.Data),
		}).Debug("new event")

		ts := time.Now().Format(time.TimeOnly)
		switch ev.Name {
		case events.ConversionCompleted:
			payload, err := events.DecodeAs[events.ConversionEvent](ev)
			if err != nil {
				logrus.WithError(err).Errorf("failed to decode %s event", ev.Name)
				continue
			}
			line := fmt.Sprintf("%g %s -> %s", payload.Value, payload.From, payload.To)
			switch payload.Kind {
			case "success":
				fmt.Fprintf(w, "%s  %s = %s\n", ts, line, color.GreenString("%g", payload.Magnitude))
			case "incompatible":
				fmt.Fprintf(w, "%s  %s %s\n", ts, line, color.YellowString("incompatible"))
			default:
				fmt.Fprintf(w, "%s  %s %s\n", ts, line, color.RedString("failed: %s", payload.Message))
			}
		case events.HistoryCleared:
			fmt.Fprintf(w, "%s  history cleared\n", ts)
		case events.HistoryPruned:
			n, err := events.DecodeAs[int](ev)
			if err != nil {
				logrus.WithError(err).Errorf("failed to decode %s event", ev.Name)
				continue
			}
			fmt.Fprintf(w, "%s  pruned %d history records\n", ts, n)
		case events.ConfigChanged:
			p, err := events.DecodeAs[int](ev)
			if err != nil {
				logrus.WithError(err).Errorf("failed to decode %s event", ev.Name)
				continue
			}
			fmt.Fprintf(w, "%s  config changed, precision is %s\n", ts, bold("%d", p))
		default:
			fmt.Fprintf(w, "%s  %s %s\n", ts, ev.Name, string(ev.Data))
		}
	}
}
