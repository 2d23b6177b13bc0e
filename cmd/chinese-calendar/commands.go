package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/username/chinese-calendar/internal/calendar"
	"github.com/username/chinese-calendar/internal/dataset"
	"github.com/username/chinese-calendar/internal/server"
	"github.com/username/chinese-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <date>...",
		Short: "Show whether dates are workdays or holidays",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := buildCalendar(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, arg := range args {
				date, err := parseDateArg(arg)
				if err != nil {
					return err
				}

				dayInfo, err := cal.GetDayInfo(date)
				if err != nil {
					return err
				}
				printDay(out, dayInfo)
			}
			return nil
		},
	}
}

func monthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month <YYYY-MM>",
		Short: "Print the calendar of a month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := dateutil.ParseMonth(args[0])
			if err != nil {
				return err
			}

			cal, err := buildCalendar(cfg)
			if err != nil {
				return err
			}

			monthInfo, err := cal.GetMonthInfo(year, month)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %d\n", month, year)
			fmt.Fprintln(out, "═══════════════════════════════════════════════════════")
			for i := range monthInfo.Days {
				printDay(out, &monthInfo.Days[i])
			}
			fmt.Fprintln(out, "═══════════════════════════════════════════════════════")
			fmt.Fprintf(out, "  Working days:           %d\n", monthInfo.WorkDays)
			fmt.Fprintf(out, "  Compensatory workdays:  %d\n", monthInfo.CompensatoryWorkdays)
			fmt.Fprintf(out, "  Holidays:               %d\n", monthInfo.Holidays)
			fmt.Fprintf(out, "  Weekends:               %d\n", monthInfo.Weekends)
			return nil
		},
	}
}

func holidaysCmd() *cobra.Command {
	return rangeCmd("holidays", "List days off between two dates", "List declared holidays only, without plain weekends", calendar.Holidays)
}

func workdaysCmd() *cobra.Command {
	return rangeCmd("workdays", "List working days between two dates", "Leave out compensatory workdays on Saturday or Sunday", calendar.Workdays)
}

func rangeCmd(use, short, noWeekendsHelp string,
	query func(calendar.Calendar, calendar.DateLike, calendar.DateLike, bool) ([]dateutil.Date, error)) *cobra.Command {
	var noWeekends bool

	cmd := &cobra.Command{
		Use:   use + " <start> <end>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseDateArg(args[0])
			if err != nil {
				return err
			}
			end, err := parseDateArg(args[1])
			if err != nil {
				return err
			}

			cal, err := buildCalendar(cfg)
			if err != nil {
				return err
			}

			dates, err := query(cal, start, end, !noWeekends)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, d := range dates {
				fmt.Fprintf(out, "%s %s\n", d, d.Weekday())
			}
			fmt.Fprintf(out, "Total: %d\n", len(dates))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noWeekends, "no-weekends", false, noWeekendsHelp)
	return cmd
}

func findWorkdayCmd() *cobra.Command {
	var delta int
	var fromStr string

	cmd := &cobra.Command{
		Use:   "find-workday",
		Short: "Find the workday delta workdays away from a date",
		Long: "With --delta 0 prints the date itself if it is a workday, otherwise the next workday.\n" +
			"Positive deltas count workdays forward from there, negative deltas count backwards.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from := dateutil.Today()
			if fromStr != "" {
				var err error
				from, err = parseDateArg(fromStr)
				if err != nil {
					return err
				}
			}

			cal, err := buildCalendar(cfg)
			if err != nil {
				return err
			}

			date, err := calendar.FindWorkday(cal, delta, from)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", date, date.Weekday())
			return nil
		},
	}

	cmd.Flags().IntVarP(&delta, "delta", "d", 0, "Number of workdays to move")
	cmd.Flags().StringVar(&fromStr, "from", "", "Start date (default today)")
	return cmd
}

func serveCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calendar over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := buildCalendar(cfg)
			if err != nil {
				return err
			}

			serverCfg := cfg.Server
			if listen != "" {
				serverCfg.Listen = listen
			}

			logger.Info("Starting HTTP API",
				zap.String("listen", serverCfg.Listen),
				zap.Strings("allowed_origins", serverCfg.AllowedOrigins))

			return server.NewServer(cal, serverCfg, logger).Start()
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (overrides server.listen)")
	return cmd
}

func datasetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Inspect holiday datasets",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate [file]",
		Short: "Parse a dataset file (or the bundled one) and report problems",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ds *dataset.Dataset
			var err error
			source := "bundled dataset"
			if len(args) == 1 {
				source = args[0]
				ds, err = dataset.LoadFile(args[0], logger)
			} else {
				ds, err = dataset.Default(logger)
			}
			if err != nil {
				return err
			}

			holidays, workdays := ds.Len()
			minYear, maxYear := ds.YearRange()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d holidays, %d compensatory workdays, years %d-%d\n",
				source, holidays, workdays, minYear, maxYear)

			overlaps := ds.Overlaps()
			for _, d := range overlaps {
				fmt.Fprintf(out, "  both holiday and workday: %s\n", d)
			}
			if len(overlaps) > 0 {
				return fmt.Errorf("%d overlapping date(s)", len(overlaps))
			}
			return nil
		},
	})

	return cmd
}

func parseDateArg(value string) (dateutil.Date, error) {
	t, err := dateutil.ParseDate(value)
	if err != nil {
		return dateutil.Date{}, fmt.Errorf("invalid date: %w", err)
	}
	return dateutil.FromTime(t), nil
}

func printDay(out io.Writer, day *calendar.DayInfo) {
	status := "workday"
	if day.IsHoliday {
		status = "holiday"
	}

	line := fmt.Sprintf("%s %-9s %-7s", day.Date, day.Weekday, status)
	if day.Note != "" {
		line += " " + day.Note
		if day.Type == calendar.DayTypeCompensatoryWorkday {
			line += " (compensatory)"
		}
	}
	fmt.Fprintln(out, strings.TrimRight(line, " "))
}
