package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/garrettladley/weightrack/internal/service/tracking"
	"github.com/garrettladley/weightrack/internal/tracker"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print current body stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withTracker(cmd.Context(), func(svc tracking.Service) error {
				snap, err := svc.Get(cmd.Context())
				if err != nil {
					return err
				}
				return printSnapshot(stdout, snap)
			})
		},
	}
}

func setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <field> <value>",
		Short: "Set an initial input",
		Long: "Sets one of the initial inputs: start-date, weight-unit, calorie-unit, " +
			"starting-weight, goal-weight, goal-gain-per-week, daily-surplus, tdee.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := tracker.ParseField(args[0])
			if err != nil {
				return err
			}
			return withTracker(cmd.Context(), func(svc tracking.Service) error {
				snap, err := svc.SetField(cmd.Context(), field, args[1])
				if err != nil {
					return fmt.Errorf("failed to set %s: %w", field, err)
				}
				fmt.Fprintf(stdout, "%s = %s\n", field, snap.State.FieldText(field))
				return nil
			})
		},
	}
}

func logCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log <week> <weights|calories> <day> <value>",
		Short: "Record a daily weight or calorie entry",
		Long:  "Records one entry in the weekly grid. Day is 0-6 or a weekday name. An empty value clears the entry.",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			week, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid week %q: %w", args[0], err)
			}
			kind, err := tracker.ParseKind(args[1])
			if err != nil {
				return err
			}
			day, err := tracker.ParseDay(args[2])
			if err != nil {
				return err
			}

			return withTracker(cmd.Context(), func(svc tracking.Service) error {
				snap, err := svc.SetCell(cmd.Context(), week, kind, day, args[3])
				if err != nil {
					return fmt.Errorf("failed to log entry: %w", err)
				}
				value := snap.State.Cell(week, kind, day)
				if value == "" {
					value = "(cleared)"
				}
				fmt.Fprintf(stdout, "week %d %s %s = %s\n", week+1, kind, day, value)
				return nil
			})
		},
	}
}

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the stored tracker blob",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withTracker(cmd.Context(), func(svc tracking.Service) error {
				raw, err := svc.Export(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(stdout, raw)
				return nil
			})
		},
	}
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the stored tracker with a previously exported blob",
		Long:  "Validates and stores a blob written by export. Use - to read from stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			return withTracker(cmd.Context(), func(svc tracking.Service) error {
				snap, err := svc.Import(cmd.Context(), raw)
				if err != nil {
					return fmt.Errorf("failed to import %s: %w", args[0], err)
				}
				fmt.Fprintf(stdout, "Imported %d weeks\n", len(snap.State.Weeks))
				return nil
			})
		},
	}
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func printSnapshot(w io.Writer, snap tracking.Snapshot) error {
	in := snap.State.Inputs
	st := snap.Stats

	goalDate := "n/a"
	if st.HasGoalDate {
		goalDate = tracker.FormatDate(st.GoalDate)
	}
	progress := "n/a"
	if p, ok := st.Progress.Get(); ok {
		progress = tracker.FormatFixed(p*100, 0) + "%"
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"Today's Date", tracker.FormatDate(st.Today)},
		{"Start Date", tracker.FormatDate(in.StartDate)},
		{"Current Weight", tracker.FormatFixed(st.CurrentWeight, 1) + " " + in.WeightUnit.String()},
		{"Weight Change", tracker.FormatSigned(st.WeightDelta, 1) + " " + in.WeightUnit.String()},
		{"Estimated TDEE", "~" + tracker.FormatFixed(st.TDEE, 0) + " " + in.CalorieUnit.String() + "/day"},
		{"Daily Target", tracker.FormatFixed(st.DailyTarget, 0) + " " + in.CalorieUnit.String()},
		{"Weeks to Goal", tracker.FormatFixed(st.WeeksToGoal, 1)},
		{"Goal Date", goalDate},
		{"Goal Progress", progress},
		{"Day / Week", strconv.Itoa(st.DaysSinceStart) + " / " + strconv.Itoa(st.WeekIndex+1)},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1])
	}
	return tw.Flush()
}
