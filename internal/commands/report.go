package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tutorledger/tutorledger/internal/model"
	"github.com/tutorledger/tutorledger/internal/report"
	"github.com/tutorledger/tutorledger/internal/roster"
	"github.com/tutorledger/tutorledger/internal/trend"
)

func newReportCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Income, attendance and trend reports",
	}
	cmd.AddCommand(
		newReportIncomeCommand(flags),
		newReportAttendanceCommand(flags),
		newReportSummaryCommand(flags),
		newReportTrendCommand(flags),
		newReportHistoryCommand(flags),
	)
	return cmd
}

// reportRun is the body of a report subcommand, given the loaded roster.
type reportRun func(cmd *cobra.Command, ws *workspace, students []model.Student, ref time.Time) error

func runReport(flags *globalFlags, run reportRun) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(flags)
		if err != nil {
			return err
		}
		snap, err := ws.load()
		if err != nil {
			return err
		}
		ref, err := ws.reference(flags)
		if err != nil {
			return err
		}
		return run(cmd, ws, snap.Roster.Students(), ref)
	}
}

func newReportIncomeCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "income",
		Short: "Potential and actual income per month",
		Args:  cobra.NoArgs,
		RunE: runReport(flags, func(cmd *cobra.Command, ws *workspace, students []model.Student, _ time.Time) error {
			series := roster.IncomeSeries(students)
			if len(series) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sessions logged yet.")
				return nil
			}
			var rows [][]string
			for _, d := range series {
				rows = append(rows, []string{
					d.Label.String(),
					money(ws.cfg.Currency, d.Potential),
					money(ws.cfg.Currency, d.Actual),
					money(ws.cfg.Currency, d.Potential.Sub(d.Actual)),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Month", "Potential", "Actual", "Lost"}, rows))
			return nil
		}),
	}
}

func newReportAttendanceCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "attendance",
		Short: "Sessions attended per month",
		Args:  cobra.NoArgs,
		RunE: runReport(flags, func(cmd *cobra.Command, _ *workspace, students []model.Student, _ time.Time) error {
			series := roster.AttendanceSeries(students)
			if len(series) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sessions logged yet.")
				return nil
			}
			var rows [][]string
			for _, a := range series {
				rows = append(rows, []string{a.YearMonth.Label().String(), strconv.Itoa(a.AttendedCount)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Month", "Sessions"}, rows))
			return nil
		}),
	}
}

func newReportSummaryCommand(flags *globalFlags) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Dashboard for one month",
		Args:  cobra.NoArgs,
		RunE: runReport(flags, func(cmd *cobra.Command, ws *workspace, students []model.Student, ref time.Time) error {
			if month != "" {
				ym, err := model.ParseYearMonth(month)
				if err != nil {
					return fmt.Errorf("--month: %w", err)
				}
				ref = time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, ws.cfg.Location())
			}
			d := report.BuildDashboard(students, ref)
			cur := ws.cfg.Currency

			rows := [][]string{
				{"Scheduled sessions", strconv.Itoa(d.Scheduled)},
				{"Completed sessions", strconv.Itoa(d.Completed)},
				{"Potential income", money(cur, d.Potential)},
				{"Actual income", money(cur, d.Actual)},
				{"Lost income", money(cur, d.Lost)},
				{"Income trend", formatTrend(d.IncomeTrend)},
				{"Lost income trend", formatTrend(d.LostTrend)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), d.YearMonth.Label())
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"", ""}, rows))
			return nil
		}),
	}

	cmd.Flags().StringVar(&month, "month", "", "month YYYY-MM (default: the month of --today)")
	return cmd
}

func newReportTrendCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "trend",
		Short: "Actual income trend for the reference month",
		Args:  cobra.NoArgs,
		RunE: runReport(flags, func(cmd *cobra.Command, _ *workspace, students []model.Student, ref time.Time) error {
			ym := model.YearMonthOf(ref)
			fmt.Fprintf(cmd.OutOrStdout(), "%s actual income: %s\n", ym.Label(), formatTrend(trend.ActualIncome(students, ref)))
			return nil
		}),
	}
}

func newReportHistoryCommand(flags *globalFlags) *cobra.Command {
	var attendance bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Month-over-month revenue or attendance changes",
		Args:  cobra.NoArgs,
		RunE: runReport(flags, func(cmd *cobra.Command, ws *workspace, students []model.Student, _ time.Time) error {
			var points []trend.Point
			format := func(p trend.Point, prev bool) string {
				v := p.Current
				if prev {
					v = p.Previous
				}
				return money(ws.cfg.Currency, v)
			}
			if attendance {
				points = trend.AttendanceHistory(roster.AttendanceSeries(students))
				format = func(p trend.Point, prev bool) string {
					if prev {
						return p.Previous.String()
					}
					return p.Current.String()
				}
			} else {
				points = trend.RevenueHistory(roster.IncomeSeries(students))
			}

			if len(points) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Not enough history: need at least two months with sessions.")
				return nil
			}
			var rows [][]string
			for _, p := range points {
				rows = append(rows, []string{p.YearMonth.Label().String(), format(p, true), format(p, false), formatTrend(p.Trend)})
			}
			title := "Revenue"
			if attendance {
				title = "Attendance"
			}
			fmt.Fprintln(cmd.OutOrStdout(), title+" history")
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Month", "Previous", "Current", "Change"}, rows))
			return nil
		}),
	}

	cmd.Flags().BoolVar(&attendance, "attendance", false, "attendance instead of revenue")
	return cmd
}
