package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tutorledger/tutorledger/internal/model"
	"github.com/tutorledger/tutorledger/internal/report"
	"github.com/tutorledger/tutorledger/internal/store"
)

func newStudentCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "student",
		Short: "Manage the student roster",
	}
	cmd.AddCommand(
		newStudentAddCommand(flags),
		newStudentListCommand(flags),
		newStudentShowCommand(flags),
	)
	return cmd
}

func newStudentAddCommand(flags *globalFlags) *cobra.Command {
	var (
		first, last, other string
		subject            string
		slots              []string
		payment            string
		amount             string
		start              string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Enroll a student",
		Example: `  tutorledger student add --first-name Mary --last-name Jane \
    --subject "Additional Mathematics" --slot "Tue 5:30 PM" --slot "Thu 5:30 PM" \
    --payment per_session --amount 150`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(flags)
			if err != nil {
				return err
			}

			params := store.AddStudentParams{
				Name:        model.PersonalName{First: first, Last: last, Other: other},
				Subject:     model.Subject(subject),
				PaymentKind: model.PaymentKind(payment),
			}
			for _, s := range slots {
				slot, err := parseSlot(s)
				if err != nil {
					return fmt.Errorf("--slot %q: %w", s, err)
				}
				params.Schedule = append(params.Schedule, slot)
			}
			if params.Amount, err = decimal.NewFromString(amount); err != nil {
				return fmt.Errorf("--amount %q: %w", amount, err)
			}
			if start != "" {
				if params.TuitionStart, err = time.Parse("2006-01-02", start); err != nil {
					return fmt.Errorf("--start %q: %w", start, err)
				}
			}

			id, err := ws.store.AddStudent(params)
			if err != nil {
				return err
			}
			ws.commit("student: add "+params.Name.Full(), ws.cfg.Files.Roster)

			fmt.Fprintf(cmd.OutOrStdout(), "Added student %s: %s\n", id, params.Name.Full())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&first, "first-name", "", "first name (required)")
	f.StringVar(&last, "last-name", "", "last name (required)")
	f.StringVar(&other, "other-names", "", "middle or other names")
	f.StringVar(&subject, "subject", string(model.SubjectAdditionalMathematics), "subject taught")
	f.StringArrayVar(&slots, "slot", nil, `weekly slot such as "Tue 5:30 PM" (repeatable)`)
	f.StringVar(&payment, "payment", string(model.PaymentPerSession), "payment kind: per_session or monthly")
	f.StringVar(&amount, "amount", "0", "amount per session or per month")
	f.StringVar(&start, "start", "", "tuition start date YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("last-name")

	return cmd
}

func newStudentListCommand(flags *globalFlags) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List students with their next session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			students := report.Search(snap.Roster.Students(), search)
			if len(students) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No students.")
				return nil
			}

			var rows [][]string
			for _, c := range report.Cards(students, ref) {
				next := "-"
				if c.HasNext {
					next = c.Next.Format("Mon 02 Jan")
				}
				rows = append(rows, []string{c.ID, c.Name, string(c.Subject), formatSchedule(c.Schedule), next})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Name", "Subject", "Schedule", "Next"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by name or subject")
	return cmd
}

func newStudentShowCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <student-id>",
		Short: "Show one student's month at a glance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			s, ok := snap.Roster.Get(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", store.ErrStudentNotFound, args[0])
			}
			c := report.Card(s, ref)

			var b strings.Builder
			fmt.Fprintf(&b, "%s (%s)\n", c.Name, c.ID)
			fmt.Fprintf(&b, "Subject:   %s\n", c.Subject)
			fmt.Fprintf(&b, "Schedule:  %s\n", formatSchedule(c.Schedule))
			fmt.Fprintf(&b, "Payment:   %s %s\n", money(ws.cfg.Currency, s.Payment.Amount), s.Payment.Kind)
			if c.HasNext {
				fmt.Fprintf(&b, "Next:      %s\n", c.Next.Format("Monday 02 January 2006"))
			} else {
				fmt.Fprintf(&b, "Next:      none in the coming week\n")
			}
			fmt.Fprintf(&b, "%s: %d sessions, %s\n", model.YearMonthOf(ref).Label(), c.Completed, money(ws.cfg.Currency, c.Accrued))
			fmt.Fprint(cmd.OutOrStdout(), b.String())
			return nil
		},
	}
}
