package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/tutorledger/tutorledger/internal/calendar"
	"github.com/tutorledger/tutorledger/internal/model"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

func money(currency string, d decimal.Decimal) string {
	return currency + " " + d.StringFixed(2)
}

func formatTrend(t model.NumberTrend) string {
	switch v := t.(type) {
	case model.Trend:
		return fmt.Sprintf("%s %s%%", v.Direction, v.PercentageChange.StringFixed(2))
	case model.NoData:
		return "n/a (" + v.Reason.String() + ")"
	default:
		return "n/a"
	}
}

func formatSchedule(slots []model.WeeklySlot) string {
	parts := make([]string, len(slots))
	for i, s := range slots {
		parts[i] = strings.TrimSpace(calendar.ShortWeekday(s.Day) + " " + s.Time)
	}
	return strings.Join(parts, ", ")
}

// parseSlot reads "Tue 5:30 PM" or "Tue".
func parseSlot(s string) (model.WeeklySlot, error) {
	day, rest, _ := strings.Cut(strings.TrimSpace(s), " ")
	wd, err := calendar.ParseWeekday(day)
	if err != nil {
		return model.WeeklySlot{}, err
	}
	return model.WeeklySlot{Day: wd, Time: strings.TrimSpace(rest)}, nil
}
