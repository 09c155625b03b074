package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorledger/tutorledger/internal/calendar"
)

func TestPersonalNameFull(t *testing.T) {
	tests := []struct {
		name PersonalName
		want string
	}{
		{PersonalName{First: "Mary", Last: "Jane"}, "Mary Jane"},
		{PersonalName{First: "Peter", Other: "Benjamin", Last: "Parker"}, "Peter Benjamin Parker"},
		{PersonalName{First: " Ama ", Other: "  ", Last: "Mensah"}, "Ama Mensah"},
		{PersonalName{}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.name.Full(), "%+v", tt.name)
	}
}

func TestPaymentKindValid(t *testing.T) {
	assert.True(t, PaymentPerSession.Valid())
	assert.True(t, PaymentMonthly.Valid())
	assert.False(t, PaymentKind("weekly").Valid())
	assert.False(t, PaymentKind("").Valid())
}

func TestStudentWeekdays(t *testing.T) {
	s := Student{Schedule: []WeeklySlot{
		{Day: time.Wednesday, Time: "4:00 PM"},
		{Day: time.Saturday, Time: "1:30 PM"},
	}}
	assert.Equal(t, []time.Weekday{time.Wednesday, time.Saturday}, s.Weekdays())
	assert.Empty(t, Student{}.Weekdays())
}

func TestParseYearMonth(t *testing.T) {
	ym, err := ParseYearMonth("2025-11")
	require.NoError(t, err)
	assert.Equal(t, YearMonth{Year: 2025, Month: time.November}, ym)
	assert.Equal(t, "2025-11", ym.String())

	_, err = ParseYearMonth("2025-13")
	var dateErr *calendar.InvalidDateError
	assert.ErrorAs(t, err, &dateErr)

	for _, bad := range []string{"2025", "nov-2025", "2025-xx", ""} {
		_, err := ParseYearMonth(bad)
		assert.Error(t, err, bad)
	}
}

func TestYearMonthOrderingAndPrev(t *testing.T) {
	nov := YearMonth{Year: 2025, Month: time.November}
	dec := YearMonth{Year: 2025, Month: time.December}
	jan := YearMonth{Year: 2026, Month: time.January}

	assert.True(t, nov.Before(dec))
	assert.True(t, dec.Before(jan))
	assert.False(t, jan.Before(nov))
	assert.False(t, nov.Before(nov))

	assert.Equal(t, dec, jan.Prev())
	assert.Equal(t, nov, dec.Prev())
}

func TestYearMonthLabel(t *testing.T) {
	ym := YearMonthOf(time.Date(2025, 11, 22, 13, 30, 0, 0, time.UTC))
	assert.Equal(t, MonthLabel{Month: "Nov", Year: 2025}, ym.Label())
	assert.Equal(t, "Nov 2025", ym.Label().String())
	assert.True(t, ym.Valid())
	assert.False(t, YearMonth{Year: 2025}.Valid())
}

func TestNumberTrendStrings(t *testing.T) {
	assert.Equal(t, "up", Up.String())
	assert.Equal(t, "down", Down.String())
	assert.Equal(t, "zero baseline", ZeroBaseline.String())
	assert.Equal(t, "no observations", EmptySeries.String())
	assert.Equal(t, "missing observation", MissingObservation.String())
}
