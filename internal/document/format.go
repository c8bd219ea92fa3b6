package document

import (
	"fmt"
	"strings"
	"time"
)

// fr-FR number and date formatting, matching what the invoice document has
// always used: comma decimals, non-breaking thousand separators, trailing
// euro sign.

var frMonthsShort = []string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}

var frMonthsLong = []string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

func formatNumberFR(value float64) string {
	s := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(s, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	negative := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := strings.Join(groups, " ") + "," + fracPart
	if negative {
		out = "-" + out
	}
	return out
}

func formatEuro(value float64) string {
	return formatNumberFR(value) + " €"
}

// formatEuroOrDash renders a zero amount as a dash instead of "0,00 €".
// Historical display behavior of the invoice table, kept deliberately.
func formatEuroOrDash(value float64) string {
	if value == 0 {
		return "-"
	}
	return formatEuro(value)
}

func formatHours(value float64) string {
	return formatNumberFR(value)
}

func formatDateShortFR(t time.Time) string {
	return fmt.Sprintf("%02d %s %d", t.Day(), frMonthsShort[t.Month()-1], t.Year())
}

func formatDateLongFR(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), frMonthsLong[t.Month()-1], t.Year())
}

func formatDateTimeFR(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}
