package domain

import (
	"strconv"
	"time"
)

// FormatDuration renders a month count: "N months" below a year, otherwise "Y years M months".
// Negative input is treated as zero.
func FormatDuration(months int) string {
	if months < 0 {
		months = 0
	}
	if months < 12 {
		return itoa(months) + " months"
	}
	return itoa(months/12) + " years " + itoa(months%12) + " months"
}

const monthLayout = "2006-01"

// ValidMonth reports whether s is a YYYY-MM month.
func ValidMonth(s string) bool {
	_, err := time.Parse(monthLayout, s)
	return err == nil
}

func itoa(n int) string { return strconv.Itoa(n) }
