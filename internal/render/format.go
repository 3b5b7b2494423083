// Package render turns records and computed views into text for the terminal.
package render

import (
	"fmt"

	"cablebill/internal/core"
)

const dateLayout = "02/01/2006"

// FormatCurrency renders an amount as "Rs. 1234.50".
func FormatCurrency(m core.Money) string {
	return "Rs. " + m.String()
}

// FormatDate renders a date as DD/MM/YYYY, or "-" when unset.
func FormatDate(d core.Date) string {
	if d.IsZero() {
		return "-"
	}
	return d.Format(dateLayout)
}

// OnlineLabel is "Online" for UPI methods, "Offline" otherwise.
func OnlineLabel(m core.PaymentMethod) string {
	if m.IsOnline() {
		return "Online"
	}
	return "Offline"
}

// CustomerStatus shows "Expired" for an active customer past renewal.
func CustomerStatus(c core.Customer, today core.Date) string {
	if c.IsExpired(today) {
		return "Expired"
	}
	return titleCase(string(c.Status))
}

func InvoiceStatus(s core.InvoiceStatus) string {
	return titleCase(string(s))
}

// Percent formats a progress value with one decimal.
func Percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
