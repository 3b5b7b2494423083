package render

import (
	"fmt"
	"io"
	"strings"

	"cablebill/internal/core"
)

// BusinessName heads printed invoices.
const BusinessName = "CAB-LINK DIGITAL"

const invoiceWidth = 56

// Invoice writes a printable plain-text invoice.
func Invoice(w io.Writer, inv core.Invoice, c core.Customer) error {
	rule := strings.Repeat("=", invoiceWidth)
	thin := strings.Repeat("-", invoiceWidth)

	var b strings.Builder
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, center(BusinessName))
	fmt.Fprintln(&b, center("Invoice"))
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Invoice #: %s\n", inv.ID)
	fmt.Fprintf(&b, "Date:      %s\n", FormatDate(inv.Date))
	fmt.Fprintf(&b, "Status:    %s\n\n", InvoiceStatus(inv.Status))
	fmt.Fprintln(&b, "Bill To:")
	fmt.Fprintf(&b, "  %s\n", c.Name)
	fmt.Fprintf(&b, "  Customer ID: %s\n", c.ID)
	fmt.Fprintf(&b, "  Phone: %s\n", c.Phone)
	fmt.Fprintf(&b, "  STB Number: %s\n", c.STBNumber)
	if c.VCNumber != "" {
		fmt.Fprintf(&b, "  VC Number: %s\n", c.VCNumber)
	}
	fmt.Fprintln(&b, thin)
	line(&b, "Cable TV Subscription - "+FormatDate(inv.Date), FormatCurrency(inv.Amount))
	fmt.Fprintln(&b, thin)
	line(&b, "Total", FormatCurrency(inv.Amount))
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, center("Thank you for your business!"))

	_, err := io.WriteString(w, b.String())
	return err
}

func line(b *strings.Builder, label, amount string) {
	pad := max(invoiceWidth-len(label)-len(amount), 1)
	fmt.Fprintf(b, "%s%s%s\n", label, strings.Repeat(" ", pad), amount)
}

func center(s string) string {
	pad := max((invoiceWidth-len(s))/2, 0)
	return strings.Repeat(" ", pad) + s
}
