package billing

import (
	"time"

	"cablebill/internal/core"
)

// GenerateMonthlyInvoices creates a pending invoice dated today for every
// active customer that has no pending invoice in today's month. A paid
// invoice for the month does not count, so a settled customer is billed again.
// The returned invoices are new; existing is not modified.
func GenerateMonthlyInvoices(customers []core.Customer, existing []core.Invoice, today core.Date, createdAt time.Time, ids *core.IDGenerator) []core.Invoice {
	month := today.MonthKey()
	var created []core.Invoice
	for _, c := range customers {
		if !c.IsActive() {
			continue
		}
		if HasPendingInvoice(existing, c.ID, month) || HasPendingInvoice(created, c.ID, month) {
			continue
		}
		created = append(created, newInvoice(ids, c.ID, c.Amount, today, createdAt))
	}
	return created
}

// HasPendingInvoice reports whether the customer has a pending invoice dated in month.
func HasPendingInvoice(invoices []core.Invoice, customerID, month string) bool {
	for _, inv := range invoices {
		if inv.CustomerID == customerID && inv.IsPending() && inv.Date.InMonth(month) {
			return true
		}
	}
	return false
}

// GenerateSingleInvoice always creates a pending invoice. A nil amount bills
// the customer's monthly amount, which is zero for an unknown customer.
func GenerateSingleInvoice(customerID string, amount *core.Money, customers []core.Customer, today core.Date, createdAt time.Time, ids *core.IDGenerator) core.Invoice {
	var billed core.Money
	switch {
	case amount != nil:
		billed = *amount
	default:
		if c, ok := FindCustomer(customers, customerID); ok {
			billed = c.Amount
		}
	}
	return newInvoice(ids, customerID, billed, today, createdAt)
}

// MarkPaid settles a pending invoice. It reports whether the status changed;
// an already paid invoice is left alone.
func MarkPaid(inv *core.Invoice) bool {
	if inv == nil || inv.Status == core.InvoicePaid {
		return false
	}
	inv.Status = core.InvoicePaid
	return true
}

// RenewalDate is one calendar month after today. The previous renew date is
// ignored.
func RenewalDate(today core.Date) core.Date {
	return today.AddMonths(1)
}

// RenewCustomer moves the customer's renew date to RenewalDate(today).
func RenewCustomer(c *core.Customer, today core.Date) {
	if c == nil {
		return
	}
	c.RenewDate = RenewalDate(today)
}

func newInvoice(ids *core.IDGenerator, customerID string, amount core.Money, today core.Date, createdAt time.Time) core.Invoice {
	return core.Invoice{
		ID:         ids.NewInvoiceID(),
		CustomerID: customerID,
		Amount:     amount,
		Date:       today,
		Status:     core.InvoicePending,
		CreatedAt:  createdAt,
	}
}
