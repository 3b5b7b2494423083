// Package billing holds the pure billing computations: customer balances,
// dashboard rollups and invoice generation. Functions here read the record
// collections they are handed and never persist anything.
package billing

import "cablebill/internal/core"

// Balance is what a customer has paid and still owes.
type Balance struct {
	Paid            core.Money
	Balance         core.Money
	TotalDue        core.Money
	PendingInvoices core.Money
}

// CustomerBalance computes the balance of the customer with the given id.
// An unknown id yields a zero Balance.
func CustomerBalance(customerID string, customers []core.Customer, payments []core.Payment, invoices []core.Invoice) Balance {
	b, _ := LookupBalance(customerID, customers, payments, invoices)
	return b
}

// LookupBalance is CustomerBalance with an explicit found flag.
func LookupBalance(customerID string, customers []core.Customer, payments []core.Payment, invoices []core.Invoice) (Balance, bool) {
	c, ok := FindCustomer(customers, customerID)
	if !ok {
		return Balance{}, false
	}
	return ComputeBalance(c, payments, invoices), true
}

// ComputeBalance applies the balance rules for one customer.
//
// With pending invoices, payments not already absorbed by paid invoices are
// set against the pending total. Without them, the balance is the monthly
// amount less everything ever paid; paid invoices are not considered in that
// case.
func ComputeBalance(c core.Customer, payments []core.Payment, invoices []core.Invoice) Balance {
	totalPaid := PaidBy(payments, c.ID)

	var pending, settled core.Money
	for _, inv := range invoices {
		if inv.CustomerID != c.ID {
			continue
		}
		switch inv.Status {
		case core.InvoicePending:
			pending = pending.Add(inv.Amount)
		case core.InvoicePaid:
			settled = settled.Add(inv.Amount)
		}
	}

	available := totalPaid.Sub(settled)

	if pending.IsPositive() {
		return Balance{
			Paid:            totalPaid,
			Balance:         pending.Sub(available).NonNegative(),
			TotalDue:        pending,
			PendingInvoices: pending,
		}
	}
	return Balance{
		Paid:            totalPaid,
		Balance:         c.Amount.Sub(totalPaid).NonNegative(),
		TotalDue:        c.Amount,
		PendingInvoices: pending,
	}
}

// PaidBy sums every payment made by the customer.
func PaidBy(payments []core.Payment, customerID string) core.Money {
	var total core.Money
	for _, p := range payments {
		if p.CustomerID == customerID {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// FindCustomer returns the customer with the given id.
func FindCustomer(customers []core.Customer, id string) (core.Customer, bool) {
	for _, c := range customers {
		if c.ID == id {
			return c, true
		}
	}
	return core.Customer{}, false
}

// CustomerName returns the customer's name, or "Unknown" for orphaned references.
func CustomerName(customers []core.Customer, id string) string {
	if c, ok := FindCustomer(customers, id); ok {
		return c.Name
	}
	return "Unknown"
}
