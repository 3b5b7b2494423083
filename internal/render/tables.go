package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"cablebill/internal/billing"
	"cablebill/internal/core"
	"cablebill/internal/storage"
)

func newTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cols ...string) {
	fmt.Fprintln(tw, strings.Join(cols, "\t"))
}

// Customers lists customers in insertion order with their balance columns.
func Customers(w io.Writer, customers []core.Customer, payments []core.Payment, invoices []core.Invoice, today core.Date) error {
	if len(customers) == 0 {
		_, err := fmt.Fprintln(w, "No customers found.")
		return err
	}
	tw := newTable(w, "ID", "NAME", "PHONE", "VC", "STB", "AMOUNT", "PAID", "BALANCE", "RENEW", "STATUS")
	for _, c := range customers {
		b := billing.ComputeBalance(c, payments, invoices)
		row(tw, c.ID, c.Name, c.Phone, orDash(c.VCNumber), c.STBNumber,
			FormatCurrency(c.Amount), FormatCurrency(b.Paid), FormatCurrency(b.Balance),
			FormatDate(c.RenewDate), CustomerStatus(c, today))
	}
	return tw.Flush()
}

// Expired lists customers due for renewal, oldest renew date first.
func Expired(w io.Writer, expired []core.Customer) error {
	if len(expired) == 0 {
		_, err := fmt.Fprintln(w, "No expired customers!")
		return err
	}
	tw := newTable(w, "ID", "NAME", "PHONE", "VC", "STB", "AMOUNT", "RENEW")
	for _, c := range expired {
		row(tw, c.ID, c.Name, c.Phone, orDash(c.VCNumber), c.STBNumber, FormatCurrency(c.Amount), FormatDate(c.RenewDate))
	}
	return tw.Flush()
}

// Payments lists payments newest first.
func Payments(w io.Writer, payments []core.Payment, customers []core.Customer) error {
	if len(payments) == 0 {
		_, err := fmt.Fprintln(w, "No payments found.")
		return err
	}
	tw := newTable(w, "ID", "DATE", "CUSTOMER", "AMOUNT", "METHOD", "TXN", "TYPE")
	for i := len(payments) - 1; i >= 0; i-- {
		p := payments[i]
		row(tw, p.ID, FormatDate(p.Date), billing.CustomerName(customers, p.CustomerID),
			FormatCurrency(p.Amount), p.Method.Label(), orDash(p.TransactionID), OnlineLabel(p.Method))
	}
	return tw.Flush()
}

// Expenses lists expenses newest first.
func Expenses(w io.Writer, expenses []core.Expense) error {
	if len(expenses) == 0 {
		_, err := fmt.Fprintln(w, "No expenses found.")
		return err
	}
	tw := newTable(w, "ID", "DATE", "CATEGORY", "DESCRIPTION", "AMOUNT")
	for i := len(expenses) - 1; i >= 0; i-- {
		e := expenses[i]
		row(tw, e.ID, FormatDate(e.Date), e.Category.Label(), e.Description, FormatCurrency(e.Amount))
	}
	return tw.Flush()
}

// Invoices lists invoices newest first.
func Invoices(w io.Writer, invoices []core.Invoice, customers []core.Customer) error {
	if len(invoices) == 0 {
		_, err := fmt.Fprintln(w, "No invoices found.")
		return err
	}
	tw := newTable(w, "ID", "CUSTOMER", "STB", "DATE", "AMOUNT", "STATUS")
	for i := len(invoices) - 1; i >= 0; i-- {
		inv := invoices[i]
		stb := "-"
		if c, ok := billing.FindCustomer(customers, inv.CustomerID); ok {
			stb = c.STBNumber
		}
		row(tw, inv.ID, billing.CustomerName(customers, inv.CustomerID), stb,
			FormatDate(inv.Date), FormatCurrency(inv.Amount), InvoiceStatus(inv.Status))
	}
	return tw.Flush()
}

// Online prints the UPI collection split.
func Online(w io.Writer, s core.OnlineSplit) error {
	tw := newTable(w, "GPAY", "PHONEPE", "TOTAL ONLINE")
	row(tw, FormatCurrency(s.GPay), FormatCurrency(s.PhonePe), FormatCurrency(s.Total))
	return tw.Flush()
}

// Report prints income, expenses, net profit and the per-category split.
func Report(w io.Writer, r core.ProfitReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row(tw, "Total income", FormatCurrency(r.Income))
	row(tw, "Total expenses", FormatCurrency(r.Expenses))
	row(tw, "Net profit", FormatCurrency(r.Net))
	for _, c := range r.ByCategory {
		row(tw, "  "+c.Category.Label(), FormatCurrency(c.Amount))
	}
	return tw.Flush()
}

// Dashboard prints every dashboard card with its progress fill.
func Dashboard(w io.Writer, d billing.Dashboard) error {
	p := d.Progress()
	fmt.Fprintf(w, "Dashboard for %s (month %s)\n\n", FormatDate(d.Today), d.Month)

	tw := newTable(w, "CARD", "VALUE", "PROGRESS")
	row(tw, "Today's collection", FormatCurrency(d.TodayCollection), Percent(p.TodayCollection))
	row(tw, "Monthly collection", FormatCurrency(d.MonthlyCollection), Percent(p.MonthlyCollection))
	row(tw, "Monthly dues", FormatCurrency(d.MonthlyDues), Percent(p.MonthlyDues))
	row(tw, "Total outstanding", FormatCurrency(d.TotalOutstanding), Percent(p.TotalOutstanding))
	row(tw, "Expired customers", fmt.Sprint(d.ExpiredCount), Percent(p.Expired))
	row(tw, "Online collection", FormatCurrency(d.Online.Total), Percent(p.OnlineCollection))
	row(tw, "Active customers", fmt.Sprint(d.Customers.Active), "")
	row(tw, "Inactive customers", fmt.Sprint(d.Customers.Inactive), "")
	row(tw, "Net profit", FormatCurrency(d.Profit.Net), "")
	return tw.Flush()
}

// Balance prints one customer's balance breakdown.
func Balance(w io.Writer, c core.Customer, b billing.Balance) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row(tw, "Customer", c.ID+" "+c.Name)
	row(tw, "Monthly amount", FormatCurrency(c.Amount))
	row(tw, "Paid", FormatCurrency(b.Paid))
	row(tw, "Pending invoices", FormatCurrency(b.PendingInvoices))
	row(tw, "Total due", FormatCurrency(b.TotalDue))
	row(tw, "Balance", FormatCurrency(b.Balance))
	return tw.Flush()
}

// Imports lists import log entries as returned by the backend.
func Imports(w io.Writer, entries []storage.ImportLog) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No imports recorded.")
		return err
	}
	tw := newTable(w, "#", "WHEN", "SOURCE", "CUSTOMERS", "PAYMENTS", "EXPENSES", "INVOICES", "RUN")
	for _, e := range entries {
		row(tw, fmt.Sprint(e.ID), e.ImportedAt.Local().Format("02/01/2006 15:04"), e.Source,
			fmt.Sprint(e.Customers), fmt.Sprint(e.Payments), fmt.Sprint(e.Expenses), fmt.Sprint(e.Invoices), e.RunID)
	}
	return tw.Flush()
}
