package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"cablebill/internal/billing"
	"cablebill/internal/core"
	"cablebill/internal/storage"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   core.Money
		want string
	}{
		{core.FromRupees(500), "Rs. 500.00"},
		{core.Money{Cents: 49950}, "Rs. 499.50"},
		{core.Money{}, "Rs. 0.00"},
		{core.Money{Cents: -15000}, "Rs. -150.00"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.in); got != tt.want {
			t.Errorf("FormatCurrency(%d) = %q, want %q", tt.in.Cents, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(core.NewDate(2024, 3, 5)); got != "05/03/2024" {
		t.Errorf("FormatDate() = %q, want 05/03/2024", got)
	}
	if got := FormatDate(core.Date{}); got != "-" {
		t.Errorf("FormatDate(zero) = %q, want -", got)
	}
}

func TestLabels(t *testing.T) {
	today := core.NewDate(2024, 3, 10)
	tests := []struct {
		name, got, want string
	}{
		{"gpay online", OnlineLabel(core.MethodGPay), "Online"},
		{"cash offline", OnlineLabel(core.MethodCash), "Offline"},
		{"bank offline", OnlineLabel(core.MethodBank), "Offline"},
		{"expired", CustomerStatus(core.Customer{Status: core.StatusActive, RenewDate: today}, today), "Expired"},
		{"active", CustomerStatus(core.Customer{Status: core.StatusActive, RenewDate: core.NewDate(2024, 4, 1)}, today), "Active"},
		{"inactive past renewal", CustomerStatus(core.Customer{Status: core.StatusInactive, RenewDate: core.NewDate(2024, 1, 1)}, today), "Inactive"},
		{"invoice", InvoiceStatus(core.InvoicePending), "Pending"},
		{"percent", Percent(6), "6.0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func fixtures() ([]core.Customer, []core.Payment, []core.Invoice) {
	customers := []core.Customer{
		{ID: "CUST000001", Name: "Ravi", Phone: "98", STBNumber: "S1", Amount: core.FromRupees(300), RenewDate: core.NewDate(2024, 3, 1), Status: core.StatusActive},
		{ID: "CUST000002", Name: "Meena", Phone: "97", VCNumber: "VC9", STBNumber: "S2", Amount: core.FromRupees(450), RenewDate: core.NewDate(2024, 4, 1), Status: core.StatusActive},
	}
	payments := []core.Payment{
		{ID: "PAY1", CustomerID: "CUST000001", Amount: core.FromRupees(100), Method: core.MethodCash, Date: core.NewDate(2024, 3, 1)},
		{ID: "PAY2", CustomerID: "CUST000404", Amount: core.FromRupees(50), Method: core.MethodGPay, Date: core.NewDate(2024, 3, 2), TransactionID: "T9"},
	}
	invoices := []core.Invoice{
		{ID: "INV000001", CustomerID: "CUST000002", Amount: core.FromRupees(450), Date: core.NewDate(2024, 3, 1), Status: core.InvoicePending},
		{ID: "INV000002", CustomerID: "CUST000404", Amount: core.Money{}, Date: core.NewDate(2024, 3, 2), Status: core.InvoicePaid},
	}
	return customers, payments, invoices
}

func TestCustomersTable(t *testing.T) {
	customers, payments, invoices := fixtures()
	var buf bytes.Buffer
	if err := Customers(&buf, customers, payments, invoices, core.NewDate(2024, 3, 10)); err != nil {
		t.Fatalf("Customers() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "Rs. 200.00") || !strings.Contains(lines[1], "Expired") {
		t.Errorf("Ravi row = %q", lines[1])
	}
	if !strings.Contains(lines[2], "VC9") || !strings.Contains(lines[2], "Active") {
		t.Errorf("Meena row = %q", lines[2])
	}

	buf.Reset()
	Customers(&buf, nil, nil, nil, core.NewDate(2024, 3, 10))
	if buf.String() != "No customers found.\n" {
		t.Errorf("empty output = %q", buf.String())
	}
}

func TestPaymentsTableNewestFirst(t *testing.T) {
	customers, payments, _ := fixtures()
	var buf bytes.Buffer
	if err := Payments(&buf, payments, customers); err != nil {
		t.Fatalf("Payments() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if !strings.HasPrefix(lines[1], "PAY2") || !strings.Contains(lines[1], "Unknown") || !strings.Contains(lines[1], "Online") {
		t.Errorf("first row = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "PAY1") || !strings.Contains(lines[2], "Offline") {
		t.Errorf("second row = %q", lines[2])
	}
}

func TestInvoicesTable(t *testing.T) {
	customers, _, invoices := fixtures()
	var buf bytes.Buffer
	if err := Invoices(&buf, invoices, customers); err != nil {
		t.Fatalf("Invoices() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if !strings.HasPrefix(lines[1], "INV000002") || !strings.Contains(lines[1], "Unknown") || !strings.Contains(lines[1], "Paid") {
		t.Errorf("first row = %q", lines[1])
	}
	if !strings.Contains(lines[2], "S2") || !strings.Contains(lines[2], "Pending") {
		t.Errorf("second row = %q", lines[2])
	}
}

func TestDashboardAndReport(t *testing.T) {
	customers, payments, _ := fixtures()
	expenses := []core.Expense{{ID: "EXP1", Category: core.CategoryRent, Description: "shop", Amount: core.FromRupees(200), Date: core.NewDate(2024, 3, 1)}}
	d := billing.BuildDashboard(customers, payments, expenses, core.NewDate(2024, 3, 1))

	var buf bytes.Buffer
	if err := Dashboard(&buf, d); err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Dashboard for 01/03/2024 (month 2024-03)", "Today's collection", "Rs. 100.00", "1.0%", "Net profit"} {
		if !strings.Contains(out, want) {
			t.Errorf("dashboard missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := Report(&buf, d.Profit); err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	out = buf.String()
	if !strings.Contains(out, "Rs. -50.00") || !strings.Contains(out, "Rent") {
		t.Errorf("report:\n%s", out)
	}
}

func TestInvoiceView(t *testing.T) {
	customers, _, invoices := fixtures()
	var buf bytes.Buffer
	if err := Invoice(&buf, invoices[0], customers[1]); err != nil {
		t.Fatalf("Invoice() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{BusinessName, "Invoice #: INV000001", "Status:    Pending", "VC Number: VC9", "Cable TV Subscription - 01/03/2024", "Rs. 450.00", "Thank you for your business!"} {
		if !strings.Contains(out, want) {
			t.Errorf("invoice missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	Invoice(&buf, invoices[0], customers[0])
	if strings.Contains(buf.String(), "VC Number") {
		t.Error("VC line should be omitted when empty")
	}
}

func TestBalanceAndOnline(t *testing.T) {
	customers, payments, invoices := fixtures()
	var buf bytes.Buffer
	b := billing.ComputeBalance(customers[1], payments, invoices)
	if err := Balance(&buf, customers[1], b); err != nil {
		t.Fatalf("Balance() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Rs. 450.00") {
		t.Errorf("balance:\n%s", buf.String())
	}

	buf.Reset()
	Online(&buf, billing.OnlineCollection(payments))
	if !strings.Contains(buf.String(), "Rs. 50.00") {
		t.Errorf("online:\n%s", buf.String())
	}
}

func TestImports(t *testing.T) {
	var buf bytes.Buffer
	Imports(&buf, nil)
	if buf.String() != "No imports recorded.\n" {
		t.Errorf("empty output = %q", buf.String())
	}

	buf.Reset()
	entries := []storage.ImportLog{{ID: 3, RunID: "run-3", Source: "dump.json", Customers: 12, Payments: 40, ImportedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}}
	if err := Imports(&buf, entries); err != nil {
		t.Fatalf("Imports() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.Contains(lines[1], "dump.json") || !strings.Contains(lines[1], "run-3") {
		t.Errorf("imports:\n%s", buf.String())
	}
}
