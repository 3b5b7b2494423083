package core

import (
	"testing"
	"time"
)

func TestIDGeneratorSequences(t *testing.T) {
	g := NewIDGenerator(0, 0)

	want := []string{"CUST000001", "CUST000002", "CUST000003"}
	for _, w := range want {
		if got := g.NewCustomerID(); got != w {
			t.Fatalf("NewCustomerID() = %q, want %q", got, w)
		}
	}
	if got := g.NewInvoiceID(); got != "INV000001" {
		t.Fatalf("NewInvoiceID() = %q", got)
	}
	if g.NextCustomerID != 4 || g.NextInvoiceID != 2 {
		t.Fatalf("counters not advanced: %+v", g)
	}
}

func TestIDGeneratorResumesFromCounter(t *testing.T) {
	g := NewIDGenerator(42, 999999)
	if got := g.NewCustomerID(); got != "CUST000042" {
		t.Fatalf("got %q", got)
	}
	if got := g.NewInvoiceID(); got != "INV999999" {
		t.Fatalf("got %q", got)
	}
	// past six digits the id simply grows
	if got := g.NewInvoiceID(); got != "INV1000000" {
		t.Fatalf("got %q", got)
	}
}

func TestIDGeneratorMonotonic(t *testing.T) {
	g := NewIDGenerator(1, 1)
	prev := ""
	for i := 0; i < 50; i++ {
		id := g.NewInvoiceID()
		if id <= prev {
			t.Fatalf("id %q not greater than %q", id, prev)
		}
		prev = id
	}
}

func TestTimestampIDs(t *testing.T) {
	at := time.UnixMilli(1704448800123)
	if got := PaymentID(at); got != "PAY1704448800123" {
		t.Fatalf("PaymentID = %q", got)
	}
	if got := ExpenseID(at); got != "EXP1704448800123" {
		t.Fatalf("ExpenseID = %q", got)
	}

	taken := map[string]bool{"PAY1704448800123": true, "PAY1704448800124": true}
	got := UniqueTimestampID(PaymentIDPrefix, at, func(id string) bool { return taken[id] })
	if got != "PAY1704448800125" {
		t.Fatalf("UniqueTimestampID = %q", got)
	}
}
