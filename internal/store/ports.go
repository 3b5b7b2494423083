package store

import "context"

// Keys under which each collection and counter is persisted.
const (
	KeyCustomers      = "customers"
	KeyPayments       = "payments"
	KeyExpenses       = "expenses"
	KeyInvoices       = "invoices"
	KeyNextCustomerID = "nextCustomerId"
	KeyNextInvoiceID  = "nextInvoiceId"
)

// Keys lists every persisted key.
var Keys = []string{KeyCustomers, KeyPayments, KeyExpenses, KeyInvoices, KeyNextCustomerID, KeyNextInvoiceID}

// Ports for persistence adapters.
type (
	// KV loads and saves JSON documents by key.
	KV interface {
		// Load returns ok=false when the key has never been saved.
		Load(ctx context.Context, key string) (data []byte, ok bool, err error)
		Save(ctx context.Context, key string, data []byte) error
	}
)
