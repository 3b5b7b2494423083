// Package store is the record store: the four billing collections and the id
// counters, loaded from and saved to a KV backend one collection at a time.
//
// Store is not safe for concurrent use. Mutating methods only touch memory;
// callers persist with the matching Save method.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"cablebill/internal/core"
)

type Store struct {
	kv KV

	Customers []core.Customer
	Payments  []core.Payment
	Expenses  []core.Expense
	Invoices  []core.Invoice
	IDs       *core.IDGenerator
}

// New returns an empty store backed by kv.
func New(kv KV) *Store {
	return &Store{kv: kv, IDs: core.NewIDGenerator(1, 1)}
}

// Load reads every collection from kv. Missing keys load as empty
// collections and counters start at 1.
func Load(ctx context.Context, kv KV) (*Store, error) {
	s := New(kv)
	var err error
	if s.Customers, err = loadCollection[core.Customer](ctx, kv, KeyCustomers); err != nil {
		return nil, err
	}
	if s.Payments, err = loadCollection[core.Payment](ctx, kv, KeyPayments); err != nil {
		return nil, err
	}
	if s.Expenses, err = loadCollection[core.Expense](ctx, kv, KeyExpenses); err != nil {
		return nil, err
	}
	if s.Invoices, err = loadCollection[core.Invoice](ctx, kv, KeyInvoices); err != nil {
		return nil, err
	}
	nextCustomer, err := loadCounter(ctx, kv, KeyNextCustomerID)
	if err != nil {
		return nil, err
	}
	nextInvoice, err := loadCounter(ctx, kv, KeyNextInvoiceID)
	if err != nil {
		return nil, err
	}
	s.IDs = core.NewIDGenerator(nextCustomer, nextInvoice)
	return s, nil
}

func loadCollection[T any](ctx context.Context, kv KV, key string) ([]T, error) {
	data, ok, err := kv.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok || len(data) == 0 {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func loadCounter(ctx context.Context, kv KV, key string) (int64, error) {
	data, ok, err := kv.Load(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok || len(data) == 0 {
		return 1, nil
	}
	var n *int64
	if err := json.Unmarshal(data, &n); err != nil {
		return 0, fmt.Errorf("decode %s: %w", key, err)
	}
	if n == nil {
		return 1, nil
	}
	return *n, nil
}

func (s *Store) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Save(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// SaveCustomers persists customers and the customer id counter.
func (s *Store) SaveCustomers(ctx context.Context) error {
	if err := s.save(ctx, KeyCustomers, s.Customers); err != nil {
		return err
	}
	return s.save(ctx, KeyNextCustomerID, s.IDs.NextCustomerID)
}

func (s *Store) SavePayments(ctx context.Context) error {
	return s.save(ctx, KeyPayments, s.Payments)
}

func (s *Store) SaveExpenses(ctx context.Context) error {
	return s.save(ctx, KeyExpenses, s.Expenses)
}

// SaveInvoices persists invoices and the invoice id counter.
func (s *Store) SaveInvoices(ctx context.Context) error {
	if err := s.save(ctx, KeyInvoices, s.Invoices); err != nil {
		return err
	}
	return s.save(ctx, KeyNextInvoiceID, s.IDs.NextInvoiceID)
}

// SaveAll persists every collection and counter.
func (s *Store) SaveAll(ctx context.Context) error {
	for _, save := range []func(context.Context) error{s.SaveCustomers, s.SavePayments, s.SaveExpenses, s.SaveInvoices} {
		if err := save(ctx); err != nil {
			return err
		}
	}
	return nil
}

// AddCustomer assigns the next customer id and creation time, then appends.
func (s *Store) AddCustomer(c core.Customer, now time.Time) core.Customer {
	c.ID = s.IDs.NewCustomerID()
	c.CreatedAt = now
	s.Customers = append(s.Customers, c)
	return c
}

// Customer returns a pointer into the collection for in-place edits.
func (s *Store) Customer(id string) (*core.Customer, bool) {
	i := slices.IndexFunc(s.Customers, func(c core.Customer) bool { return c.ID == id })
	if i < 0 {
		return nil, false
	}
	return &s.Customers[i], true
}

// UpdateCustomer replaces the editable fields of a customer, keeping its id
// and creation time.
func (s *Store) UpdateCustomer(id string, c core.Customer) (core.Customer, bool) {
	cur, ok := s.Customer(id)
	if !ok {
		return core.Customer{}, false
	}
	c.ID, c.CreatedAt = cur.ID, cur.CreatedAt
	*cur = c
	return c, true
}

// DeleteCustomer removes the customer only; its payments and invoices stay.
func (s *Store) DeleteCustomer(id string) bool {
	n := len(s.Customers)
	s.Customers = slices.DeleteFunc(s.Customers, func(c core.Customer) bool { return c.ID == id })
	return len(s.Customers) != n
}

// AddPayment stamps a unique PAY id and creation time, then appends.
func (s *Store) AddPayment(p core.Payment, now time.Time) core.Payment {
	p.ID = core.UniqueTimestampID(core.PaymentIDPrefix, now, func(id string) bool {
		_, taken := s.Payment(id)
		return taken
	})
	p.CreatedAt = now
	s.Payments = append(s.Payments, p)
	return p
}

func (s *Store) Payment(id string) (*core.Payment, bool) {
	i := slices.IndexFunc(s.Payments, func(p core.Payment) bool { return p.ID == id })
	if i < 0 {
		return nil, false
	}
	return &s.Payments[i], true
}

func (s *Store) UpdatePayment(id string, p core.Payment) (core.Payment, bool) {
	cur, ok := s.Payment(id)
	if !ok {
		return core.Payment{}, false
	}
	p.ID, p.CreatedAt = cur.ID, cur.CreatedAt
	*cur = p
	return p, true
}

func (s *Store) DeletePayment(id string) bool {
	n := len(s.Payments)
	s.Payments = slices.DeleteFunc(s.Payments, func(p core.Payment) bool { return p.ID == id })
	return len(s.Payments) != n
}

// AddExpense stamps a unique EXP id and creation time, then appends.
func (s *Store) AddExpense(e core.Expense, now time.Time) core.Expense {
	e.ID = core.UniqueTimestampID(core.ExpenseIDPrefix, now, func(id string) bool {
		_, taken := s.Expense(id)
		return taken
	})
	e.CreatedAt = now
	s.Expenses = append(s.Expenses, e)
	return e
}

func (s *Store) Expense(id string) (*core.Expense, bool) {
	i := slices.IndexFunc(s.Expenses, func(e core.Expense) bool { return e.ID == id })
	if i < 0 {
		return nil, false
	}
	return &s.Expenses[i], true
}

func (s *Store) UpdateExpense(id string, e core.Expense) (core.Expense, bool) {
	cur, ok := s.Expense(id)
	if !ok {
		return core.Expense{}, false
	}
	e.ID, e.CreatedAt = cur.ID, cur.CreatedAt
	*cur = e
	return e, true
}

func (s *Store) DeleteExpense(id string) bool {
	n := len(s.Expenses)
	s.Expenses = slices.DeleteFunc(s.Expenses, func(e core.Expense) bool { return e.ID == id })
	return len(s.Expenses) != n
}

// AddInvoices appends invoices that already carry ids.
func (s *Store) AddInvoices(invoices ...core.Invoice) {
	s.Invoices = append(s.Invoices, invoices...)
}

func (s *Store) Invoice(id string) (*core.Invoice, bool) {
	i := slices.IndexFunc(s.Invoices, func(inv core.Invoice) bool { return inv.ID == id })
	if i < 0 {
		return nil, false
	}
	return &s.Invoices[i], true
}

// ActiveCustomers returns the customers currently billed.
func (s *Store) ActiveCustomers() []core.Customer {
	var out []core.Customer
	for _, c := range s.Customers {
		if c.IsActive() {
			out = append(out, c)
		}
	}
	return out
}
