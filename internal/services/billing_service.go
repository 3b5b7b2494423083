// Package services orchestrates store mutations: validate input, change the
// in-memory collections, persist the touched collection, log the event.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cablebill/internal/billing"
	"cablebill/internal/core"
	applog "cablebill/internal/log"
	"cablebill/internal/store"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrInvoiceNotFound  = errors.New("invoice not found")
)

// BillingService is the single entry point front ends use to change data.
// Reads go straight to the billing engines over Store().
type BillingService struct {
	store  *store.Store
	now    func() time.Time
	loc    *time.Location
	events *applog.EventLogger
}

type Option func(*BillingService)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *BillingService) { s.now = now }
}

// WithLocation sets the calendar used for "today" and month keys.
func WithLocation(loc *time.Location) Option {
	return func(s *BillingService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithLogger(logger *applog.Logger) Option {
	return func(s *BillingService) {
		if logger != nil {
			s.events = applog.NewEventLogger(logger)
		}
	}
}

func NewBillingService(st *store.Store, opts ...Option) *BillingService {
	s := &BillingService{
		store:  st,
		now:    time.Now,
		loc:    time.Local,
		events: applog.NewEventLogger(applog.Discard()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *BillingService) Store() *store.Store { return s.store }

// Now is the service clock in the configured location.
func (s *BillingService) Now() time.Time { return s.now().In(s.loc) }

// Today is the local calendar date.
func (s *BillingService) Today() core.Date { return core.DateOf(s.Now()) }

// AddCustomer validates c, assigns the next CUST id and persists customers.
func (s *BillingService) AddCustomer(ctx context.Context, c core.Customer) (core.Customer, error) {
	if err := c.Validate(); err != nil {
		return core.Customer{}, fmt.Errorf("validate customer: %w", err)
	}
	created := s.store.AddCustomer(c, s.Now())
	if err := s.store.SaveCustomers(ctx); err != nil {
		return core.Customer{}, s.fail(ctx, "Failed to save customers", err, applog.OpCreate)
	}
	return created, nil
}

func (s *BillingService) UpdateCustomer(ctx context.Context, id string, c core.Customer) (core.Customer, error) {
	if err := c.Validate(); err != nil {
		return core.Customer{}, fmt.Errorf("validate customer: %w", err)
	}
	updated, ok := s.store.UpdateCustomer(id, c)
	if !ok {
		return core.Customer{}, fmt.Errorf("%w: %s", ErrCustomerNotFound, id)
	}
	if err := s.store.SaveCustomers(ctx); err != nil {
		return core.Customer{}, s.fail(ctx, "Failed to save customers", err, applog.OpUpdate)
	}
	return updated, nil
}

// DeleteCustomer removes the customer record only. Its payments and invoices
// are kept and render against an unknown customer.
func (s *BillingService) DeleteCustomer(ctx context.Context, id string) error {
	if !s.store.DeleteCustomer(id) {
		return fmt.Errorf("%w: %s", ErrCustomerNotFound, id)
	}
	if err := s.store.SaveCustomers(ctx); err != nil {
		return s.fail(ctx, "Failed to save customers", err, applog.OpDelete)
	}
	return nil
}

// RenewCustomer sets the renew date to one month from today.
func (s *BillingService) RenewCustomer(ctx context.Context, id string) (core.Customer, error) {
	c, ok := s.store.Customer(id)
	if !ok {
		return core.Customer{}, fmt.Errorf("%w: %s", ErrCustomerNotFound, id)
	}
	billing.RenewCustomer(c, s.Today())
	if err := s.store.SaveCustomers(ctx); err != nil {
		return core.Customer{}, s.fail(ctx, "Failed to save customers", err, applog.OpRenew)
	}
	s.events.CustomerRenewed(ctx, c.ID, c.RenewDate.String())
	return *c, nil
}

// AddPayment records a payment against an existing customer.
func (s *BillingService) AddPayment(ctx context.Context, p core.Payment) (core.Payment, error) {
	if err := s.checkPayment(p); err != nil {
		return core.Payment{}, err
	}
	created := s.store.AddPayment(p, s.Now())
	if err := s.store.SavePayments(ctx); err != nil {
		return core.Payment{}, s.fail(ctx, "Failed to save payments", err, applog.OpCreate)
	}
	s.events.PaymentRecorded(ctx, created.ID, created.CustomerID, created.Amount.Cents, string(created.Method))
	return created, nil
}

func (s *BillingService) UpdatePayment(ctx context.Context, id string, p core.Payment) (core.Payment, error) {
	if err := s.checkPayment(p); err != nil {
		return core.Payment{}, err
	}
	updated, ok := s.store.UpdatePayment(id, p)
	if !ok {
		return core.Payment{}, fmt.Errorf("%w: %s", ErrPaymentNotFound, id)
	}
	if err := s.store.SavePayments(ctx); err != nil {
		return core.Payment{}, s.fail(ctx, "Failed to save payments", err, applog.OpUpdate)
	}
	return updated, nil
}

func (s *BillingService) DeletePayment(ctx context.Context, id string) error {
	if !s.store.DeletePayment(id) {
		return fmt.Errorf("%w: %s", ErrPaymentNotFound, id)
	}
	if err := s.store.SavePayments(ctx); err != nil {
		return s.fail(ctx, "Failed to save payments", err, applog.OpDelete)
	}
	return nil
}

func (s *BillingService) checkPayment(p core.Payment) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("validate payment: %w", err)
	}
	if _, ok := s.store.Customer(p.CustomerID); !ok {
		return fmt.Errorf("%w: %s", ErrCustomerNotFound, p.CustomerID)
	}
	return nil
}

func (s *BillingService) AddExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("validate expense: %w", err)
	}
	created := s.store.AddExpense(e, s.Now())
	if err := s.store.SaveExpenses(ctx); err != nil {
		return core.Expense{}, s.fail(ctx, "Failed to save expenses", err, applog.OpCreate)
	}
	s.events.ExpenseRecorded(ctx, created.ID, string(created.Category), created.Amount.Cents)
	return created, nil
}

func (s *BillingService) UpdateExpense(ctx context.Context, id string, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("validate expense: %w", err)
	}
	updated, ok := s.store.UpdateExpense(id, e)
	if !ok {
		return core.Expense{}, fmt.Errorf("%w: %s", ErrExpenseNotFound, id)
	}
	if err := s.store.SaveExpenses(ctx); err != nil {
		return core.Expense{}, s.fail(ctx, "Failed to save expenses", err, applog.OpUpdate)
	}
	return updated, nil
}

func (s *BillingService) DeleteExpense(ctx context.Context, id string) error {
	if !s.store.DeleteExpense(id) {
		return fmt.Errorf("%w: %s", ErrExpenseNotFound, id)
	}
	if err := s.store.SaveExpenses(ctx); err != nil {
		return s.fail(ctx, "Failed to save expenses", err, applog.OpDelete)
	}
	return nil
}

// GenerateMonthlyInvoices bills every active customer without a pending
// invoice this month. Nothing is saved when no invoice is created.
func (s *BillingService) GenerateMonthlyInvoices(ctx context.Context) ([]core.Invoice, error) {
	today := s.Today()
	created := billing.GenerateMonthlyInvoices(s.store.Customers, s.store.Invoices, today, s.Now(), s.store.IDs)
	if len(created) == 0 {
		s.events.InvoicesGenerated(ctx, today.MonthKey(), 0)
		return nil, nil
	}
	s.store.AddInvoices(created...)
	if err := s.store.SaveInvoices(ctx); err != nil {
		return nil, s.fail(ctx, "Failed to save invoices", err, applog.OpGenerate)
	}
	s.events.InvoicesGenerated(ctx, today.MonthKey(), len(created))
	return created, nil
}

// GenerateSingleInvoice always creates an invoice. A nil amount bills the
// customer's monthly amount.
func (s *BillingService) GenerateSingleInvoice(ctx context.Context, customerID string, amount *core.Money) (core.Invoice, error) {
	inv := billing.GenerateSingleInvoice(customerID, amount, s.store.Customers, s.Today(), s.Now(), s.store.IDs)
	s.store.AddInvoices(inv)
	if err := s.store.SaveInvoices(ctx); err != nil {
		return core.Invoice{}, s.fail(ctx, "Failed to save invoices", err, applog.OpGenerate)
	}
	s.events.InvoicesGenerated(ctx, inv.Date.MonthKey(), 1)
	return inv, nil
}

// MarkInvoicePaid settles an invoice. An unknown id is a no-op and reports
// false, as does an invoice that is already paid.
func (s *BillingService) MarkInvoicePaid(ctx context.Context, id string) (bool, error) {
	inv, ok := s.store.Invoice(id)
	if !ok || !billing.MarkPaid(inv) {
		return false, nil
	}
	if err := s.store.SaveInvoices(ctx); err != nil {
		return false, s.fail(ctx, "Failed to save invoices", err, applog.OpMarkPaid)
	}
	s.events.InvoicePaid(ctx, inv.ID, inv.CustomerID, inv.Amount.Cents)
	return true, nil
}

// Balance is the customer's balance; zero values for an unknown id.
func (s *BillingService) Balance(customerID string) billing.Balance {
	return billing.CustomerBalance(customerID, s.store.Customers, s.store.Payments, s.store.Invoices)
}

func (s *BillingService) Dashboard() billing.Dashboard {
	return billing.BuildDashboard(s.store.Customers, s.store.Payments, s.store.Expenses, s.Today())
}

func (s *BillingService) Report() core.ProfitReport {
	return billing.Profit(s.store.Payments, s.store.Expenses)
}

func (s *BillingService) fail(ctx context.Context, msg string, err error, op string) error {
	s.events.Error(ctx, msg, err, op, nil)
	return err
}
