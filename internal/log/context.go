package log

import (
	"context"
	"log/slog"
)

// ContextKey type for context keys
type ContextKey string

const (
	// LoggerContextKey is the context key for the logger
	LoggerContextKey ContextKey = "logger"
)

// WithContext stores logger in ctx.
func WithContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, LoggerContextKey, logger)
}

// FromContext extracts a logger from ctx, falling back to the slog default.
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(LoggerContextKey).(*Logger); ok {
		return logger
	}
	return newLogger(slog.Default(), "unknown")
}

// EventLogger writes the billing events every front end reports the same way.
type EventLogger struct {
	logger *Logger
}

func NewEventLogger(logger *Logger) *EventLogger {
	return &EventLogger{logger: logger.WithComponent(ComponentBilling)}
}

func (el *EventLogger) PaymentRecorded(ctx context.Context, id, customerID string, amountCents int64, method string) {
	fields := NewFields().
		WithPayment(id, customerID, amountCents, method).
		WithOperation(OpCreate)
	el.logger.InfoContext(ctx, "Payment recorded", fields.ToSlice()...)
}

func (el *EventLogger) ExpenseRecorded(ctx context.Context, id, category string, amountCents int64) {
	fields := NewFields().
		WithExpense(id, category, amountCents).
		WithOperation(OpCreate)
	el.logger.InfoContext(ctx, "Expense recorded", fields.ToSlice()...)
}

func (el *EventLogger) InvoicesGenerated(ctx context.Context, month string, count int) {
	fields := NewFields().
		WithOperation(OpGenerate).
		WithCount(count)
	fields[FieldMonth] = month
	el.logger.InfoContext(ctx, "Invoices generated", fields.ToSlice()...)
}

func (el *EventLogger) InvoicePaid(ctx context.Context, id, customerID string, amountCents int64) {
	fields := NewFields().
		WithInvoice(id, customerID, amountCents).
		WithOperation(OpMarkPaid)
	el.logger.InfoContext(ctx, "Invoice marked paid", fields.ToSlice()...)
}

func (el *EventLogger) CustomerRenewed(ctx context.Context, id, renewDate string) {
	fields := NewFields().
		WithCustomer(id).
		WithOperation(OpRenew)
	el.logger.InfoContext(ctx, "Customer renewed", append(fields.ToSlice(), "renew_date", renewDate)...)
}

// Error logs an error with structured context
func (el *EventLogger) Error(ctx context.Context, msg string, err error, operation string, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	all := fields.
		WithError(err).
		WithOperation(operation)
	el.logger.ErrorContext(ctx, msg, all.ToSlice()...)
}
