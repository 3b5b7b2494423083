package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRunID       = "run_id"
	FieldCommand     = "command"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldCustomerID  = "customer_id"
	FieldPaymentID   = "payment_id"
	FieldExpenseID   = "expense_id"
	FieldInvoiceID   = "invoice_id"
	FieldAmountCents = "amount_cents"
	FieldMethod      = "method"
	FieldCategory    = "category"
	FieldMonth       = "month"
	FieldCount       = "count"
	FieldBackend     = "backend"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentCLI     = "cli"
	ComponentBilling = "billing"
	ComponentStorage = "storage"
	ComponentBackend = "backend"
	ComponentImport  = "import"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpGenerate = "generate"
	OpMarkPaid = "mark_paid"
	OpRenew    = "renew"
	OpImport   = "import"
	OpValidate = "validate"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation    = "validation_error"
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypeDatabase      = "database_error"
	ErrorTypeNotFound      = "not_found_error"
	ErrorTypeInternal      = "internal_error"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithRunID adds the CLI run id
func (f LogFields) WithRunID(runID string) LogFields {
	f[FieldRunID] = runID
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

func (f LogFields) WithCustomer(id string) LogFields {
	f[FieldCustomerID] = id
	return f
}

// WithPayment adds payment fields
func (f LogFields) WithPayment(id, customerID string, amountCents int64, method string) LogFields {
	f[FieldPaymentID] = id
	f[FieldCustomerID] = customerID
	f[FieldAmountCents] = amountCents
	f[FieldMethod] = method
	return f
}

// WithExpense adds expense fields
func (f LogFields) WithExpense(id, category string, amountCents int64) LogFields {
	f[FieldExpenseID] = id
	f[FieldCategory] = category
	f[FieldAmountCents] = amountCents
	return f
}

// WithInvoice adds invoice fields
func (f LogFields) WithInvoice(id, customerID string, amountCents int64) LogFields {
	f[FieldInvoiceID] = id
	f[FieldCustomerID] = customerID
	f[FieldAmountCents] = amountCents
	return f
}

func (f LogFields) WithCount(n int) LogFields {
	f[FieldCount] = n
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
