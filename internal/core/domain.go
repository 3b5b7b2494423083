package core

import (
	"errors"
	"strings"
	"time"
)

const (
	StatusActive   CustomerStatus = "active"
	StatusInactive CustomerStatus = "inactive"
)

const (
	MethodCash    PaymentMethod = "cash"
	MethodGPay    PaymentMethod = "gpay"
	MethodPhonePe PaymentMethod = "phonepe"
	MethodBank    PaymentMethod = "bank"
	MethodOther   PaymentMethod = "other"
)

const (
	CategoryEquipment   ExpenseCategory = "equipment"
	CategoryMaintenance ExpenseCategory = "maintenance"
	CategorySalary      ExpenseCategory = "salary"
	CategoryRent        ExpenseCategory = "rent"
	CategoryUtilities   ExpenseCategory = "utilities"
	CategoryOther       ExpenseCategory = "other"
)

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
)

type (
	CustomerStatus  string
	PaymentMethod   string
	ExpenseCategory string
	InvoiceStatus   string

	// Customer is a cable subscriber billed a fixed amount every month.
	Customer struct {
		ID        string         `json:"id"`
		Name      string         `json:"name"`
		Phone     string         `json:"phone"`
		VCNumber  string         `json:"vcNumber,omitempty"` // viewing card
		STBNumber string         `json:"stbNumber"`          // set-top box
		Amount    Money          `json:"amount"`             // monthly billing amount
		RenewDate Date           `json:"renewDate"`
		Status    CustomerStatus `json:"status"`
		CreatedAt time.Time      `json:"createdAt"`
	}

	// Payment is money received from a customer. It is independent of invoices.
	Payment struct {
		ID            string        `json:"id"`
		CustomerID    string        `json:"customerId"`
		Amount        Money         `json:"amount"`
		Method        PaymentMethod `json:"method"`
		Date          Date          `json:"date"`
		TransactionID string        `json:"transactionId,omitempty"`
		CreatedAt     time.Time     `json:"createdAt"`
	}

	Expense struct {
		ID          string          `json:"id"`
		Category    ExpenseCategory `json:"category"`
		Description string          `json:"description"`
		Amount      Money           `json:"amount"`
		Date        Date            `json:"date"`
		CreatedAt   time.Time       `json:"createdAt"`
	}

	Invoice struct {
		ID         string        `json:"id"`
		CustomerID string        `json:"customerId"`
		Amount     Money         `json:"amount"`
		Date       Date          `json:"date"`
		Status     InvoiceStatus `json:"status"`
		CreatedAt  time.Time     `json:"createdAt"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyPhone       = errors.New("empty phone")
	ErrEmptySTBNumber   = errors.New("empty STB number")
	ErrEmptyCustomerID  = errors.New("empty customer id")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidStatus    = errors.New("invalid customer status")
	ErrInvalidMethod    = errors.New("invalid payment method")
	ErrInvalidCategory  = errors.New("invalid expense category")
)

func (s CustomerStatus) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodGPay, MethodPhonePe, MethodBank, MethodOther:
		return true
	default:
		return false
	}
}

// IsOnline reports whether the payment arrived through a UPI app.
func (m PaymentMethod) IsOnline() bool {
	return m == MethodGPay || m == MethodPhonePe
}

// Label returns the human name shown in tables.
func (m PaymentMethod) Label() string {
	switch m {
	case MethodCash:
		return "Cash"
	case MethodGPay:
		return "GPay"
	case MethodPhonePe:
		return "PhonePe"
	case MethodBank:
		return "Bank Transfer"
	case MethodOther:
		return "Other"
	default:
		return string(m)
	}
}

func (c ExpenseCategory) Label() string {
	if !c.IsValid() {
		return string(c)
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

func (c ExpenseCategory) IsValid() bool {
	switch c {
	case CategoryEquipment, CategoryMaintenance, CategorySalary, CategoryRent, CategoryUtilities, CategoryOther:
		return true
	default:
		return false
	}
}

// IsActive reports whether the customer is billed.
func (c Customer) IsActive() bool {
	return c.Status == StatusActive
}

// IsExpired reports whether an active subscription is due for renewal on or before today.
func (c Customer) IsExpired(today Date) bool {
	return c.IsActive() && !c.RenewDate.IsZero() && !c.RenewDate.After(today.Time)
}

func (c Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(c.Phone) == "" {
		return ErrEmptyPhone
	}
	if strings.TrimSpace(c.STBNumber) == "" {
		return ErrEmptySTBNumber
	}
	if err := c.Amount.Validate(); err != nil {
		return err
	}
	if err := c.RenewDate.Validate(); err != nil {
		return err
	}
	if !c.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

func (p Payment) Validate() error {
	if strings.TrimSpace(p.CustomerID) == "" {
		return ErrEmptyCustomerID
	}
	if err := p.Amount.Validate(); err != nil {
		return err
	}
	if !p.Method.IsValid() {
		return ErrInvalidMethod
	}
	return p.Date.Validate()
}

func (e Expense) Validate() error {
	if !e.Category.IsValid() {
		return ErrInvalidCategory
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	return e.Date.Validate()
}

// IsPending reports whether the invoice still awaits payment.
func (i Invoice) IsPending() bool {
	return i.Status == InvoicePending
}
