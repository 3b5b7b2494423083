package core

import (
	"fmt"
	"strconv"
	"time"
)

const (
	CustomerIDPrefix = "CUST"
	InvoiceIDPrefix  = "INV"
	PaymentIDPrefix  = "PAY"
	ExpenseIDPrefix  = "EXP"
)

// IDGenerator hands out sequential customer and invoice ids. The counters
// hold the next value to issue and are persisted with their collections.
type IDGenerator struct {
	NextCustomerID int64
	NextInvoiceID  int64
}

// NewIDGenerator restores counters; anything below 1 starts at 1.
func NewIDGenerator(nextCustomer, nextInvoice int64) *IDGenerator {
	return &IDGenerator{
		NextCustomerID: max(nextCustomer, 1),
		NextInvoiceID:  max(nextInvoice, 1),
	}
}

// NewCustomerID returns CUST000001, CUST000002, ...
func (g *IDGenerator) NewCustomerID() string {
	g.NextCustomerID = max(g.NextCustomerID, 1)
	id := sequenceID(CustomerIDPrefix, g.NextCustomerID)
	g.NextCustomerID++
	return id
}

// NewInvoiceID returns INV000001, INV000002, ...
func (g *IDGenerator) NewInvoiceID() string {
	g.NextInvoiceID = max(g.NextInvoiceID, 1)
	id := sequenceID(InvoiceIDPrefix, g.NextInvoiceID)
	g.NextInvoiceID++
	return id
}

func sequenceID(prefix string, n int64) string {
	return fmt.Sprintf("%s%06d", prefix, n)
}

// PaymentID returns "PAY" followed by the millisecond epoch of t.
func PaymentID(t time.Time) string {
	return timestampID(PaymentIDPrefix, t)
}

// ExpenseID returns "EXP" followed by the millisecond epoch of t.
func ExpenseID(t time.Time) string {
	return timestampID(ExpenseIDPrefix, t)
}

// UniqueTimestampID builds a prefix+millisecond id, moving forward one
// millisecond at a time while taken reports a collision.
func UniqueTimestampID(prefix string, t time.Time, taken func(id string) bool) string {
	id := timestampID(prefix, t)
	for taken != nil && taken(id) {
		t = t.Add(time.Millisecond)
		id = timestampID(prefix, t)
	}
	return id
}

func timestampID(prefix string, t time.Time) string {
	return prefix + strconv.FormatInt(t.UnixMilli(), 10)
}
