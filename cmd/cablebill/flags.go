package main

import (
	"flag"
	"fmt"

	"cablebill/internal/core"
)

// Record flags are plain strings so that update commands can tell which
// fields were given and leave the rest alone.

type customerFlagSet struct {
	name, phone, vc, stb, amount, renew, status *string
}

func customerFlags(fs *flag.FlagSet) customerFlagSet {
	return customerFlagSet{
		name:   fs.String("name", "", "customer name"),
		phone:  fs.String("phone", "", "phone number"),
		vc:     fs.String("vc", "", "viewing card number"),
		stb:    fs.String("stb", "", "set-top box number"),
		amount: fs.String("amount", "", "monthly amount in rupees"),
		renew:  fs.String("renew", "", "renew date YYYY-MM-DD (default: today)"),
		status: fs.String("status", "", "active or inactive"),
	}
}

func (f customerFlagSet) apply(c *core.Customer, set map[string]bool) error {
	if set["name"] {
		c.Name = *f.name
	}
	if set["phone"] {
		c.Phone = *f.phone
	}
	if set["vc"] {
		c.VCNumber = *f.vc
	}
	if set["stb"] {
		c.STBNumber = *f.stb
	}
	if set["status"] {
		c.Status = core.CustomerStatus(*f.status)
	}
	if set["amount"] {
		m, err := core.ParseMoney(*f.amount)
		if err != nil {
			return fmt.Errorf("parse amount: %w", err)
		}
		c.Amount = m
	}
	if set["renew"] {
		d, err := core.ParseDate(*f.renew)
		if err != nil {
			return fmt.Errorf("parse renew date: %w", err)
		}
		c.RenewDate = d
	}
	return nil
}

type paymentFlagSet struct {
	customer, amount, method, date, txn *string
}

func paymentFlags(fs *flag.FlagSet) paymentFlagSet {
	return paymentFlagSet{
		customer: fs.String("customer", "", "customer id"),
		amount:   fs.String("amount", "", "amount in rupees"),
		method:   fs.String("method", "", "cash, gpay, phonepe, bank or other (default: cash)"),
		date:     fs.String("date", "", "payment date YYYY-MM-DD (default: today)"),
		txn:      fs.String("txn", "", "transaction id"),
	}
}

func (f paymentFlagSet) apply(p *core.Payment, set map[string]bool) error {
	if set["customer"] {
		p.CustomerID = *f.customer
	}
	if set["method"] {
		p.Method = core.PaymentMethod(*f.method)
	}
	if set["txn"] {
		p.TransactionID = *f.txn
	}
	if set["amount"] {
		m, err := core.ParseMoney(*f.amount)
		if err != nil {
			return fmt.Errorf("parse amount: %w", err)
		}
		p.Amount = m
	}
	if set["date"] {
		d, err := core.ParseDate(*f.date)
		if err != nil {
			return fmt.Errorf("parse date: %w", err)
		}
		p.Date = d
	}
	return nil
}

type expenseFlagSet struct {
	category, description, amount, date *string
}

func expenseFlags(fs *flag.FlagSet) expenseFlagSet {
	return expenseFlagSet{
		category:    fs.String("category", "", "equipment, maintenance, salary, rent, utilities or other"),
		description: fs.String("description", "", "what the money was spent on"),
		amount:      fs.String("amount", "", "amount in rupees"),
		date:        fs.String("date", "", "expense date YYYY-MM-DD (default: today)"),
	}
}

func (f expenseFlagSet) apply(e *core.Expense, set map[string]bool) error {
	if set["category"] {
		e.Category = core.ExpenseCategory(*f.category)
	}
	if set["description"] {
		e.Description = *f.description
	}
	if set["amount"] {
		m, err := core.ParseMoney(*f.amount)
		if err != nil {
			return fmt.Errorf("parse amount: %w", err)
		}
		e.Amount = m
	}
	if set["date"] {
		d, err := core.ParseDate(*f.date)
		if err != nil {
			return fmt.Errorf("parse date: %w", err)
		}
		e.Date = d
	}
	return nil
}
