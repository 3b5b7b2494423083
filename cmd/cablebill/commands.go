package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"cablebill/internal/billing"
	"cablebill/internal/cli"
	"cablebill/internal/core"
	"cablebill/internal/render"
	"cablebill/internal/services"
	"cablebill/internal/storage"
)

const usage = `usage: cablebill <command> [subcommand] [flags]

commands:
  dashboard
  report
  customers list [-q term] | add | update ID | delete ID | renew ID | expired | balance ID
  payments  list [-method m] | add | update ID | delete ID | online
  expenses  list | add | update ID | delete ID
  invoices  list | generate | single -customer ID [-amount x] | paid ID | show ID
  import FILE
  imports [-n count]
`

var (
	errUsage          = errors.New("missing command")
	errUnknownCommand = errors.New("unknown command")
	errMissingID      = errors.New("missing record id")
	errNoImportLog    = errors.New("backend keeps no import log")
)

// importLister is implemented by backends that keep an import log.
type importLister interface {
	RecentImports(ctx context.Context, limit int) ([]storage.ImportLog, error)
}

// command dispatches one invocation against an opened app.
type command struct {
	app    *cli.App
	out    io.Writer
	errOut io.Writer
	runID  string
}

func (c *command) svc() *services.BillingService { return c.app.Service }

func (c *command) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	name, rest := args[0], args[1:]
	switch name {
	case "dashboard":
		return render.Dashboard(c.out, c.svc().Dashboard())
	case "report":
		return render.Report(c.out, c.svc().Report())
	case "customers":
		return c.customers(ctx, rest)
	case "payments":
		return c.payments(ctx, rest)
	case "expenses":
		return c.expenses(ctx, rest)
	case "invoices":
		return c.invoices(ctx, rest)
	case "import":
		return c.importDump(ctx, rest)
	case "imports":
		return c.imports(ctx, rest)
	default:
		return fmt.Errorf("%w: %s", errUnknownCommand, name)
	}
}

func (c *command) customers(ctx context.Context, args []string) error {
	sub, args := subcommand(args, "list")
	st := c.svc().Store()
	today := c.svc().Today()

	switch sub {
	case "list":
		fs := c.flagSet("customers list")
		term := fs.String("q", "", "search name, id, phone or STB number")
		if err := fs.Parse(args); err != nil {
			return err
		}
		list := billing.SearchCustomers(st.Customers, *term)
		return render.Customers(c.out, list, st.Payments, st.Invoices, today)

	case "add":
		fs := c.flagSet("customers add")
		f := customerFlags(fs)
		if err := fs.Parse(args); err != nil {
			return err
		}
		cust := core.Customer{Status: core.StatusActive, RenewDate: today}
		if err := f.apply(&cust, visited(fs)); err != nil {
			return err
		}
		created, err := c.svc().AddCustomer(ctx, cust)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Customer %s added.\n", created.ID)
		return nil

	case "update":
		id, rest, err := splitID(args)
		if err != nil {
			return err
		}
		current, ok := st.Customer(id)
		if !ok {
			return fmt.Errorf("%w: %s", services.ErrCustomerNotFound, id)
		}
		fs := c.flagSet("customers update")
		f := customerFlags(fs)
		if err := fs.Parse(rest); err != nil {
			return err
		}
		cust := *current
		if err := f.apply(&cust, visited(fs)); err != nil {
			return err
		}
		if _, err := c.svc().UpdateCustomer(ctx, id, cust); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Customer %s updated.\n", id)
		return nil

	case "delete":
		id, _, err := splitID(args)
		if err != nil {
			return err
		}
		if err := c.svc().DeleteCustomer(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Customer %s deleted.\n", id)
		return nil

	case "renew":
		id, _, err := splitID(args)
		if err != nil {
			return err
		}
		renewed, err := c.svc().RenewCustomer(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Customer %s renewed until %s.\n", renewed.ID, render.FormatDate(renewed.RenewDate))
		return nil

	case "expired":
		return render.Expired(c.out, billing.ExpiredCustomers(st.Customers, today))

	case "balance":
		id, _, err := splitID(args)
		if err != nil {
			return err
		}
		cust, ok := billing.FindCustomer(st.Customers, id)
		if !ok {
			return fmt.Errorf("%w: %s", services.ErrCustomerNotFound, id)
		}
		return render.Balance(c.out, cust, c.svc().Balance(id))
	}
	return fmt.Errorf("%w: customers %s", errUnknownCommand, sub)
}

func (c *command) payments(ctx context.Context, args []string) error {
	sub, args := subcommand(args, "list")
	st := c.svc().Store()

	switch sub {
	case "list":
		fs := c.flagSet("payments list")
		method := fs.String("method", "", "only payments made with this method")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return render.Payments(c.out, billing.FilterPayments(st.Payments, *method), st.Customers)

	case "add":
		fs := c.flagSet("payments add")
		f := paymentFlags(fs)
		if err := fs.Parse(args); err != nil {
			return err
		}
		p := core.Payment{Method: core.MethodCash, Date: c.svc().Today()}
		if err := f.apply(&p, visited(fs)); err != nil {
			return err
		}
		created, err := c.svc().AddPayment(ctx, p)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Payment %s recorded: %s from %s.\n", created.ID,
			render.FormatCurrency(created.Amount), billing.CustomerName(st.Customers, created.CustomerID))
		return nil

	case "update":
		id, rest, err := splitID(args)
		if err != nil {
			return err
		}
		current, ok := st.Payment(id)
		if !ok {
			return fmt.Errorf("%w: %s", services.ErrPaymentNotFound, id)
		}
		fs := c.flagSet("payments update")
		f := paymentFlags(fs)
		if err := fs.Parse(rest); err != nil {
			return err
		}
		p := *current
		if err := f.apply(&p, visited(fs)); err != nil {
			return err
		}
		if _, err := c.svc().UpdatePayment(ctx, id, p); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Payment %s updated.\n", id)
		return nil

	case "delete":
		id, _, err := splitID(args)
		if err != nil {
			return err
		}
		if err := c.svc().DeletePayment(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Payment %s deleted.\n", id)
		return nil

	case "online":
		return render.Online(c.out, billing.OnlineCollection(st.Payments))
	}
	return fmt.Errorf("%w: payments %s", errUnknownCommand, sub)
}

func (c *command) expenses(ctx context.Context, args []string) error {
	sub, args := subcommand(args, "list")
	st := c.svc().Store()

	switch sub {
	case "list":
		return render.Expenses(c.out, st.Expenses)

	case "add":
		fs := c.flagSet("expenses add")
		f := expenseFlags(fs)
		if err := fs.Parse(args); err != nil {
			return err
		}
		e := core.Expense{Date: c.svc().Today()}
		if err := f.apply(&e, visited(fs)); err != nil {
			return err
		}
		created, err := c.svc().AddExpense(ctx, e)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Expense %s recorded: %s.\n", created.ID, render.FormatCurrency(created.Amount))
		return nil

	case "update":
		id, rest, err := splitID(args)
		if err != nil {
			return err
		}
		current, ok := st.Expense(id)
		if !ok {
			return fmt.Errorf("%w: %s", services.ErrExpenseNotFound, id)
		}
		fs := c.flagSet("expenses update")
		f := expenseFlags(fs)
		if err := fs.Parse(rest); err != nil {
			return err
		}
		e := *current
		if err := f.apply(&e, visited(fs)); err != nil {
			return err
		}
		if _, err := c.svc().UpdateExpense(ctx, id, e); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Expense %s updated.\n", id)
		return nil

	case "delete":
		id, _, err := splitID(args)
		if err != nil {
			return err
		}
		if err := c.svc().DeleteExpense(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Expense %s deleted.\n", id)
		return nil
	}
	return fmt.Errorf("%w: expenses %s", errUnknownCommand, sub)
}

func (c *command) invoices(ctx context.Context, args []string) error {
	sub, args := subcommand(args, "list")
	st := c.svc().Store()

	switch sub {
	case "list":
		return render.Invoices(c.out, st.Invoices, st.Customers)

	case "generate":
		created, err := c.svc().GenerateMonthlyInvoices(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Generated %d invoices for %s.\n", len(created), c.svc().Today().MonthKey())
		return nil

	case "single":
		fs := c.flagSet("invoices single")
		customerID := fs.String("customer", "", "customer id")
		amount := fs.String("amount", "", "invoice amount in rupees (default: monthly amount)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *customerID == "" {
			return fmt.Errorf("invoices single: %w", errMissingID)
		}
		var override *core.Money
		if *amount != "" {
			m, err := core.ParseMoney(*amount)
			if err != nil {
				return fmt.Errorf("parse amount: %w", err)
			}
			override = &m
		}
		inv, err := c.svc().GenerateSingleInvoice(ctx, *customerID, override)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Invoice %s generated: %s.\n", inv.ID, render.FormatCurrency(inv.Amount))
		return nil

	case "paid":
		id, _, err := splitID(args)
		if err != nil {
			return err
		}
		changed, err := c.svc().MarkInvoicePaid(ctx, id)
		if err != nil {
			return err
		}
		if !changed {
			fmt.Fprintf(c.out, "Invoice %s unchanged.\n", id)
			return nil
		}
		fmt.Fprintf(c.out, "Invoice %s marked as paid.\n", id)
		return nil

	case "show":
		id, _, err := splitID(args)
		if err != nil {
			return err
		}
		inv, ok := st.Invoice(id)
		if !ok {
			return fmt.Errorf("%w: %s", services.ErrInvoiceNotFound, id)
		}
		cust, ok := billing.FindCustomer(st.Customers, inv.CustomerID)
		if !ok {
			cust = core.Customer{ID: inv.CustomerID, Name: "Unknown"}
		}
		return render.Invoice(c.out, *inv, cust)
	}
	return fmt.Errorf("%w: invoices %s", errUnknownCommand, sub)
}

func (c *command) importDump(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("import: missing dump file")
	}
	s, err := cli.ImportDump(ctx, c.app.Backend.Backend, args[0], c.runID, c.app.Logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Imported %d customers, %d payments, %d expenses, %d invoices.\n",
		len(s.Customers), len(s.Payments), len(s.Expenses), len(s.Invoices))
	return nil
}

func (c *command) imports(ctx context.Context, args []string) error {
	fs := c.flagSet("imports")
	limit := fs.Int("n", 10, "number of entries")
	if err := fs.Parse(args); err != nil {
		return err
	}
	lister, ok := c.app.Backend.Backend.(importLister)
	if !ok {
		return errNoImportLog
	}
	entries, err := lister.RecentImports(ctx, *limit)
	if err != nil {
		return err
	}
	return render.Imports(c.out, entries)
}

func (c *command) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	return fs
}

// subcommand splits off the leading subcommand, falling back to def when
// args is empty or starts with a flag.
func subcommand(args []string, def string) (string, []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return def, args
	}
	return args[0], args[1:]
}

func splitID(args []string) (string, []string, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return "", nil, errMissingID
	}
	return args[0], args[1:], nil
}

// visited reports the flags set on the command line.
func visited(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}
