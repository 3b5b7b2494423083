package billing

import (
	"sort"
	"strings"

	"cablebill/internal/core"
)

// Dashboard progress bar targets, in rupees (customers for ExpiredTarget).
const (
	TodayCollectionTarget   = 10000
	MonthlyCollectionTarget = 100000
	MonthlyDuesTarget       = 50000
	OutstandingTarget       = 50000
	ExpiredTarget           = 50
	OnlineCollectionTarget  = 50000
)

// Dashboard is every rollup shown on the overview screen, computed in one pass
// over the current collections.
type Dashboard struct {
	Today             core.Date
	Month             string
	TodayCollection   core.Money
	MonthlyCollection core.Money
	// MonthlyDuesRaw may be negative when customers paid ahead.
	MonthlyDuesRaw   core.Money
	MonthlyDues      core.Money
	TotalOutstanding core.Money
	ExpiredCount     int
	Online           core.OnlineSplit
	Customers        core.CustomerCounts
	Profit           core.ProfitReport
	Expired          []core.Customer
}

// Progress holds the bar fill percentage for each dashboard card.
type Progress struct {
	TodayCollection   float64
	MonthlyCollection float64
	MonthlyDues       float64
	TotalOutstanding  float64
	Expired           float64
	OnlineCollection  float64
}

// BuildDashboard computes all rollups for the given day.
func BuildDashboard(customers []core.Customer, payments []core.Payment, expenses []core.Expense, today core.Date) Dashboard {
	month := today.MonthKey()
	expired := ExpiredCustomers(customers, today)
	dues := MonthlyDues(customers, payments, month)

	return Dashboard{
		Today:             today,
		Month:             month,
		TodayCollection:   TodayCollection(payments, today),
		MonthlyCollection: MonthlyCollection(payments, month),
		MonthlyDuesRaw:    dues,
		MonthlyDues:       dues.NonNegative(),
		TotalOutstanding:  TotalOutstanding(customers, payments),
		ExpiredCount:      len(expired),
		Online:            OnlineCollection(payments),
		Customers:         CountCustomers(customers),
		Profit:            Profit(payments, expenses),
		Expired:           expired,
	}
}

// Progress returns the bar percentages. Monthly dues use the raw sum, so a
// negative total yields a negative fill.
func (d Dashboard) Progress() Progress {
	return Progress{
		TodayCollection:   ProgressPercent(d.TodayCollection.Rupees(), TodayCollectionTarget),
		MonthlyCollection: ProgressPercent(d.MonthlyCollection.Rupees(), MonthlyCollectionTarget),
		MonthlyDues:       ProgressPercent(d.MonthlyDuesRaw.Rupees(), MonthlyDuesTarget),
		TotalOutstanding:  ProgressPercent(d.TotalOutstanding.Rupees(), OutstandingTarget),
		Expired:           ProgressPercent(float64(d.ExpiredCount), ExpiredTarget),
		OnlineCollection:  ProgressPercent(d.Online.Total.Rupees(), OnlineCollectionTarget),
	}
}

// ProgressPercent returns min(value/target*100, 100).
func ProgressPercent(value, target float64) float64 {
	return min(value/target*100, 100)
}

// TodayCollection sums payments dated today.
func TodayCollection(payments []core.Payment, today core.Date) core.Money {
	var total core.Money
	for _, p := range payments {
		if p.Date.SameDay(today) {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// MonthlyCollection sums payments dated in the billing period (YYYY-MM).
func MonthlyCollection(payments []core.Payment, month string) core.Money {
	var total core.Money
	for _, p := range payments {
		if p.Date.InMonth(month) {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// MonthlyDues sums, over active customers, the monthly amount less what they
// paid this month. Overpayments offset other customers' dues, so the result
// can be negative; clamp for display.
func MonthlyDues(customers []core.Customer, payments []core.Payment, month string) core.Money {
	var total core.Money
	for _, c := range customers {
		if !c.IsActive() {
			continue
		}
		var paid core.Money
		for _, p := range payments {
			if p.CustomerID == c.ID && p.Date.InMonth(month) {
				paid = paid.Add(p.Amount)
			}
		}
		total = total.Add(c.Amount.Sub(paid))
	}
	return total
}

// TotalOutstanding sums max(0, monthly amount - all-time payments) over active customers.
func TotalOutstanding(customers []core.Customer, payments []core.Payment) core.Money {
	var total core.Money
	for _, c := range customers {
		if !c.IsActive() {
			continue
		}
		total = total.Add(c.Amount.Sub(PaidBy(payments, c.ID)).NonNegative())
	}
	return total
}

// ExpiredCustomers lists active customers whose renew date is on or before
// today, oldest renew date first.
func ExpiredCustomers(customers []core.Customer, today core.Date) []core.Customer {
	var out []core.Customer
	for _, c := range customers {
		if c.IsExpired(today) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RenewDate.Before(out[j].RenewDate.Time)
	})
	return out
}

// ExpiredCount counts active customers due for renewal.
func ExpiredCount(customers []core.Customer, today core.Date) int {
	n := 0
	for _, c := range customers {
		if c.IsExpired(today) {
			n++
		}
	}
	return n
}

// OnlineCollection splits UPI payments by app.
func OnlineCollection(payments []core.Payment) core.OnlineSplit {
	var split core.OnlineSplit
	for _, p := range payments {
		switch p.Method {
		case core.MethodGPay:
			split.GPay = split.GPay.Add(p.Amount)
		case core.MethodPhonePe:
			split.PhonePe = split.PhonePe.Add(p.Amount)
		}
	}
	split.Total = split.GPay.Add(split.PhonePe)
	return split
}

// Profit compares all payments against all expenses.
func Profit(payments []core.Payment, expenses []core.Expense) core.ProfitReport {
	var income, spent core.Money
	for _, p := range payments {
		income = income.Add(p.Amount)
	}
	for _, e := range expenses {
		spent = spent.Add(e.Amount)
	}
	return core.ProfitReport{
		Income:     income,
		Expenses:   spent,
		Net:        income.Sub(spent),
		ByCategory: ExpensesByCategory(expenses),
	}
}

// ExpensesByCategory totals expenses per category in first-seen order.
func ExpensesByCategory(expenses []core.Expense) []core.CategoryAmount {
	index := map[core.ExpenseCategory]int{}
	var out []core.CategoryAmount
	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(out)
			index[e.Category] = i
			out = append(out, core.CategoryAmount{Category: e.Category})
		}
		out[i].Amount = out[i].Amount.Add(e.Amount)
	}
	return out
}

// CountCustomers counts active and inactive customers.
func CountCustomers(customers []core.Customer) core.CustomerCounts {
	var counts core.CustomerCounts
	for _, c := range customers {
		switch c.Status {
		case core.StatusActive:
			counts.Active++
		case core.StatusInactive:
			counts.Inactive++
		}
	}
	return counts
}

// FilterPayments keeps payments made with method; "" or "all" keeps everything.
func FilterPayments(payments []core.Payment, method string) []core.Payment {
	if method == "" || method == "all" {
		return append([]core.Payment(nil), payments...)
	}
	var out []core.Payment
	for _, p := range payments {
		if string(p.Method) == method {
			out = append(out, p)
		}
	}
	return out
}

// SearchCustomers matches term against name, id and STB number (case
// insensitive) and phone (substring).
func SearchCustomers(customers []core.Customer, term string) []core.Customer {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return append([]core.Customer(nil), customers...)
	}
	var out []core.Customer
	for _, c := range customers {
		if strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(c.Phone, term) ||
			strings.Contains(strings.ToLower(c.STBNumber), term) ||
			strings.Contains(strings.ToLower(c.ID), term) {
			out = append(out, c)
		}
	}
	return out
}
