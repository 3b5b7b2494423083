package billing

import (
	"testing"

	"cablebill/internal/core"
)

func TestTodayCollection(t *testing.T) {
	today := core.NewDate(2024, 3, 10)
	yesterday := core.NewDate(2024, 3, 9)
	payments := []core.Payment{
		payment("C1", 100, today, core.MethodCash),
		payment("C2", 50, yesterday, core.MethodCash),
	}
	if got := TodayCollection(payments, today); got != rs(100) {
		t.Fatalf("TodayCollection = %s, want 100.00", got)
	}
}

func TestMonthlyCollection(t *testing.T) {
	payments := []core.Payment{
		payment("C1", 100, core.NewDate(2024, 3, 1), core.MethodCash),
		payment("C1", 200, core.NewDate(2024, 3, 31), core.MethodGPay),
		payment("C1", 400, core.NewDate(2024, 2, 29), core.MethodGPay),
		payment("C1", 800, core.NewDate(2023, 3, 15), core.MethodGPay),
	}
	if got := MonthlyCollection(payments, "2024-03"); got != rs(300) {
		t.Fatalf("MonthlyCollection = %s, want 300.00", got)
	}
}

func TestMonthlyDues(t *testing.T) {
	march := core.NewDate(2024, 3, 5)
	inactive := customer("C3", 1000)
	inactive.Status = core.StatusInactive
	customers := []core.Customer{customer("C1", 500), customer("C2", 300), inactive}

	tests := []struct {
		name     string
		payments []core.Payment
		want     core.Money
	}{
		{"nobody paid", nil, rs(800)},
		{"one paid in full", []core.Payment{payment("C1", 500, march, core.MethodCash)}, rs(300)},
		{"last month's payment ignored", []core.Payment{payment("C1", 500, core.NewDate(2024, 2, 5), core.MethodCash)}, rs(800)},
		{"overpayment offsets others", []core.Payment{payment("C1", 1000, march, core.MethodCash)}, rs(-200)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthlyDues(customers, tt.payments, "2024-03"); got != tt.want {
				t.Errorf("MonthlyDues = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTotalOutstanding(t *testing.T) {
	inactive := customer("C3", 1000)
	inactive.Status = core.StatusInactive
	customers := []core.Customer{customer("C1", 500), customer("C2", 300), inactive}
	payments := []core.Payment{
		payment("C1", 900, core.NewDate(2023, 1, 1), core.MethodCash), // overpaid, clamps to 0
		payment("C2", 100, core.NewDate(2024, 3, 1), core.MethodCash),
	}
	if got := TotalOutstanding(customers, payments); got != rs(200) {
		t.Fatalf("TotalOutstanding = %s, want 200.00", got)
	}
}

func TestExpiredCustomers(t *testing.T) {
	today := core.NewDate(2024, 3, 10)
	a := customer("C1", 100)
	a.RenewDate = core.NewDate(2024, 3, 10)
	b := customer("C2", 100)
	b.RenewDate = core.NewDate(2024, 1, 2)
	c := customer("C3", 100)
	c.RenewDate = core.NewDate(2024, 3, 11)
	d := customer("C4", 100)
	d.RenewDate = core.NewDate(2023, 1, 1)
	d.Status = core.StatusInactive

	got := ExpiredCustomers([]core.Customer{a, b, c, d}, today)
	if len(got) != 2 || got[0].ID != "C2" || got[1].ID != "C1" {
		t.Fatalf("ExpiredCustomers = %+v", got)
	}
	if n := ExpiredCount([]core.Customer{a, b, c, d}, today); n != 2 {
		t.Fatalf("ExpiredCount = %d, want 2", n)
	}
}

func TestOnlineCollection(t *testing.T) {
	day := core.NewDate(2024, 3, 1)
	payments := []core.Payment{
		payment("C1", 100, day, core.MethodGPay),
		payment("C1", 250, day, core.MethodPhonePe),
		payment("C1", 50, day, core.MethodGPay),
		payment("C1", 999, day, core.MethodCash),
		payment("C1", 999, day, core.MethodBank),
	}
	got := OnlineCollection(payments)
	want := core.OnlineSplit{GPay: rs(150), PhonePe: rs(250), Total: rs(400)}
	if got != want {
		t.Fatalf("OnlineCollection = %+v, want %+v", got, want)
	}
}

func TestProfit(t *testing.T) {
	day := core.NewDate(2024, 3, 1)
	payments := []core.Payment{payment("C1", 300, day, core.MethodCash)}
	expenses := []core.Expense{
		{Category: core.CategoryRent, Amount: rs(400), Date: day},
		{Category: core.CategorySalary, Amount: rs(100), Date: day},
		{Category: core.CategoryRent, Amount: rs(50), Date: day},
	}
	got := Profit(payments, expenses)
	if got.Income != rs(300) || got.Expenses != rs(550) || got.Net != rs(-250) {
		t.Fatalf("Profit = %+v", got)
	}
	if len(got.ByCategory) != 2 || got.ByCategory[0].Category != core.CategoryRent || got.ByCategory[0].Amount != rs(450) {
		t.Fatalf("ByCategory = %+v", got.ByCategory)
	}
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		value, max, want float64
	}{
		{0, 10000, 0},
		{2500, 10000, 25},
		{10000, 10000, 100},
		{25000, 10000, 100},
		{-5000, 50000, -10},
	}
	for _, tt := range tests {
		if got := ProgressPercent(tt.value, tt.max); got != tt.want {
			t.Errorf("ProgressPercent(%v, %v) = %v, want %v", tt.value, tt.max, got, tt.want)
		}
	}
}

func TestBuildDashboard(t *testing.T) {
	today := core.NewDate(2024, 3, 10)
	c1 := customer("C1", 500)
	c1.RenewDate = core.NewDate(2024, 3, 1)
	c2 := customer("C2", 300)
	c2.RenewDate = core.NewDate(2024, 4, 1)
	c3 := customer("C3", 200)
	c3.Status = core.StatusInactive
	customers := []core.Customer{c1, c2, c3}
	payments := []core.Payment{
		payment("C1", 600, today, core.MethodGPay),
		payment("C2", 100, core.NewDate(2024, 3, 2), core.MethodCash),
	}
	expenses := []core.Expense{{Category: core.CategoryUtilities, Amount: rs(1000), Date: today}}

	d := BuildDashboard(customers, payments, expenses, today)

	if d.Month != "2024-03" {
		t.Errorf("Month = %q", d.Month)
	}
	if d.TodayCollection != rs(600) || d.MonthlyCollection != rs(700) {
		t.Errorf("collections = %s / %s", d.TodayCollection, d.MonthlyCollection)
	}
	if d.MonthlyDuesRaw != rs(100) || d.MonthlyDues != rs(100) {
		t.Errorf("dues = %s / %s", d.MonthlyDuesRaw, d.MonthlyDues)
	}
	if d.TotalOutstanding != rs(200) {
		t.Errorf("TotalOutstanding = %s", d.TotalOutstanding)
	}
	if d.ExpiredCount != 1 || d.Expired[0].ID != "C1" {
		t.Errorf("expired = %d %+v", d.ExpiredCount, d.Expired)
	}
	if d.Online.Total != rs(600) {
		t.Errorf("online = %+v", d.Online)
	}
	if d.Customers != (core.CustomerCounts{Active: 2, Inactive: 1}) {
		t.Errorf("counts = %+v", d.Customers)
	}
	if d.Profit.Net != rs(-300) {
		t.Errorf("net = %s", d.Profit.Net)
	}

	p := d.Progress()
	if p.TodayCollection != 6 || p.Expired != 2 {
		t.Errorf("progress = %+v", p)
	}
}

func TestMonthlyDuesDisplayFloor(t *testing.T) {
	today := core.NewDate(2024, 3, 10)
	payments := []core.Payment{payment("C1", 900, today, core.MethodCash)}
	d := BuildDashboard([]core.Customer{customer("C1", 500)}, payments, nil, today)
	if d.MonthlyDuesRaw != rs(-400) || !d.MonthlyDues.IsZero() {
		t.Fatalf("dues raw=%s display=%s", d.MonthlyDuesRaw, d.MonthlyDues)
	}
	if d.Progress().MonthlyDues >= 0 {
		t.Fatalf("progress on raw negative dues should be negative, got %v", d.Progress().MonthlyDues)
	}
}

func TestFilterPayments(t *testing.T) {
	day := core.NewDate(2024, 3, 1)
	payments := []core.Payment{
		payment("C1", 1, day, core.MethodGPay),
		payment("C1", 2, day, core.MethodCash),
		payment("C1", 3, day, core.MethodGPay),
	}
	if got := FilterPayments(payments, "all"); len(got) != 3 {
		t.Errorf("all = %d", len(got))
	}
	if got := FilterPayments(payments, "gpay"); len(got) != 2 {
		t.Errorf("gpay = %d", len(got))
	}
	if got := FilterPayments(payments, "phonepe"); len(got) != 0 {
		t.Errorf("phonepe = %d", len(got))
	}
}

func TestSearchCustomers(t *testing.T) {
	a := customer("CUST000001", 100)
	a.Name = "Ravi Kumar"
	a.Phone = "9876500000"
	a.STBNumber = "STB-AB12"
	b := customer("CUST000002", 100)
	b.Name = "Meena"
	b.Phone = "9123400000"
	b.STBNumber = "STB-ZZ99"
	customers := []core.Customer{a, b}

	tests := []struct {
		term string
		want []string
	}{
		{"", []string{"CUST000001", "CUST000002"}},
		{"ravi", []string{"CUST000001"}},
		{"91234", []string{"CUST000002"}},
		{"stb-zz", []string{"CUST000002"}},
		{"cust00000", []string{"CUST000001", "CUST000002"}},
		{"nobody", nil},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got := SearchCustomers(customers, tt.term)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d results, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].ID != tt.want[i] {
					t.Errorf("result %d = %s, want %s", i, got[i].ID, tt.want[i])
				}
			}
		})
	}
}
