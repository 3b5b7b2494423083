package core

// CategoryAmount represents expenses aggregated by category.
type CategoryAmount struct {
	Category ExpenseCategory
	Amount   Money
}

// OnlineSplit is the UPI share of all collections.
type OnlineSplit struct {
	GPay    Money
	PhonePe Money
	Total   Money
}

// ProfitReport compares all-time income against expenses. Net keeps its sign.
type ProfitReport struct {
	Income     Money
	Expenses   Money
	Net        Money
	ByCategory []CategoryAmount
}

// CustomerCounts splits the customer base by status.
type CustomerCounts struct {
	Active   int
	Inactive int
}
