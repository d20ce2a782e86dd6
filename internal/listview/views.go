package listview

import (
	"time"

	"smartspend/internal/core"
)

// Per-entity view configurations. Which fields are searched and which keys
// sort differ between pages on purpose; changing one view must not leak
// into another.

func ExpenseView() Config[core.Expense] {
	return Config[core.Expense]{
		SearchFields: []func(core.Expense) string{
			func(e core.Expense) string { return e.Description },
			func(e core.Expense) string { return e.Category },
		},
		SortKeys: map[string]SortKey[core.Expense]{
			"date":        {Kind: KindDate, Date: func(e core.Expense) core.FlexDate { return e.Date }},
			"amount":      {Kind: KindNumber, Number: func(e core.Expense) int64 { return e.Amount.Cents }},
			"description": {Kind: KindText, Text: func(e core.Expense) string { return e.Description }},
			"category":    {Kind: KindText, Text: func(e core.Expense) string { return e.Category }},
		},
		DefaultSort: SortSpec{Key: "date", Dir: Desc},
		DateOf:      func(e core.Expense) core.FlexDate { return e.Date },
		AmountOf:    func(e core.Expense) int64 { return e.Amount.Cents },
		CategoryOf:  func(e core.Expense) string { return e.Category },
		PageSize:    10,
	}
}

func BillView() Config[core.Bill] {
	return Config[core.Bill]{
		SearchFields: []func(core.Bill) string{
			func(b core.Bill) string { return b.Name },
		},
		SortKeys: map[string]SortKey[core.Bill]{
			"dueDate": {Kind: KindDate, Date: func(b core.Bill) core.FlexDate { return b.DueDate }},
			"amount":  {Kind: KindNumber, Number: func(b core.Bill) int64 { return b.Amount.Cents }},
			"name":    {Kind: KindText, Text: func(b core.Bill) string { return b.Name }},
			"status": {Kind: KindPriority, Priority: func(b core.Bill, now time.Time) int {
				return core.StatusPriority(b.Status(now))
			}},
		},
		DefaultSort: SortSpec{Key: "dueDate", Dir: Asc},
		DateOf:      func(b core.Bill) core.FlexDate { return b.DueDate },
		AmountOf:    func(b core.Bill) int64 { return b.Amount.Cents },
		CategoryOf:  func(b core.Bill) string { return b.Category },
		FlagOf: func(b core.Bill, _ time.Time) string {
			if b.IsPaid {
				return "paid"
			}
			return "unpaid"
		},
		PageSize: 10,
	}
}

func RecurringView() Config[core.RecurringTransaction] {
	return Config[core.RecurringTransaction]{
		SearchFields: []func(core.RecurringTransaction) string{
			func(r core.RecurringTransaction) string { return r.Description },
			func(r core.RecurringTransaction) string { return r.Category },
		},
		SortKeys: map[string]SortKey[core.RecurringTransaction]{
			"nextRecurringDate": {Kind: KindDate, Date: func(r core.RecurringTransaction) core.FlexDate { return r.NextRecurringDate }},
			"amount":            {Kind: KindNumber, Number: func(r core.RecurringTransaction) int64 { return r.Amount.Cents }},
			"description":       {Kind: KindText, Text: func(r core.RecurringTransaction) string { return r.Description }},
		},
		DefaultSort: SortSpec{Key: "nextRecurringDate", Dir: Asc},
		DateOf:      func(r core.RecurringTransaction) core.FlexDate { return r.NextRecurringDate },
		AmountOf:    func(r core.RecurringTransaction) int64 { return r.Amount.Cents },
		CategoryOf:  func(r core.RecurringTransaction) string { return r.Category },
		FlagOf: func(r core.RecurringTransaction, _ time.Time) string {
			return string(r.Type)
		},
		PageSize: 10,
	}
}

func WarrantyView() Config[core.Warranty] {
	return Config[core.Warranty]{
		SearchFields: []func(core.Warranty) string{
			func(w core.Warranty) string { return w.Product },
			func(w core.Warranty) string { return w.Retailer },
			func(w core.Warranty) string { return w.Category },
		},
		SortKeys: map[string]SortKey[core.Warranty]{
			"expirationDate": {Kind: KindDate, Date: func(w core.Warranty) core.FlexDate { return w.ExpirationDate }},
			"purchaseDate":   {Kind: KindDate, Date: func(w core.Warranty) core.FlexDate { return w.PurchaseDate }},
			"purchasePrice":  {Kind: KindNumber, Number: func(w core.Warranty) int64 { return w.PurchasePrice.Cents }},
			"product":        {Kind: KindText, Text: func(w core.Warranty) string { return w.Product }},
		},
		DefaultSort: SortSpec{Key: "expirationDate", Dir: Asc},
		DateOf:      func(w core.Warranty) core.FlexDate { return w.PurchaseDate },
		AmountOf:    func(w core.Warranty) int64 { return w.PurchasePrice.Cents },
		CategoryOf:  func(w core.Warranty) string { return w.Category },
		FlagOf: func(w core.Warranty, _ time.Time) string {
			if w.IsLifetime {
				return "lifetime"
			}
			return "limited"
		},
		PageSize: 10,
	}
}

func GoalView() Config[core.Goal] {
	return Config[core.Goal]{
		SearchFields: []func(core.Goal) string{
			func(g core.Goal) string { return g.Name },
		},
		SortKeys: map[string]SortKey[core.Goal]{
			"targetDate":   {Kind: KindDate, Date: func(g core.Goal) core.FlexDate { return g.TargetDate }},
			"targetAmount": {Kind: KindNumber, Number: func(g core.Goal) int64 { return g.TargetAmount.Cents }},
			"savedAmount":  {Kind: KindNumber, Number: func(g core.Goal) int64 { return g.SavedAmount.Cents }},
			"name":         {Kind: KindText, Text: func(g core.Goal) string { return g.Name }},
		},
		DefaultSort: SortSpec{Key: "targetDate", Dir: Asc},
		DateOf:      func(g core.Goal) core.FlexDate { return g.TargetDate },
		AmountOf:    func(g core.Goal) int64 { return g.SavedAmount.Cents },
		CategoryOf:  func(g core.Goal) string { return g.Category },
		PageSize:    12,
	}
}
