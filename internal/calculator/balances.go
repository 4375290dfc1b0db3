package calculator

import "github.com/shopspring/decimal"

// ExpenseForBalance carries the minimal expense information needed for the
// balance fold: who paid, how much, and the per-member shares.
type ExpenseForBalance struct {
	PaidBy string
	Amount decimal.Decimal
	Splits []Share
}

// SettlementForBalance carries the minimal settlement information needed for
// the balance fold.
type SettlementForBalance struct {
	FromUserID string
	ToUserID   string
	Amount     decimal.Decimal
}

// MemberBalance is one member's signed net position for a period.
// Positive = others owe them; negative = they owe others.
type MemberBalance struct {
	UserID string
	Net    decimal.Decimal
}

// Summary is the result of folding a period's expenses and settlements into
// per-member balances, plus budget figures when a limit is set.
type Summary struct {
	TotalSpent decimal.Decimal
	// BudgetLimit and Remaining are nil when no budget is set for the period.
	BudgetLimit *decimal.Decimal
	Remaining   *decimal.Decimal
	Balances    []MemberBalance
}

// Summarize folds the given in-window expenses and settlements into net
// balances per member.
//
// Algorithm:
//   - every current member starts at zero
//   - each expense credits the payer with the full amount
//   - each split debits that member with their share
//   - each settlement credits the sender and debits the receiver
//
// Because every expense's splits sum exactly to its amount, the balances of a
// closed period always sum to zero. Members who left the group but still
// appear on historical records are included in the output after the current
// members, in first-seen order.
func Summarize(memberIDs []string, expenses []ExpenseForBalance, settlements []SettlementForBalance, budgetLimit *decimal.Decimal) Summary {
	balances := make(map[string]decimal.Decimal, len(memberIDs))
	order := make([]string, 0, len(memberIDs))

	touch := func(userID string) {
		if _, ok := balances[userID]; !ok {
			balances[userID] = decimal.Zero
			order = append(order, userID)
		}
	}

	for _, id := range memberIDs {
		touch(id)
	}

	totalSpent := decimal.Zero
	for _, e := range expenses {
		touch(e.PaidBy)
		balances[e.PaidBy] = balances[e.PaidBy].Add(e.Amount)
		totalSpent = totalSpent.Add(e.Amount)

		for _, s := range e.Splits {
			touch(s.UserID)
			balances[s.UserID] = balances[s.UserID].Sub(s.Amount)
		}
	}

	for _, s := range settlements {
		touch(s.FromUserID)
		touch(s.ToUserID)
		balances[s.FromUserID] = balances[s.FromUserID].Add(s.Amount)
		balances[s.ToUserID] = balances[s.ToUserID].Sub(s.Amount)
	}

	result := Summary{TotalSpent: totalSpent}
	for _, id := range order {
		result.Balances = append(result.Balances, MemberBalance{UserID: id, Net: balances[id]})
	}

	if budgetLimit != nil {
		limit := *budgetLimit
		remaining := limit.Sub(totalSpent)
		result.BudgetLimit = &limit
		result.Remaining = &remaining
	}

	return result
}
