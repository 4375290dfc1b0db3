// Package models defines the core domain models for splitledger.
//
// # Models
//
//   - User: registered account, referenced by memberships, expenses and settlements
//   - Group: expense-sharing group owning members, categories, expenses, budgets, settlements
//   - Member: (group, user) pair with a role; unique per pair
//   - Category: (group, name) label for expenses; unique per pair
//   - Expense: a shared cost paid by one member, owning ExpenseSplit rows
//   - ExpenseSplit: one member's share of an expense; shares sum exactly to the amount
//   - BudgetPeriod: monthly spending cap, unique per (group, year, month)
//   - Settlement: a recorded payment between two members offsetting balances
//
// # Design Principles
//
//  1. All monetary fields are decimal.Decimal at 2-decimal scale; never float64
//  2. Relationships use ID strings instead of pointers to avoid circular references
//  3. Timestamps are Unix seconds (int64)
package models
