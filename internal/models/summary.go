package models

// Summary represents income, expense and interest totals for an account
type Summary struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Interest float64 `json:"interest"`
}
