// Package finance tracks business expenses and computes the profitability
// summary. Expenses are append-only.
package finance

import (
	"context"
	"time"

	"stylos/internal/core/apperror"
	"stylos/internal/core/id"
	"stylos/internal/core/types"
)

// Category labels an expense. The values double as display labels.
type Category string

const (
	CategoryFixed       Category = "Custo Fixo (Luz, Internet, Aluguel)"
	CategoryPersonnel   Category = "Pessoal (Salários, Comissões)"
	CategoryRawMaterial Category = "Matéria Prima (Tecidos, Linhas)"
	CategoryMaintenance Category = "Manutenção"
	CategoryMarketing   Category = "Marketing"
	CategoryOther       Category = "Outros"
)

// Categories lists all valid expense categories in display order.
var Categories = []Category{
	CategoryFixed,
	CategoryPersonnel,
	CategoryRawMaterial,
	CategoryMaintenance,
	CategoryMarketing,
	CategoryOther,
}

// ValidCategory checks if the category is one of the known values.
func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Expense is a single recorded cost.
type Expense struct {
	ID          id.ID       `db:"id" json:"id"`
	Description string      `db:"description" json:"description"`
	Amount      types.Money `db:"amount" json:"amount"`
	Category    Category    `db:"category" json:"category"`
	Date        time.Time   `db:"date" json:"date"`
	CreatedAt   time.Time   `db:"created_at" json:"-"`
}

// New creates an expense with a fresh id.
func New(description string, amount types.Money, category Category, date time.Time) *Expense {
	now := time.Now().UTC()
	if date.IsZero() {
		date = now
	}
	return &Expense{
		ID:          id.New(),
		Description: description,
		Amount:      amount,
		Category:    category,
		Date:        date,
		CreatedAt:   now,
	}
}

// Validate checks business rules.
func (e *Expense) Validate(ctx context.Context) error {
	if e.Description == "" {
		return apperror.NewValidation("expense description is required").
			WithDetail("field", "description")
	}
	if !e.Amount.IsPositive() {
		return apperror.NewValidation("expense amount must be positive").
			WithDetail("field", "amount").
			WithDetail("value", e.Amount.String())
	}
	if !ValidCategory(e.Category) {
		return apperror.NewValidation("invalid expense category").
			WithDetail("field", "category").
			WithDetail("value", string(e.Category))
	}
	return nil
}

// Summary aggregates revenue, costs and profit over a period.
type Summary struct {
	TotalRevenue  types.Money `json:"totalRevenue"`
	TotalExpenses types.Money `json:"totalExpenses"`
	TotalCOGS     types.Money `json:"totalCOGS"`
	NetProfit     types.Money `json:"netProfit"`

	// Margin is net profit as a percentage of revenue, zero when there is
	// no revenue.
	Margin types.Money `json:"margin"`
}
