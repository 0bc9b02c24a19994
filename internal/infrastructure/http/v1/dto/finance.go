package dto

import (
	"time"

	"stylos/internal/core/types"
)

// ExpenseRequest records an expense.
type ExpenseRequest struct {
	Description string      `json:"description" binding:"required"`
	Amount      types.Money `json:"amount" binding:"required"`
	Category    string      `json:"category" binding:"required"`
	Date        time.Time   `json:"date"`
}
