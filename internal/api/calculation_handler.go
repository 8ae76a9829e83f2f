package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taxdesk/tds-calculator/internal/bulk"
	"github.com/taxdesk/tds-calculator/internal/calculation"
	"github.com/taxdesk/tds-calculator/internal/domain"
	dec "github.com/taxdesk/tds-calculator/pkg/decimal"
)

// CalculateRequest is the JSON body of POST /api/v1/calculate. Dates accept
// the same layouts as bulk uploads. PANAvailable defaults to whether a PAN was given.
type CalculateRequest struct {
	DeducteeName      string      `json:"deductee_name" binding:"max=200"`
	Section           string      `json:"section" binding:"required,max=20"`
	Amount            json.Number `json:"amount" binding:"required"`
	Category          string      `json:"category"`
	PAN               string      `json:"pan" binding:"max=20"`
	PANAvailable      *bool       `json:"pan_available"`
	DeductionDate     string      `json:"deduction_date"`
	PaymentDate       string      `json:"payment_date"`
	Slab              string      `json:"slab"`
	Condition         string      `json:"condition"`
	ThresholdType     string      `json:"threshold_type"`
	ThresholdExceeded bool        `json:"threshold_exceeded"`
}

// BatchRequest is the JSON body of POST /api/v1/calculate/batch, capped at 1000 transactions
type BatchRequest struct {
	Transactions []CalculateRequest `json:"transactions" binding:"required,min=1,max=1000,dive"`
}

// Transaction converts the request to an engine transaction
func (r CalculateRequest) Transaction(row int) (domain.Transaction, error) {
	amount, err := dec.NewMoneyFromString(r.Amount.String())
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid amount %q", r.Amount)
	}
	if amount.IsNegative() {
		return domain.Transaction{}, fmt.Errorf("amount must not be negative")
	}

	deducted, err := bulk.ParseDate(r.DeductionDate)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid deduction_date: %w", err)
	}
	var paid *time.Time
	if strings.TrimSpace(r.PaymentDate) != "" {
		p, err := bulk.ParseDate(r.PaymentDate)
		if err != nil {
			return domain.Transaction{}, fmt.Errorf("invalid payment_date: %w", err)
		}
		paid = &p
	}

	pan := strings.ToUpper(strings.TrimSpace(r.PAN))
	panAvailable := pan != ""
	if r.PANAvailable != nil {
		panAvailable = *r.PANAvailable
	}

	return domain.Transaction{
		Row:               row,
		DeducteeName:      r.DeducteeName,
		SectionCode:       r.Section,
		Amount:            amount,
		Category:          domain.ParseCategory(r.Category),
		PAN:               pan,
		PANAvailable:      panAvailable,
		DeductionDate:     deducted,
		PaymentDate:       paid,
		Slab:              r.Slab,
		Condition:         r.Condition,
		ThresholdType:     r.ThresholdType,
		ThresholdExceeded: r.ThresholdExceeded,
	}, nil
}

// CalculationHandler runs single and batched JSON calculations.
type CalculationHandler struct {
	engine *calculation.Engine
}

// NewCalculationHandler creates a new CalculationHandler.
func NewCalculationHandler(engine *calculation.Engine) *CalculationHandler {
	return &CalculationHandler{engine: engine}
}

// Calculate handles POST /api/v1/calculate
func (h *CalculationHandler) Calculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	tx, err := req.Transaction(1)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	RespondOK(c, h.engine.Calculate(tx))
}

// CalculateBatch handles POST /api/v1/calculate/batch. Every transaction must
// be well formed; the response carries results in request order with a summary.
func (h *CalculationHandler) CalculateBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	txs := make([]domain.Transaction, len(req.Transactions))
	for i, r := range req.Transactions {
		tx, err := r.Transaction(i + 1)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", fmt.Sprintf("transactions[%d]: %v", i, err))
			return
		}
		txs[i] = tx
	}

	results, err := h.engine.CalculateBatch(c.Request.Context(), txs)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"results": results,
		"summary": domain.Summarize(results),
	})
}
