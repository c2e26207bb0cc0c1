package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	commissiondomain "github.com/smallbiznis/incentive/internal/commission/domain"
)

// Amounts are accepted as JSON numbers or strings. Raw tokens are
// passed through untouched so the decimal parser sees the exact digits
// the client sent; binding into a float would lose precision first.
type calculateCommissionRequest struct {
	SalesAmount  json.RawMessage `json:"sales_amount"`
	TargetAmount json.RawMessage `json:"target_amount"`
}

// CalculateCommission handles POST /api/v1/commission.
func (s *Server) CalculateCommission(c *gin.Context) {
	var req calculateCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.commissionSvc.Calculate(c.Request.Context(), commissiondomain.CalculateRequest{
		SalesAmount:  amountToken(req.SalesAmount),
		TargetAmount: amountToken(req.TargetAmount),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CommissionHealth handles GET /api/v1/commission/health.
func (s *Server) CommissionHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": s.cfg.AppName,
	})
}

// amountToken extracts the literal token of an amount field. Quoted
// strings are unwrapped; numbers pass through verbatim. A missing or
// null field yields "", which fails numeric validation downstream.
func amountToken(raw json.RawMessage) string {
	token := strings.TrimSpace(string(raw))
	if token == "" || token == "null" {
		return ""
	}
	if strings.HasPrefix(token, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return token
		}
		return strings.TrimSpace(s)
	}
	return token
}
