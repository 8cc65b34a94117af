package handlers

import (
	"context"
	"net/http"

	"github.com/marketmind-ai/marketmind/internal/api"
	"github.com/marketmind-ai/marketmind/internal/service"
)

// AdviceService is the advice pipeline surface the handler needs.
type AdviceService interface {
	Advise(ctx context.Context, query string, topK int) (*service.AdviceResult, error)
}

type AdviceHandler struct {
	svc AdviceService
}

func NewAdviceHandler(svc AdviceService) *AdviceHandler {
	return &AdviceHandler{svc: svc}
}

// AdviceResponse is the wire shape of the advice endpoint. The no-news variant
// omits market_sentiment entirely.
type AdviceResponse struct {
	MarketSentiment string `json:"market_sentiment,omitempty"`
	FinancialAdvice string `json:"financial_advice"`
}

// Get handles GET /api/financial-advice?query=<string>.
func (h *AdviceHandler) Get(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		api.Error(w, http.StatusBadRequest, "query is required")
		return
	}

	result, err := h.svc.Advise(r.Context(), query, service.DefaultAdviceTopK)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	if result.NoNews {
		api.JSON(w, http.StatusOK, AdviceResponse{FinancialAdvice: result.FinancialAdvice})
		return
	}

	api.JSON(w, http.StatusOK, AdviceResponse{
		MarketSentiment: string(result.MarketSentiment),
		FinancialAdvice: result.FinancialAdvice,
	})
}
