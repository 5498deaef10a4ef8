package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/devkwon/stocksage/internal/analysis"
	"github.com/devkwon/stocksage/internal/market"
	"github.com/devkwon/stocksage/pkg/logger"
)

// AnalyzeHandler serves stock analysis requests
type AnalyzeHandler struct {
	acquirer *market.Acquirer
	engine   *analysis.Engine
	logger   *logger.Logger
}

// NewAnalyzeHandler creates a new analysis handler
func NewAnalyzeHandler(acquirer *market.Acquirer, engine *analysis.Engine, log *logger.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		acquirer: acquirer,
		engine:   engine,
		logger:   log,
	}
}

// Analyze handles GET /analyze?ticker=SYMBOL
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("ticker")))
	if ticker == "" {
		respondError(w, http.StatusBadRequest, map[string]string{
			"error": "Ticker parameter required",
		})
		return
	}

	h.logger.WithField("ticker", ticker).Info("Analysis requested")

	snapshot, news, err := h.acquirer.Acquire(r.Context(), ticker)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("Data acquisition failed")

		message := err.Error()
		var noData *market.NoDataError
		if errors.As(err, &noData) && noData.Last != nil {
			message = noData.Last.Error()
		}

		respondError(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to fetch stock data",
			"message": message,
			"hint":    "Make sure the ticker symbol is valid",
		})
		return
	}

	result := h.engine.Analyze(snapshot, news)

	h.logger.WithFields(map[string]interface{}{
		"ticker":     ticker,
		"prediction": result.OverallPrediction,
		"confidence": result.ConfidenceLevel,
		"source":     result.DataSource,
	}).Info("Analysis completed")

	respondJSON(w, http.StatusOK, result)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, status int, payload map[string]string) {
	respondJSON(w, status, payload)
}
