package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrKriegler/insurance-premium/internal/core"
	"github.com/MrKriegler/insurance-premium/pkg/problem"
)

// QuoteHandler prices a request without creating an application.
type QuoteHandler struct {
	Svc core.ApplicationService
	Log *slog.Logger
}

func NewQuoteHandler(svc core.ApplicationService, log *slog.Logger) *QuoteHandler {
	return &QuoteHandler{Svc: svc, Log: log}
}

func (h *QuoteHandler) Mount(r chi.Router) {
	r.Post("/api/quotes", h.Create)
}

// Create returns the premium breakdown for a request.
// 200: JSON breakdown; 400: bad JSON/validation; 413: body too large.
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := decodeRequest(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			problem.Write(w, http.StatusRequestEntityTooLarge, problem.CodeTooLarge,
				fmt.Sprintf("Request body exceeds %d bytes.", tooLarge.Limit))
			return
		}
		writeError(r.Context(), h.Log, w, decodeError(err))
		return
	}

	b, err := h.Svc.Quote(r.Context(), in)
	if err != nil {
		writeError(r.Context(), h.Log, w, err)
		return
	}

	h.Log.DebugContext(r.Context(), "premium quoted",
		"base", b.Base,
		"modifiers", b.Modifiers,
		"premium", b.Premium)

	if err := json.NewEncoder(w).Encode(b); err != nil {
		h.Log.Error("failed to encode quote", "err", err)
	}
}
