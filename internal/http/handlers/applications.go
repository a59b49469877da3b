package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrKriegler/insurance-premium/internal/core"
	"github.com/MrKriegler/insurance-premium/internal/platform/metrics"
	"github.com/MrKriegler/insurance-premium/pkg/problem"
)

type ApplicationHandler struct {
	Svc     core.ApplicationService
	Log     *slog.Logger
	Metrics *metrics.Metrics
}

func NewApplicationHandler(svc core.ApplicationService, log *slog.Logger, m *metrics.Metrics) *ApplicationHandler {
	return &ApplicationHandler{Svc: svc, Log: log, Metrics: m}
}

func (h *ApplicationHandler) Mount(r chi.Router) {
	r.Route("/api/insurance", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/{application_id}", h.Get)
	})
}

// Create validates the request, prices it and stores the resulting application.
// 201: JSON record; 400: bad JSON/validation; 413: body too large; 500: internal error.
func (h *ApplicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := decodeRequest(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			problem.Write(w, http.StatusRequestEntityTooLarge, problem.CodeTooLarge,
				fmt.Sprintf("Request body exceeds %d bytes.", tooLarge.Limit))
			return
		}
		h.Metrics.ValidationFailed()
		writeError(r.Context(), h.Log, w, decodeError(err))
		return
	}

	app, err := h.Svc.Apply(r.Context(), in)
	if err != nil {
		if errors.Is(err, core.ErrValidation) {
			h.Metrics.ValidationFailed()
		}
		writeError(r.Context(), h.Log, w, err)
		return
	}

	h.Metrics.ObserveApplication(app)
	h.Log.InfoContext(r.Context(), "application created",
		"application_id", app.ID,
		"insurance_type", app.InsuranceType,
		"premium", app.CalculatedPremium)

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(app); err != nil {
		h.Log.Error("failed to encode application", "application_id", app.ID, "err", err)
	}
}

// Get retrieves a stored application by ID.
// 200: JSON; 400: missing ID; 404: not found; 500: internal error.
func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "application_id")

	app, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeError(r.Context(), h.Log, w, err)
		return
	}

	if err := json.NewEncoder(w).Encode(app); err != nil {
		h.Log.Error("failed to encode application", "application_id", id, "err", err)
	}
}

var errTrailingData = errors.New("trailing data after JSON object")

// decodeRequest reads exactly one JSON value from body. Anything after it
// other than whitespace is an error.
func decodeRequest(body io.Reader) (core.ApplicationRequest, error) {
	var in core.ApplicationRequest
	dec := json.NewDecoder(body)
	if err := dec.Decode(&in); err != nil {
		return in, err
	}
	var extra json.RawMessage
	err := dec.Decode(&extra)
	if errors.Is(err, io.EOF) {
		return in, nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return in, err
	}
	return in, errTrailingData
}

// decodeError turns a JSON decoding failure into a validation error so that
// malformed bodies and wrongly typed fields get the same 400 contract.
func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return fmt.Errorf("%w: request body is required", core.ErrValidation)
	case errors.Is(err, errTrailingData):
		return fmt.Errorf("%w: request body must contain a single JSON object", core.ErrValidation)
	case errors.As(err, &typeErr) && typeErr.Field == "":
		return fmt.Errorf("%w: request body must be a JSON object", core.ErrValidation)
	case errors.As(err, &typeErr):
		return fmt.Errorf("%w: %s must be a string", core.ErrValidation, typeErr.Field)
	default:
		return fmt.Errorf("%w: body could not be decoded: %v", core.ErrValidation, err)
	}
}
