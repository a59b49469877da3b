package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/swaggo/swag"

	"github.com/MrKriegler/insurance-premium/pkg/problem"
)

type Mountable interface {
	Mount(r chi.Router)
}

// DocsHandler serves the registered OpenAPI document.
type DocsHandler struct {
	Instance string
}

func NewDocsHandler(instance string) *DocsHandler {
	return &DocsHandler{Instance: instance}
}

func (h *DocsHandler) Mount(r chi.Router) {
	r.Get("/swagger/doc.json", h.Doc)
}

func (h *DocsHandler) Doc(w http.ResponseWriter, _ *http.Request) {
	doc, err := swag.ReadDoc(h.Instance)
	if err != nil {
		problem.Write(w, http.StatusNotFound, problem.CodeNotFound, "API documentation is not registered.")
		return
	}
	_, _ = w.Write([]byte(doc))
}
