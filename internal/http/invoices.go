package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/viewinvoices/server/internal/invoices"
	"github.com/viewinvoices/server/pkg/httpx"
	"github.com/viewinvoices/server/pkg/slogx"
)

// InvoicesHandler serves the read-only invoice endpoints. Repo is nil when
// no invoice database is configured; every request then gets a 503 rather
// than a misleading empty result.
type InvoicesHandler struct {
	Repo invoices.Repository
}

// HandleList handles GET /api/invoices.
func (h *InvoicesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if h.Repo == nil {
		errDatabaseUnavailable.WriteError(w)
		return
	}

	summaries, err := h.Repo.List(ctx)
	if err != nil {
		log.Error("failed to list invoices", "err", err)
		errInternal.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, summaries)
}

// HandleGet handles GET /api/invoices/{id}.
func (h *InvoicesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if h.Repo == nil {
		errDatabaseUnavailable.WriteError(w)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		errInvoiceNotFound.WriteError(w)
		return
	}

	invoice, err := h.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, invoices.ErrNotFound) {
			errInvoiceNotFound.WriteError(w)
			return
		}
		log.Error("failed to load invoice", "invoice_id", id, "err", err)
		errInternal.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, invoice)
}
