package handlers

import (
	"net/http"

	"erp-ledger/internal/models"
	"erp-ledger/internal/services"
	"erp-ledger/pkg/utils"

	"github.com/gorilla/mux"
)

type InvoiceHandler struct {
	Service   *services.InvoiceService
	Payments  *services.PaymentService
	Overdue   *services.OverdueService
	Recurring *services.RecurringService
}

func NewInvoiceHandler(ledger *services.Ledger) *InvoiceHandler {
	return &InvoiceHandler{
		Service:   ledger.Invoices,
		Payments:  ledger.Payments,
		Overdue:   ledger.Overdue,
		Recurring: ledger.Recurring,
	}
}

// ListInvoices supports ?status= and ?q= filters
func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	filter := models.InvoiceFilter{
		Status: models.InvoiceStatus(r.URL.Query().Get("status")),
		Search: r.URL.Query().Get("q"),
	}

	invoices, err := h.Service.ListInvoices(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, invoices)
}

func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.Service.GetInvoice(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, invoice)
}

func (h *InvoiceHandler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteInvoice(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *InvoiceHandler) SendInvoice(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.Service.SendInvoice(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, invoice)
}

func (h *InvoiceHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req models.RecordPaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = r.Header.Get("Idempotency-Key")
	}

	invoice, err := h.Payments.RecordPayment(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, invoice)
}

func (h *InvoiceHandler) CreateRecurringTemplate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTemplateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	invoice, err := h.Recurring.CreateRecurringTemplate(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, invoice)
}

func (h *InvoiceHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Recurring.ListTemplates(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, templates)
}

// OverdueScan runs the overdue check on demand
func (h *InvoiceHandler) OverdueScan(w http.ResponseWriter, r *http.Request) {
	updates, err := h.Overdue.Scan(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"updated": len(updates),
		"changes": updates,
	})
}

func (h *InvoiceHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}

func (h *InvoiceHandler) Orphaned(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.Service.Orphaned(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, invoices)
}
