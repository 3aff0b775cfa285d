package handlers

import (
	"net/http"

	"erp-ledger/internal/models"
	"erp-ledger/internal/services"
	"erp-ledger/pkg/utils"

	"github.com/gorilla/mux"
)

type OrderHandler struct {
	Service  *services.OrderService
	Invoices *services.InvoiceService
}

func NewOrderHandler(s *services.OrderService, invoices *services.InvoiceService) *OrderHandler {
	return &OrderHandler{Service: s, Invoices: invoices}
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.Service.CreateOrder(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Service.GetOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, order)
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Service.ListOrders(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.Service.UpdateOrder(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, order)
}

func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteOrder(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GenerateInvoice answers 201 for a new invoice and 200 when the order was already invoiced
func (h *OrderHandler) GenerateInvoice(w http.ResponseWriter, r *http.Request) {
	invoice, created, err := h.Invoices.GenerateFromOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	utils.JSON(w, status, invoice)
}
