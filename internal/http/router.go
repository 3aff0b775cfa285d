package http

import (
	"net/http"

	"erp-ledger/internal/handlers"
	"erp-ledger/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	productHandler *handlers.ProductHandler,
	customerHandler *handlers.CustomerHandler,
	orderHandler *handlers.OrderHandler,
	invoiceHandler *handlers.InvoiceHandler,
	healthHandler *handlers.HealthHandler,
	eventsHandler http.HandlerFunc,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)

	// Products API
	productsAPI := r.PathPrefix("/api/products").Subrouter()
	productsAPI.Use(authMiddleware.Authenticate)
	productsAPI.HandleFunc("", productHandler.ListProducts).Methods("GET")
	productsAPI.HandleFunc("", productHandler.CreateProduct).Methods("POST")
	productsAPI.HandleFunc("/{id}", productHandler.GetProduct).Methods("GET")
	productsAPI.HandleFunc("/{id}", productHandler.UpdateProduct).Methods("PUT")
	productsAPI.HandleFunc("/{id}", productHandler.DeleteProduct).Methods("DELETE")

	// Customers API
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.Use(authMiddleware.Authenticate)
	customersAPI.HandleFunc("", customerHandler.ListCustomers).Methods("GET")
	customersAPI.HandleFunc("", customerHandler.CreateCustomer).Methods("POST")
	customersAPI.HandleFunc("/{id}", customerHandler.GetCustomer).Methods("GET")
	customersAPI.HandleFunc("/{id}", customerHandler.UpdateCustomer).Methods("PUT")
	customersAPI.HandleFunc("/{id}", customerHandler.DeleteCustomer).Methods("DELETE")

	// Orders API
	ordersAPI := r.PathPrefix("/api/orders").Subrouter()
	ordersAPI.Use(authMiddleware.Authenticate)
	ordersAPI.HandleFunc("", orderHandler.ListOrders).Methods("GET")
	ordersAPI.HandleFunc("", orderHandler.CreateOrder).Methods("POST")
	ordersAPI.HandleFunc("/{id}", orderHandler.GetOrder).Methods("GET")
	ordersAPI.HandleFunc("/{id}", orderHandler.UpdateOrder).Methods("PUT")
	ordersAPI.HandleFunc("/{id}", orderHandler.DeleteOrder).Methods("DELETE")
	ordersAPI.HandleFunc("/{id}/invoice", orderHandler.GenerateInvoice).Methods("POST")

	// Invoices API - fixed paths before /{id}
	invoicesAPI := r.PathPrefix("/api/invoices").Subrouter()
	invoicesAPI.Use(authMiddleware.Authenticate)
	invoicesAPI.HandleFunc("", invoiceHandler.ListInvoices).Methods("GET")
	invoicesAPI.HandleFunc("/stats", invoiceHandler.Stats).Methods("GET")
	invoicesAPI.HandleFunc("/orphaned", invoiceHandler.Orphaned).Methods("GET")
	invoicesAPI.HandleFunc("/templates", invoiceHandler.ListTemplates).Methods("GET")
	invoicesAPI.HandleFunc("/overdue-scan", invoiceHandler.OverdueScan).Methods("POST")
	invoicesAPI.HandleFunc("/{id}", invoiceHandler.GetInvoice).Methods("GET")
	invoicesAPI.HandleFunc("/{id}", invoiceHandler.DeleteInvoice).Methods("DELETE")
	invoicesAPI.HandleFunc("/{id}/send", invoiceHandler.SendInvoice).Methods("POST")
	invoicesAPI.HandleFunc("/{id}/payments", invoiceHandler.RecordPayment).Methods("POST")
	invoicesAPI.HandleFunc("/{id}/recurring-template", invoiceHandler.CreateRecurringTemplate).Methods("POST")

	// Invoice event stream
	eventsAPI := r.PathPrefix("/ws").Subrouter()
	eventsAPI.Use(authMiddleware.Authenticate)
	eventsAPI.HandleFunc("/invoices", eventsHandler).Methods("GET")

	// Health and metrics
	r.HandleFunc("/health", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/live", healthHandler.BasicHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler())

	return r
}
