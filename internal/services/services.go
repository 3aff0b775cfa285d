package services

// Ledger bundles the services that share one workspace
type Ledger struct {
	Workspace *Workspace
	Orders    *OrderService
	Catalog   *CatalogService
	Invoices  *InvoiceService
	Payments  *PaymentService
	Overdue   *OverdueService
	Recurring *RecurringService
}

func NewLedger(ws *Workspace) *Ledger {
	return &Ledger{
		Workspace: ws,
		Orders:    NewOrderService(ws),
		Catalog:   NewCatalogService(ws),
		Invoices:  NewInvoiceService(ws),
		Payments:  NewPaymentService(ws),
		Overdue:   NewOverdueService(ws),
		Recurring: NewRecurringService(ws),
	}
}
