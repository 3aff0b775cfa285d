package services

import (
	"context"

	"erp-ledger/internal/models"
)

// OrderService manages orders and keeps their totals priced
type OrderService struct {
	ws *Workspace
}

func NewOrderService(ws *Workspace) *OrderService {
	return &OrderService{ws: ws}
}

// CreateOrder assigns identity, defaults the status to draft and prices the order
func (s *OrderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	status := req.Status
	if status == "" {
		status = models.OrderStatusDraft
	}
	if !status.Valid() {
		return nil, NewValidationError("status", status, "unknown order status")
	}

	items := NormalizeItems(req.Items)
	totals, err := OrderTotals(items, req.TaxRatePercent.NonNegative(), req.ShippingCost.NonNegative(), req.DiscountAmount.NonNegative())
	if err != nil {
		return nil, err
	}

	ws := s.ws
	ws.mu.Lock()
	defer ws.mu.Unlock()

	order := models.Order{
		ID:             ws.ids.NewID(),
		OrderNumber:    ws.ids.OrderNumber(),
		CustomerID:     req.CustomerID,
		Items:          items,
		DiscountAmount: req.DiscountAmount.NonNegative().Round(2),
		TaxRatePercent: req.TaxRatePercent.NonNegative(),
		ShippingCost:   req.ShippingCost.NonNegative().Round(2),
		Subtotal:       totals.Subtotal,
		Tax:            totals.Tax,
		Total:          totals.Total,
		Status:         status,
		CreatedAt:      ws.clock.Now(),
	}

	ws.orders = append(ws.orders, order)
	ws.saveOrders(ctx)

	ws.log.Info().Str("order_id", order.ID).Str("order_number", order.OrderNumber).
		Str("total", order.Total.StringFixed(2)).Msg("Order created")
	return cloneOrder(order), nil
}

// UpdateOrder merges the supplied fields and re-prices the order
func (s *OrderService) UpdateOrder(ctx context.Context, id string, req *models.UpdateOrderRequest) (*models.Order, error) {
	if req.Status != nil && !req.Status.Valid() {
		return nil, NewValidationError("status", *req.Status, "unknown order status")
	}

	ws := s.ws
	ws.mu.Lock()
	defer ws.mu.Unlock()

	idx := ws.orderIndex(id)
	if idx < 0 {
		return nil, newLedgerError("UpdateOrder", ErrNotFound, "order "+id)
	}
	order := *cloneOrder(ws.orders[idx])

	if req.CustomerID != nil {
		order.CustomerID = *req.CustomerID
	}
	if req.Items != nil {
		order.Items = NormalizeItems(*req.Items)
	}
	if req.DiscountAmount != nil {
		order.DiscountAmount = req.DiscountAmount.NonNegative().Round(2)
	}
	if req.TaxRatePercent != nil {
		order.TaxRatePercent = req.TaxRatePercent.NonNegative()
	}
	if req.ShippingCost != nil {
		order.ShippingCost = req.ShippingCost.NonNegative().Round(2)
	}
	if req.Status != nil {
		order.Status = *req.Status
	}

	if req.Items != nil || req.DiscountAmount != nil || req.TaxRatePercent != nil || req.ShippingCost != nil {
		totals, err := OrderTotals(order.Items, order.TaxRatePercent, order.ShippingCost, order.DiscountAmount)
		if err != nil {
			return nil, err
		}
		order.Subtotal = totals.Subtotal
		order.Tax = totals.Tax
		order.Total = totals.Total
	}

	order.UpdatedAt = timePtr(ws.clock.Now())
	ws.orders[idx] = order
	ws.saveOrders(ctx)

	return cloneOrder(order), nil
}

// DeleteOrder removes the order. Invoices that reference it are left alone.
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	ws := s.ws
	ws.mu.Lock()
	defer ws.mu.Unlock()

	idx := ws.orderIndex(id)
	if idx < 0 {
		return newLedgerError("DeleteOrder", ErrNotFound, "order "+id)
	}
	ws.orders = append(ws.orders[:idx], ws.orders[idx+1:]...)
	ws.saveOrders(ctx)

	ws.log.Info().Str("order_id", id).Msg("Order deleted")
	return nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	ws := s.ws
	ws.mu.Lock()
	defer ws.mu.Unlock()

	idx := ws.orderIndex(id)
	if idx < 0 {
		return nil, newLedgerError("GetOrder", ErrNotFound, "order "+id)
	}
	return cloneOrder(ws.orders[idx]), nil
}

func (s *OrderService) ListOrders(ctx context.Context) ([]*models.Order, error) {
	ws := s.ws
	ws.mu.Lock()
	defer ws.mu.Unlock()

	orders := make([]*models.Order, 0, len(ws.orders))
	for _, o := range ws.orders {
		orders = append(orders, cloneOrder(o))
	}
	return orders, nil
}
