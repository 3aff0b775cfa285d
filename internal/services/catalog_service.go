package services

import (
	"context"
	"strings"

	"erp-ledger/internal/models"
)

// CatalogService manages the product and customer reference collections
type CatalogService struct {
	ws *Workspace
}

func NewCatalogService(ws *Workspace) *CatalogService {
	return &CatalogService{ws: ws}
}

// DefaultCustomerStatus is assigned to customers created without a status
const DefaultCustomerStatus = "Active"

func (s *CatalogService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, NewValidationError("name", req.Name, "product name is required")
	}

	ws := s.ws
	ws.mu.Lock()
	defer ws.mu.Unlock()

	product := models.Product{
		ID:        ws.ids.NewID(),
		Name:      strings.TrimSpace(req.Name),
		SKU:       strings.TrimSpace(req.SKU),
		Stock:     req.Stock.Int(),
		UnitPrice: req.UnitPrice.NonNegative().Round(2),
		CreatedAt: ws.clock.Now(),
	}
	ws.products = append(ws.products, product)
	ws.saveProducts(ctx)

	return &product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, NewValidationError("name", *req.Name, "product name is required")
	}

	ws := s.ws
	ws.mu.Lock()
	defer ws.mu.Unlock()

	idx := ws.productIndex(id)
	if idx < 0 {
		return nil, newLedgerError("UpdateProduct", ErrNotFound, "product "+id)
	}
	product := ws.products[idx]

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.SKU != nil {
		product.SKU = strings.TrimSpace(*req.SKU)
	}
	if req.Stock != nil {
		product.Stock = req.Stock.Int()
	}
	if req.UnitPrice != nil {
		product.UnitPrice = req.UnitPrice.NonNegative().Round(2)
	}
	product.UpdatedAt = timePtr(ws.clock.Now())

	ws.products[idx] = product
	ws.saveProducts(ctx)
	return &product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	ws := s.ws
	ws.mu.Lock()
	defer ws.mu.Unlock()

	idx := ws.productIndex(id)
	if idx < 0 {
		return newLedgerError("DeleteProduct", ErrNotFound, "product "+id)
	}
	ws.products = append(ws.products[:idx], ws.products[idx+1:]...)
	ws.saveProducts(ctx)
	return nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	ws := s.ws
	ws.mu.Lock()
	defer ws.mu.Unlock()

	idx := ws.productIndex(id)
	if idx < 0 {
		return nil, newLedgerError("GetProduct", ErrNotFound, "product "+id)
	}
	product := ws.products[idx]
	return &product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	ws := s.ws
	ws.mu.Lock()
	defer ws.mu.Unlock()

	products := make([]*models.Product, 0, len(ws.products))
	for i := range ws.products {
		p := ws.products[i]
		products = append(products, &p)
	}
	return products, nil
}

func (s *CatalogService) CreateCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, NewValidationError("name", req.Name, "customer name is required")
	}

	ws := s.ws
	ws.mu.Lock()
	defer ws.mu.Unlock()

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = DefaultCustomerStatus
	}
	customer := models.Customer{
		ID:        ws.ids.NewID(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Status:    status,
		CreatedAt: ws.clock.Now(),
	}
	ws.customers = append(ws.customers, customer)
	ws.saveCustomers(ctx)

	return &customer, nil
}

func (s *CatalogService) UpdateCustomer(ctx context.Context, id string, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, NewValidationError("name", *req.Name, "customer name is required")
	}

	ws := s.ws
	ws.mu.Lock()
	defer ws.mu.Unlock()

	idx := ws.customerIndex(id)
	if idx < 0 {
		return nil, newLedgerError("UpdateCustomer", ErrNotFound, "customer "+id)
	}
	customer := ws.customers[idx]

	if req.Name != nil {
		customer.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		customer.Email = strings.TrimSpace(*req.Email)
	}
	if req.Status != nil {
		customer.Status = strings.TrimSpace(*req.Status)
	}
	customer.UpdatedAt = timePtr(ws.clock.Now())

	ws.customers[idx] = customer
	ws.saveCustomers(ctx)
	return &customer, nil
}

func (s *CatalogService) DeleteCustomer(ctx context.Context, id string) error {
	ws := s.ws
	ws.mu.Lock()
	defer ws.mu.Unlock()

	idx := ws.customerIndex(id)
	if idx < 0 {
		return newLedgerError("DeleteCustomer", ErrNotFound, "customer "+id)
	}
	ws.customers = append(ws.customers[:idx], ws.customers[idx+1:]...)
	ws.saveCustomers(ctx)
	return nil
}

func (s *CatalogService) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	ws := s.ws
	ws.mu.Lock()
	defer ws.mu.Unlock()

	idx := ws.customerIndex(id)
	if idx < 0 {
		return nil, newLedgerError("GetCustomer", ErrNotFound, "customer "+id)
	}
	customer := ws.customers[idx]
	return &customer, nil
}

func (s *CatalogService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	ws := s.ws
	ws.mu.Lock()
	defer ws.mu.Unlock()

	customers := make([]*models.Customer, 0, len(ws.customers))
	for i := range ws.customers {
		c := ws.customers[i]
		customers = append(customers, &c)
	}
	return customers, nil
}
