package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"erp-ledger/internal/app"
	"erp-ledger/internal/config"
	"erp-ledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "store:\n  driver: file\n  path: " + filepath.Join(dir, "data") + "\n" + extra
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(nil)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := Execute(context.Background(), root)
	return out.String(), err
}

func seedOrder(t *testing.T, cfgPath string) *models.Order {
	t.Helper()
	cfg, err := config.LoadFile(cfgPath)
	require.NoError(t, err)

	ctx := context.Background()
	a, err := app.New(ctx, cfg, nil)
	require.NoError(t, err)
	defer a.Close(ctx)

	order, err := a.Ledger.Orders.CreateOrder(ctx, &models.CreateOrderRequest{
		CustomerID: "1",
		Items: []models.LineItemInput{
			{ProductID: "1", Quantity: models.NewNumber(2), UnitPrice: models.NewNumber(100), DiscountPercent: models.NewNumber(10)},
		},
		TaxRatePercent: models.NewNumber(10),
		ShippingCost:   models.NewNumber(5),
	})
	require.NoError(t, err)
	return order
}

func TestInvoiceWorkflowThroughCLI(t *testing.T) {
	cfgPath := writeConfig(t, "")
	order := seedOrder(t, cfgPath)

	out, err := run(t, "--config", cfgPath, "orders", "list")
	require.NoError(t, err)
	assert.Contains(t, out, order.OrderNumber)

	out, err = run(t, "--config", cfgPath, "invoices", "generate", order.ID)
	require.NoError(t, err)
	var inv models.Invoice
	require.NoError(t, json.Unmarshal([]byte(out), &inv))
	assert.Equal(t, order.ID, inv.OrderID)

	_, err = run(t, "--config", cfgPath, "invoices", "send", inv.ID)
	require.NoError(t, err)

	out, err = run(t, "--config", cfgPath, "payments", "record", inv.ID, "--amount", "203.00", "--method", "wire")
	require.NoError(t, err)
	var paid models.Invoice
	require.NoError(t, json.Unmarshal([]byte(out), &paid))
	assert.Equal(t, models.InvoiceStatusPaid, paid.Status)

	out, err = run(t, "--config", cfgPath, "invoices", "list", "--status", "paid")
	require.NoError(t, err)
	assert.Contains(t, out, inv.InvoiceNumber)

	out, err = run(t, "--config", cfgPath, "stats")
	require.NoError(t, err)
	var stats models.InvoiceStats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 1, stats.Paid)

	out, err = run(t, "--config", cfgPath, "overdue", "scan")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "0 invoice(s)"))
}

func TestCLIErrors(t *testing.T) {
	cfgPath := writeConfig(t, "")

	_, err := run(t, "--config", cfgPath, "invoices", "send", "missing")
	assert.Error(t, err)

	_, err = run(t, "--config", cfgPath, "payments", "record", "missing")
	assert.Error(t, err, "amount flag is required")
}

func TestTokenIssue(t *testing.T) {
	_, err := run(t, "--config", writeConfig(t, ""), "token", "issue")
	assert.Error(t, err)

	out, err := run(t, "--config", writeConfig(t, "auth:\n  jwt_secret: test-secret\n"), "token", "issue", "--subject", "billing")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "."), 3)
}
