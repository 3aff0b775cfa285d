package cli

import (
	"fmt"
	"time"

	"erp-ledger/internal/app"
	"erp-ledger/internal/auth"
	"erp-ledger/internal/models"

	"github.com/spf13/cobra"
)

func newOrdersCmd(r *runner) *cobra.Command {
	orders := &cobra.Command{Use: "orders", Short: "Inspect orders"}
	orders.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(a *app.App) error {
				list, err := a.Ledger.Orders.ListOrders(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), list)
			})
		},
	})
	return orders
}

func newInvoicesCmd(r *runner) *cobra.Command {
	invoices := &cobra.Command{Use: "invoices", Short: "Generate, send and list invoices"}

	var status, query string
	list := &cobra.Command{
		Use:     "list",
		Short:   "List invoices, optionally filtered",
		Example: "  ledgerctl invoices list --status overdue\n  ledgerctl invoices list -q acme",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(a *app.App) error {
				list, err := a.Ledger.Invoices.ListInvoices(cmd.Context(), models.InvoiceFilter{
					Status: models.InvoiceStatus(status),
					Search: query,
				})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), list)
			})
		},
	}
	list.Flags().StringVar(&status, "status", "", "only invoices in this status")
	list.Flags().StringVarP(&query, "query", "q", "", "match invoice number or customer name")

	generate := &cobra.Command{
		Use:   "generate <order-id>",
		Short: "Generate the invoice for an order (returns the existing one if already invoiced)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(a *app.App) error {
				inv, _, err := a.Ledger.Invoices.GenerateFromOrder(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), inv)
			})
		},
	}

	send := &cobra.Command{
		Use:   "send <invoice-id>",
		Short: "Mark a draft invoice as sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(a *app.App) error {
				inv, err := a.Ledger.Invoices.SendInvoice(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), inv)
			})
		},
	}

	invoices.AddCommand(list, generate, send)
	return invoices
}

func newPaymentsCmd(r *runner) *cobra.Command {
	payments := &cobra.Command{Use: "payments", Short: "Record payments against invoices"}

	var amount, method, reference, notes, key string
	record := &cobra.Command{
		Use:     "record <invoice-id>",
		Short:   "Apply a payment to an invoice",
		Example: "  ledgerctl payments record 1f6c... --amount 103.00 --method bank_transfer",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(a *app.App) error {
				inv, err := a.Ledger.Payments.RecordPayment(cmd.Context(), args[0], &models.RecordPaymentRequest{
					Amount:         models.NumberFromString(amount),
					Method:         method,
					Reference:      reference,
					Notes:          notes,
					IdempotencyKey: key,
				})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), inv)
			})
		},
	}
	record.Flags().StringVar(&amount, "amount", "", "payment amount")
	record.Flags().StringVar(&method, "method", "cash", "payment method")
	record.Flags().StringVar(&reference, "reference", "", "external reference")
	record.Flags().StringVar(&notes, "notes", "", "free-form notes")
	record.Flags().StringVar(&key, "idempotency-key", "", "ignore the payment if this key was already applied")
	record.MarkFlagRequired("amount")

	payments.AddCommand(record)
	return payments
}

func newOverdueCmd(r *runner) *cobra.Command {
	overdue := &cobra.Command{Use: "overdue", Short: "Overdue detection"}
	overdue.AddCommand(&cobra.Command{
		Use:   "scan",
		Short: "Mark past-due invoices overdue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(a *app.App) error {
				updates, err := a.Ledger.Overdue.Scan(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d invoice(s) marked overdue\n", len(updates))
				return nil
			})
		},
	})
	return overdue
}

func newStatsCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show invoice counts and totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(a *app.App) error {
				stats, err := a.Ledger.Invoices.Stats(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), stats)
			})
		},
	}
}

func newTokenCmd(r *runner) *cobra.Command {
	token := &cobra.Command{Use: "token", Short: "API bearer tokens"}

	var subject, role string
	issue := &cobra.Command{
		Use:   "issue",
		Short: "Issue a bearer token signed with auth.jwt_secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := r.config()
			if err != nil {
				return err
			}
			manager := auth.NewJWTManager(cfg)
			if manager == nil {
				return fmt.Errorf("auth.jwt_secret is not set; the API accepts unauthenticated requests")
			}
			signed, err := manager.GenerateToken(subject, role, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}
	issue.Flags().StringVar(&subject, "subject", "ledgerctl", "token subject")
	issue.Flags().StringVar(&role, "role", "operator", "token role claim")

	token.AddCommand(issue)
	return token
}
