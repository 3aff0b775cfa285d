package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"erp-ledger/internal/app"
	"erp-ledger/internal/config"
	"erp-ledger/internal/logger"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

// Loader builds the ledger a command runs against
type Loader func(ctx context.Context, cfg *config.Config) (*app.App, error)

type runner struct {
	configPath string
	loadConfig func(path string) (*config.Config, error)
	load       Loader
}

// NewRootCmd assembles ledgerctl. A nil loader opens the configured store.
func NewRootCmd(load Loader) *cobra.Command {
	r := &runner{loadConfig: config.LoadFile, load: load}
	if r.load == nil {
		r.load = func(ctx context.Context, cfg *config.Config) (*app.App, error) {
			return app.New(ctx, cfg, nil)
		}
	}

	root := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Operate the order-to-invoice ledger from the command line",
		Long: `ledgerctl works directly against the configured ledger store: list
orders and invoices, generate and send invoices, record payments and run
the overdue scan. It reads the same configuration as the API server.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&r.configPath, "config", "c", "configs/config.yaml", "path to the config file")

	root.AddCommand(
		newOrdersCmd(r),
		newInvoicesCmd(r),
		newPaymentsCmd(r),
		newOverdueCmd(r),
		newStatsCmd(r),
		newTokenCmd(r),
	)
	return root
}

// Execute runs ledgerctl and reports failures on stderr
func Execute(ctx context.Context, root *cobra.Command) error {
	log := logger.WithComponent("cmd")

	if err := root.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("Command execution failed")
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}

func (r *runner) config() (*config.Config, error) {
	return r.loadConfig(r.configPath)
}

// withApp opens the ledger, runs fn and closes the ledger so pending writes flush
func (r *runner) withApp(cmd *cobra.Command, fn func(a *app.App) error) error {
	cfg, err := r.config()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx := cmd.Context()
	a, err := r.load(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	return fn(a)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
