// Package cli wires the invoicer commands: batch generation, work
// recording, seeding and draft backup/restore.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/invoiceworks/backend/internal/config"
	driveInfra "github.com/invoiceworks/backend/internal/infrastructure/drive"
	pgInfra "github.com/invoiceworks/backend/internal/infrastructure/postgres"
	"github.com/invoiceworks/backend/internal/infrastructure/render"
	"github.com/invoiceworks/backend/internal/infrastructure/templatecache"
	"github.com/invoiceworks/backend/internal/services"
	"github.com/invoiceworks/backend/pkg/logger"
	"github.com/invoiceworks/backend/repository"
	"github.com/invoiceworks/backend/repository/postgres"
	"github.com/invoiceworks/backend/usecase"
	"github.com/invoiceworks/backend/usecase/billing"
	"github.com/invoiceworks/backend/usecase/invoicing"
	"github.com/invoiceworks/backend/usecase/registry"
	"github.com/invoiceworks/backend/usecase/worklog"
)

var rootCmd = &cobra.Command{
	Use:           "invoicer",
	Short:         "Back-office invoicing: track billable work, generate monthly customer invoices",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(
		generateCmd,
		workdayCmd,
		seedCmd,
		backupCmd,
		restoreCmd,
		scheduleCmd,
	)
}

// app holds the wired dependency graph of one command invocation.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	pool   *pgxpool.Pool

	works     repository.WorkRepository
	customers repository.CustomerRepository
	employees repository.EmployeeRepository
	employers repository.EmployerRepository
	drafts    repository.DraftRepository

	storage usecase.DocumentStorage
	cache   *templatecache.Store
}

// newApp loads configuration, connects the database and builds the
// repositories. Drive access is attached separately by the commands that
// need it.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	pool, err := pgInfra.NewPool(ctx, cfg.Database, zapLogger)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	return &app{
		cfg:       cfg,
		logger:    zapLogger,
		pool:      pool,
		works:     postgres.NewWorkRepository(pool),
		customers: postgres.NewCustomerRepository(pool),
		employees: postgres.NewEmployeeRepository(pool),
		employers: postgres.NewEmployerRepository(pool),
		drafts:    postgres.NewDraftRepository(pool),
	}, nil
}

// withDrive attaches the Drive storage adapter and the template cache.
func (a *app) withDrive(ctx context.Context) error {
	storage, err := driveInfra.New(ctx, a.cfg.Drive.CredentialsFile, a.cfg.Drive.RootFolderID, a.logger)
	if err != nil {
		return fmt.Errorf("drive: %w", err)
	}
	cache, err := templatecache.Open(a.cfg.Templates.CachePath, a.cfg.Templates.CacheTTL)
	if err != nil {
		return fmt.Errorf("template cache: %w", err)
	}
	a.storage = storage
	a.cache = cache
	return nil
}

func (a *app) reconciler() *billing.Reconciler {
	return billing.NewReconciler(a.drafts, a.logger)
}

func (a *app) generator() *invoicing.Generator {
	templates := services.NewTemplateSource(
		a.storage,
		a.cache,
		a.cfg.Templates.CustomerTemplateFileID,
		a.logger,
	)
	return invoicing.NewGenerator(
		a.employers,
		a.customers,
		a.works,
		a.reconciler(),
		a.storage,
		render.NewDocxRenderer(),
		templates,
		a.logger,
	)
}

func (a *app) archiver() *invoicing.Archiver {
	return invoicing.NewArchiver(a.drafts, a.reconciler(), a.storage, a.logger)
}

func (a *app) worklog() *worklog.UseCase {
	return worklog.New(a.works, a.employees, a.logger)
}

func (a *app) registry() *registry.Service {
	return registry.New(a.customers, a.employees, a.employers, a.logger)
}

func (a *app) close() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("failed to close template cache", zap.Error(err))
		}
	}
	pgInfra.Close(a.pool, a.logger)
	_ = a.logger.Sync()
}
