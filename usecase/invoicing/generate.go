// Package invoicing drives the end-to-end invoice generation batch: fetch
// data, render, persist externally, reconcile drafts locally.
package invoicing

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/invoiceworks/backend/domain"
	"github.com/invoiceworks/backend/repository"
	"github.com/invoiceworks/backend/usecase"
	"github.com/invoiceworks/backend/usecase/billing"
)

// StorageCategory is the root folder rendered customer invoices land in.
const StorageCategory = "customers"

// Generator sequences one full invoice generation run for a calendar month.
type Generator struct {
	employers  repository.EmployerRepository
	customers  repository.CustomerRepository
	works      repository.WorkRepository
	reconciler *billing.Reconciler
	storage    usecase.DocumentStorage
	renderer   usecase.Renderer
	templates  usecase.TemplateSource
	logger     *zap.Logger
	now        func() time.Time
}

// NewGenerator wires the generation run from its ports.
func NewGenerator(
	employers repository.EmployerRepository,
	customers repository.CustomerRepository,
	works repository.WorkRepository,
	reconciler *billing.Reconciler,
	storage usecase.DocumentStorage,
	renderer usecase.Renderer,
	templates usecase.TemplateSource,
	logger *zap.Logger,
) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		employers:  employers,
		customers:  customers,
		works:      works,
		reconciler: reconciler,
		storage:    storage,
		renderer:   renderer,
		templates:  templates,
		logger:     logger,
		now:        time.Now,
	}
}

// Summary reports what one generation run did.
type Summary struct {
	RunID       string
	Period      domain.Period
	Invoices    int
	Created     int
	Updated     int
	FirstNumber int
	LastNumber  int
}

// Generate runs the batch for the given month. lastInvoiceNumber is the
// string-formatted number of the last invoice issued before this run;
// qualifying customers receive strictly increasing numbers from there, in
// the stable enumeration order of the customer set.
//
// Failures are fail-fast: the first storage or render error aborts the
// remainder of the run. Documents already uploaded when a later step fails
// stay in storage; uploads overwrite by name, so re-running the month is
// the recovery path.
func (g *Generator) Generate(ctx context.Context, period domain.Period, lastInvoiceNumber string) (Summary, error) {
	last, err := strconv.Atoi(strings.TrimSpace(lastInvoiceNumber))
	if err != nil {
		return Summary{}, domain.WrapError(domain.ErrCodeInvalid,
			fmt.Sprintf("invalid last invoice number %q", lastInvoiceNumber), err)
	}

	runID := uuid.NewString()
	log := g.logger.With(zap.String("run_id", runID), zap.String("period", period.String()))

	start, end := period.Bounds()
	log.Info("starting invoice generation",
		zap.Time("start_date", start),
		zap.Time("end_date", end),
		zap.Int("last_invoice_number", last),
	)

	employer, err := g.employers.Get(ctx)
	if err != nil {
		return Summary{}, err
	}

	records, err := g.works.ListRange(ctx, start, end)
	if err != nil {
		return Summary{}, err
	}
	customers, err := g.customers.ListBilledInRange(ctx, start, end)
	if err != nil {
		return Summary{}, err
	}
	if len(customers) == 0 {
		log.Info("no billable work in period, nothing to generate")
		return Summary{RunID: runID, Period: period, FirstNumber: last, LastNumber: last}, nil
	}

	itemsByCustomer := billing.GroupByCustomerAndDate(records, billing.Rates(customers))

	template, err := g.templates.CustomerTemplate(ctx)
	if err != nil {
		return Summary{}, err
	}
	folderID, err := g.storage.EnsureFolderPath(ctx, period.FolderPath(StorageCategory))
	if err != nil {
		return Summary{}, domain.WrapError(domain.ErrCodeStorage, "create period folder", err)
	}

	issueDate := g.now()
	staged := make([]billing.StagedDraft, 0, len(customers))

	for _, customer := range customers {
		items := itemsByCustomer[customer.ID]
		number := last + len(staged) + 1

		content := domain.NewInvoiceContent(
			number,
			issueDate,
			items,
			period,
			customer.Profile.Extended,
			customer.Profile.VAT,
			customer.Profile.Note,
		)

		renderCtx, err := billing.BuildRenderContext(customer, *employer, content)
		if err != nil {
			return Summary{}, err
		}
		tags := renderCtx.Tags()

		doc, err := g.renderer.Render(template, tags)
		if err != nil {
			return Summary{}, domain.WrapError(domain.ErrCodeRender,
				fmt.Sprintf("render invoice for customer %q", customer.Name), err)
		}

		filename := DocumentFilename(customer.Name, issueDate)
		fileID, err := g.storage.Upload(ctx, filename, doc, folderID)
		if err != nil {
			return Summary{}, domain.WrapError(domain.ErrCodeStorage,
				fmt.Sprintf("upload %s", filename), err)
		}
		if _, err := g.storage.ConvertToPDF(ctx, fileID, filename, folderID); err != nil {
			return Summary{}, domain.WrapError(domain.ErrCodeStorage,
				fmt.Sprintf("convert %s to pdf", filename), err)
		}

		document, err := json.Marshal(tags)
		if err != nil {
			return Summary{}, err
		}
		staged = append(staged, billing.StagedDraft{
			CustomerID: customer.ID,
			Document:   document,
		})

		log.Info("invoice generated",
			zap.String("customer", customer.Name),
			zap.Int("invoice_number", number),
			zap.String("file_id", fileID),
		)
	}

	result, err := g.reconciler.Reconcile(ctx, period, staged)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		RunID:       runID,
		Period:      period,
		Invoices:    len(staged),
		Created:     result.Created,
		Updated:     result.Updated,
		FirstNumber: last + 1,
		LastNumber:  last + len(staged),
	}
	log.Info("invoice generation finished",
		zap.Int("invoices", summary.Invoices),
		zap.Int("created", summary.Created),
		zap.Int("updated", summary.Updated),
	)
	return summary, nil
}

// DocumentFilename derives the storage filename of one rendered invoice,
// e.g. "acme_gmbh_2024_07_31.docx".
func DocumentFilename(customerName string, issueDate time.Time) string {
	name := strings.ToLower(customerName) + "_" + issueDate.Format("2006-01-02")
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	return name + ".docx"
}
