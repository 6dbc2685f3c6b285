package invoicing

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/invoiceworks/backend/domain"
	"github.com/invoiceworks/backend/repository"
	"github.com/invoiceworks/backend/usecase"
	"github.com/invoiceworks/backend/usecase/billing"
)

// BackupFolder is the storage path draft backups are written to.
const BackupFolder = "backups"

// BackupFilename is the name of the draft backup document in storage.
const BackupFilename = "invoices.json"

// backupEntry is the wire form of one draft row inside a backup document.
type backupEntry struct {
	CustomerID int64           `json:"customer_id"`
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	Document   json.RawMessage `json:"document"`
}

// Archiver copies persisted drafts to external storage and restores them
// back. Restore goes through the reconciler, so replaying a backup over a
// live database updates rows instead of duplicating them.
type Archiver struct {
	drafts     repository.DraftRepository
	reconciler *billing.Reconciler
	storage    usecase.DocumentStorage
	logger     *zap.Logger
}

// NewArchiver wires an Archiver from its ports.
func NewArchiver(
	drafts repository.DraftRepository,
	reconciler *billing.Reconciler,
	storage usecase.DocumentStorage,
	logger *zap.Logger,
) *Archiver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Archiver{
		drafts:     drafts,
		reconciler: reconciler,
		storage:    storage,
		logger:     logger,
	}
}

// Backup uploads all persisted drafts as one JSON document and returns the
// storage file ID of the backup.
func (a *Archiver) Backup(ctx context.Context) (string, error) {
	drafts, err := a.drafts.ListAll(ctx)
	if err != nil {
		return "", err
	}

	entries := make([]backupEntry, 0, len(drafts))
	for _, d := range drafts {
		entries = append(entries, backupEntry{
			CustomerID: d.CustomerID,
			Year:       d.Year,
			Month:      d.Month,
			Document:   d.Document,
		})
	}
	payload, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", err
	}

	folderID, err := a.storage.EnsureFolderPath(ctx, BackupFolder)
	if err != nil {
		return "", domain.WrapError(domain.ErrCodeStorage, "create backup folder", err)
	}
	fileID, err := a.storage.Upload(ctx, BackupFilename, payload, folderID)
	if err != nil {
		return "", domain.WrapError(domain.ErrCodeStorage, "upload draft backup", err)
	}

	a.logger.Info("drafts backed up",
		zap.Int("drafts", len(entries)),
		zap.String("file_id", fileID),
	)
	return fileID, nil
}

// Restore downloads a backup document by file ID and re-persists its
// drafts period by period.
func (a *Archiver) Restore(ctx context.Context, fileID string) error {
	data, err := a.storage.Download(ctx, fileID)
	if err != nil {
		return domain.WrapError(domain.ErrCodeStorage, "download draft backup", err)
	}

	var entries []backupEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return domain.WrapError(domain.ErrCodeInvalid, "malformed draft backup", err)
	}

	byPeriod := make(map[domain.Period][]billing.StagedDraft)
	for _, e := range entries {
		period := domain.Period{Year: e.Year, Month: e.Month}
		byPeriod[period] = append(byPeriod[period], billing.StagedDraft{
			CustomerID: e.CustomerID,
			Document:   e.Document,
		})
	}

	restored := 0
	for period, staged := range byPeriod {
		result, err := a.reconciler.Reconcile(ctx, period, staged)
		if err != nil {
			return err
		}
		restored += result.Created + result.Updated
	}

	a.logger.Info("drafts restored", zap.Int("drafts", restored))
	return nil
}
