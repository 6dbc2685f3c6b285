// Package drive adapts Google Drive v3 to the usecase.DocumentStorage port.
package drive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/invoiceworks/backend/usecase"
)

const (
	folderMimeType = "application/vnd.google-apps.folder"
	docMimeType    = "application/vnd.google-apps.document"
	pdfMimeType    = "application/pdf"
)

// Client talks to Google Drive below a fixed root folder.
type Client struct {
	service      *drive.Service
	rootFolderID string
	logger       *zap.Logger
}

var _ usecase.DocumentStorage = (*Client)(nil)

// New builds a Drive client from a service-account credentials file.
func New(ctx context.Context, credentialsFile, rootFolderID string, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	creds, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read drive credentials: %w", err)
	}
	jwtCfg, err := google.JWTConfigFromJSON(creds, drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("parse drive credentials: %w", err)
	}

	service, err := drive.NewService(ctx, option.WithHTTPClient(jwtCfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	return &Client{
		service:      service,
		rootFolderID: rootFolderID,
		logger:       logger,
	}, nil
}

// Download fetches the raw bytes of a file.
func (c *Client) Download(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := c.service.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// Upload stores data under filename inside the parent folder. An existing
// file of the same name in that folder is updated in place, so repeated
// uploads of the same invoice overwrite instead of piling up copies.
func (c *Client) Upload(ctx context.Context, filename string, data []byte, parentID string) (string, error) {
	existing, err := c.findFile(ctx, filename, parentID)
	if err != nil {
		return "", err
	}

	if existing != nil {
		_, err := c.service.Files.
			Update(existing.Id, &drive.File{}).
			Media(bytes.NewReader(data)).
			Context(ctx).
			Do()
		if err != nil {
			return "", err
		}
		c.logger.Debug("drive file updated", zap.String("name", filename), zap.String("id", existing.Id))
		return existing.Id, nil
	}

	created, err := c.service.Files.
		Create(&drive.File{Name: filename, Parents: []string{parentID}}).
		Media(bytes.NewReader(data)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	c.logger.Debug("drive file created", zap.String("name", filename), zap.String("id", created.Id))
	return created.Id, nil
}

// EnsureFolderPath walks a slash-delimited path below the root folder,
// creating each missing segment, and returns the final folder ID.
func (c *Client) EnsureFolderPath(ctx context.Context, path string) (string, error) {
	parentID := c.rootFolderID
	for _, segment := range strings.Split(strings.Trim(path, "/"), "/") {
		if segment == "" {
			continue
		}
		id, err := c.getOrCreateFolder(ctx, segment, parentID)
		if err != nil {
			return "", err
		}
		parentID = id
	}
	return parentID, nil
}

// ConvertToPDF derives a PDF from an uploaded document by copying it as a
// Google document, exporting that copy as PDF and storing the result in a
// "pdf" subfolder. The intermediate copy is deleted.
func (c *Client) ConvertToPDF(ctx context.Context, fileID, filename, folderID string) (string, error) {
	pdfName := strings.TrimSuffix(filename, ".docx") + ".pdf"

	copied, err := c.service.Files.
		Copy(fileID, &drive.File{MimeType: docMimeType}).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	defer func() {
		if err := c.service.Files.Delete(copied.Id).Context(ctx).Do(); err != nil {
			c.logger.Warn("failed to delete conversion copy", zap.String("id", copied.Id), zap.Error(err))
		}
	}()

	resp, err := c.service.Files.Export(copied.Id, pdfMimeType).Context(ctx).Download()
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	pdfFolderID, err := c.getOrCreateFolder(ctx, "pdf", folderID)
	if err != nil {
		return "", err
	}
	return c.Upload(ctx, pdfName, content, pdfFolderID)
}

// Delete removes a file.
func (c *Client) Delete(ctx context.Context, fileID string) error {
	return c.service.Files.Delete(fileID).Context(ctx).Do()
}

// LatestMonthFolder locates the newest year/month folder pair below the
// given category folder, both compared numerically descending.
func (c *Client) LatestMonthFolder(ctx context.Context, category string) (*usecase.FolderInfo, error) {
	categoryID, err := c.findFolder(ctx, category, c.rootFolderID)
	if err != nil {
		return nil, err
	}
	if categoryID == "" {
		return nil, fmt.Errorf("no %s folder found", category)
	}

	latestYear, err := c.latestNumericSubfolder(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if latestYear == nil {
		return nil, fmt.Errorf("no year folders found under %s", category)
	}

	latestMonth, err := c.latestNumericSubfolder(ctx, latestYear.Id)
	if err != nil {
		return nil, err
	}
	if latestMonth == nil {
		return nil, fmt.Errorf("no month folders found in year %s", latestYear.Name)
	}

	return &usecase.FolderInfo{
		ID:   latestMonth.Id,
		Name: latestMonth.Name,
		Year: latestYear.Name,
		Path: fmt.Sprintf("%s/%s/%s", category, latestYear.Name, latestMonth.Name),
	}, nil
}

func (c *Client) findFile(ctx context.Context, filename, parentID string) (*drive.File, error) {
	query := fmt.Sprintf(
		"name = '%s' and mimeType != '%s' and trashed = false",
		escapeQuery(filename), folderMimeType,
	)
	if parentID != "" {
		query += fmt.Sprintf(" and '%s' in parents", parentID)
	}

	list, err := c.service.Files.List().Q(query).Fields("files(id, name)").Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	if len(list.Files) == 0 {
		return nil, nil
	}
	return list.Files[0], nil
}

func (c *Client) findFolder(ctx context.Context, name, parentID string) (string, error) {
	query := fmt.Sprintf(
		"name = '%s' and mimeType = '%s' and '%s' in parents and trashed = false",
		escapeQuery(name), folderMimeType, parentID,
	)
	list, err := c.service.Files.List().Q(query).Fields("files(id, name)").Context(ctx).Do()
	if err != nil {
		return "", err
	}
	if len(list.Files) == 0 {
		return "", nil
	}
	return list.Files[0].Id, nil
}

func (c *Client) getOrCreateFolder(ctx context.Context, name, parentID string) (string, error) {
	id, err := c.findFolder(ctx, name, parentID)
	if err != nil {
		return "", err
	}
	if id != "" {
		return id, nil
	}

	folder, err := c.service.Files.
		Create(&drive.File{
			Name:     name,
			MimeType: folderMimeType,
			Parents:  []string{parentID},
		}).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	return folder.Id, nil
}

func (c *Client) latestNumericSubfolder(ctx context.Context, parentID string) (*drive.File, error) {
	query := fmt.Sprintf(
		"'%s' in parents and mimeType = '%s' and trashed = false",
		parentID, folderMimeType,
	)
	list, err := c.service.Files.List().Q(query).Fields("files(id, name)").Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	folders := list.Files
	if len(folders) == 0 {
		return nil, nil
	}

	sort.Slice(folders, func(i, j int) bool {
		a, _ := strconv.Atoi(folders[i].Name)
		b, _ := strconv.Atoi(folders[j].Name)
		return a > b
	})
	return folders[0], nil
}

// escapeQuery escapes a literal for the Drive query grammar. Backslashes
// must be doubled before quotes are escaped, or the added escapes would be
// escaped themselves.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", `\'`)
}
