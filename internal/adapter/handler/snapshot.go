package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/classpulse/backend/errors"
	"github.com/classpulse/backend/internal/infrastructure/storage"
)

// Snapshot handles lecture snapshot uploads and listing
type Snapshot struct {
	store  *storage.SnapshotStore
	logger *zap.Logger
}

// NewSnapshot creates a new snapshot handler
func NewSnapshot(store *storage.SnapshotStore, logger *zap.Logger) *Snapshot {
	return &Snapshot{
		store:  store,
		logger: logger,
	}
}

// presigned snapshot URLs stay valid long enough for a dashboard session
const snapshotURLExpiry = 1 * time.Hour

// Upload stores one snapshot image for a lecture
// POST /v1/lectures/:id/snapshots (multipart, field "file")
func (h *Snapshot) Upload(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("missing file upload"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("open upload", err))
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	objectName, err := h.store.SaveSnapshot(ctx, id.String(), src, fileHeader.Size, contentType)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("save snapshot", err))
	}

	url, err := h.store.SnapshotURL(ctx, objectName, snapshotURLExpiry)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("presign snapshot", err))
	}

	return HandleSuccess(h.logger, c, map[string]string{
		"object": objectName,
		"url":    url,
	})
}

// List returns presigned URLs for all snapshots of a lecture
// GET /v1/lectures/:id/snapshots
func (h *Snapshot) List(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	objects, err := h.store.ListSnapshots(ctx, id.String())
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("list snapshots", err))
	}

	type snapshot struct {
		Object string `json:"object"`
		URL    string `json:"url"`
	}
	out := make([]snapshot, 0, len(objects))
	for _, object := range objects {
		url, err := h.store.SnapshotURL(ctx, object, snapshotURLExpiry)
		if err != nil {
			h.logger.Warn("snapshot presign failed",
				zap.String("object", object), zap.Error(err))
			continue
		}
		out = append(out, snapshot{Object: object, URL: url})
	}

	return HandleSuccess(h.logger, c, out)
}
