package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/filmhub/swapper-api/internal/config"
	"github.com/filmhub/swapper-api/internal/queue"
	"github.com/filmhub/swapper-api/internal/repository"
	"github.com/filmhub/swapper-api/internal/storage"
)

// ImageHandler bundles dependencies for the swapper image endpoints.
type ImageHandler struct {
	Cfg     config.Config
	Images  *repository.ImageRepo
	Files   *storage.FileStore
	Publish Publisher
}

func NewImageHandler(cfg config.Config, images *repository.ImageRepo, files *storage.FileStore, pub Publisher) *ImageHandler {
	return &ImageHandler{Cfg: cfg, Images: images, Files: files, Publish: pub}
}

func (h *ImageHandler) imageURL(c echo.Context, id uint64) string {
	return fmt.Sprintf("%s/api/swapper/image/%d", publicBaseURL(h.Cfg, c), id)
}

// List handles GET /api/swapper/images.  Each record carries a
// download URL derived from its id; the storage path itself stays
// private.
func (h *ImageHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	images, err := h.Images.ListAll(ctx)
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "could not list images")
	}
	for i := range images {
		images[i].ImageURL = h.imageURL(c, images[i].ID)
	}
	return respondOK(c, http.StatusOK, "", echo.Map{
		"images": images,
		"count":  len(images),
	})
}

// Upload handles POST /api/swapper/upload.  The multipart field must
// be named "image", carry an allow-listed extension and stay under
// the configured size cap.  The file is written to disk before the
// record is inserted; if the insert fails the fresh file is removed
// again so no orphan remains.
func (h *ImageHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "no file uploaded")
	}
	if fh.Filename == "" {
		return respondErr(c, http.StatusBadRequest, "no file selected")
	}
	if !storage.Allowed(fh.Filename) {
		return respondErr(c, http.StatusBadRequest,
			"unsupported file type. allowed formats: png, jpg, jpeg, gif, bmp, webp")
	}
	if fh.Size > h.Cfg.MaxUploadBytes {
		return respondErr(c, http.StatusBadRequest,
			fmt.Sprintf("file too large (max %d MB)", h.Cfg.MaxUploadBytes>>20))
	}

	src, err := fh.Open()
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "could not read upload")
	}
	defer src.Close()

	path, err := h.Files.Save(src, fh.Filename)
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "could not store file")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	id, err := h.Images.Create(ctx, path)
	if err != nil {
		if rmErr := h.Files.Remove(path); rmErr != nil {
			log.Printf("upload: could not remove orphan file %s: %v", path, rmErr)
		}
		return respondErr(c, http.StatusInternalServerError, "could not create image record")
	}

	url := h.imageURL(c, id)
	h.publishEvent(c.Request().Context(), queue.ImageEvent{
		Action: "uploaded", ImageID: id, ImageURL: url, At: time.Now().UTC(),
	})

	return respondOK(c, http.StatusCreated, "image uploaded successfully", echo.Map{
		"image_id": id,
		"imageURL": url,
	})
}

// Download handles GET /api/swapper/image/:id and streams the binary
// content.  A missing record and a missing backing file both surface
// as 404 to the client, but the latter is logged as an inconsistency.
func (h *ImageHandler) Download(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid image id")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	path, err := h.Images.Resolve(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrImageNotFound):
			return respondErr(c, http.StatusNotFound, "image not found")
		case errors.Is(err, repository.ErrFileMissing):
			log.Printf("swapper image %d: record exists but file is missing", id)
			return respondErr(c, http.StatusNotFound, "image not found")
		default:
			return respondErr(c, http.StatusInternalServerError, "could not load image")
		}
	}
	return c.File(path)
}

// Delete handles DELETE /api/swapper/image/:id.  Removing the record
// is the authoritative effect; the backing file is removed
// best-effort inside the repository.
func (h *ImageHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid image id")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	removed, err := h.Images.DeleteByID(ctx, id)
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "could not delete image")
	}
	if !removed {
		return respondErr(c, http.StatusNotFound, "image not found")
	}

	h.publishEvent(c.Request().Context(), queue.ImageEvent{
		Action: "deleted", ImageID: id, At: time.Now().UTC(),
	})
	return respondOK(c, http.StatusOK, "image deleted successfully", nil)
}

func (h *ImageHandler) publishEvent(ctx context.Context, ev queue.ImageEvent) {
	if h.Publish == nil {
		return
	}
	_ = h.Publish(ctx, queue.ImageEventsQueue, ev)
}
