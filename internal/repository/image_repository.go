package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/filmhub/swapper-api/internal/model"
	"github.com/filmhub/swapper-api/internal/storage"
)

// ImageRepo encapsulates database queries for swapper image records
// and coordinates best-effort removal of their backing files.  The
// record is the authoritative side: file operations never decide
// whether a delete succeeded.
type ImageRepo struct {
	db    *sql.DB
	files *storage.FileStore
	now   func() time.Time
}

func NewImageRepo(db *sql.DB, files *storage.FileStore) *ImageRepo {
	return &ImageRepo{db: db, files: files, now: time.Now}
}

// Create inserts a record for an already-written file.  Callers must
// persist the file before creating the record so no record ever
// points at a file that was never written.
func (r *ImageRepo) Create(ctx context.Context, storagePath string) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO swapper_images (storage_path, created_at) VALUES (?, ?)",
		storagePath, stamp(r.now()))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListAll returns every image record ordered by creation time,
// newest first.
func (r *ImageRepo) ListAll(ctx context.Context) ([]model.SwapperImage, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, storage_path, created_at FROM swapper_images ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.SwapperImage, 0)
	for rows.Next() {
		var img model.SwapperImage
		if err := rows.Scan(&img.ID, &img.StoragePath, &img.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single image record or ErrImageNotFound.
func (r *ImageRepo) GetByID(ctx context.Context, id uint64) (model.SwapperImage, error) {
	var img model.SwapperImage
	err := r.db.QueryRowContext(ctx,
		"SELECT id, storage_path, created_at FROM swapper_images WHERE id = ?", id).
		Scan(&img.ID, &img.StoragePath, &img.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.SwapperImage{}, ErrImageNotFound
	}
	if err != nil {
		return model.SwapperImage{}, err
	}
	return img, nil
}

// Resolve maps an id to the on-disk path of its content for download.
// A missing record yields ErrImageNotFound; a record whose file is
// gone yields ErrFileMissing so the caller can tell the two apart.
func (r *ImageRepo) Resolve(ctx context.Context, id uint64) (string, error) {
	img, err := r.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if !r.files.Exists(img.StoragePath) {
		return "", ErrFileMissing
	}
	return img.StoragePath, nil
}

// DeleteByID removes the record and then best-effort removes the
// backing file.  It returns true when a record existed.  A file
// removal failure is logged and swallowed: the record's removal is
// the user-visible effect and is never rolled back.
func (r *ImageRepo) DeleteByID(ctx context.Context, id uint64) (bool, error) {
	img, err := r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrImageNotFound) {
			return false, nil
		}
		return false, err
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM swapper_images WHERE id = ?", id); err != nil {
		return false, err
	}
	if err := r.files.Remove(img.StoragePath); err != nil {
		log.Printf("swapper image %d: could not remove file %s: %v", id, img.StoragePath, err)
	}
	return true, nil
}
