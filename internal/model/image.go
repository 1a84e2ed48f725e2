package model

// SwapperImage represents a row in the `swapper_images` table.  The
// StoragePath column is an opaque on-disk reference to the uploaded
// binary; it is not a public URL and is never exposed directly.  The
// public download URL is derived by handlers from the record ID.
type SwapperImage struct {
	ID          uint64 `json:"id"`         // swapper_images.id
	StoragePath string `json:"-"`          // swapper_images.storage_path
	CreatedAt   string `json:"created_at"` // swapper_images.created_at

	// ImageURL is filled in by handlers at response time and does not
	// correspond to a database column.
	ImageURL string `json:"imageURL,omitempty"`
}
