package model

// Cinema represents a venue record stored in the `cinemas` table.
// Tags are persisted as a JSON array in a TEXT column and decoded at
// the repository boundary, so callers always see a native string
// slice in its original order.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – venue name, required.
//  Address   – venue address, required.
//  Price     – ticket price, always >= 0.
//  Tags      – ordered list of labels, defaults to empty.
//  CreatedAt – creation timestamp ("2006-01-02 15:04:05", UTC).
//  UpdatedAt – refreshed on every successful update.
type Cinema struct {
	ID        uint64   `json:"id"`         // cinemas.id
	Name      string   `json:"name"`       // cinemas.name
	Address   string   `json:"address"`    // cinemas.address
	Price     float64  `json:"price"`      // cinemas.price
	Tags      []string `json:"tags"`       // cinemas.tags (JSON text)
	CreatedAt string   `json:"created_at"` // cinemas.created_at
	UpdatedAt string   `json:"updated_at"` // cinemas.updated_at
}
