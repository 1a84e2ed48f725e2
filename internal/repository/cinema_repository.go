package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/filmhub/swapper-api/internal/model"
)

// CinemaRepo encapsulates all database queries related to cinema
// venues.  Tags travel through this layer as native slices and are
// serialized to a JSON TEXT column only at the SQL boundary.
type CinemaRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewCinemaRepo(db *sql.DB) *CinemaRepo {
	return &CinemaRepo{db: db, now: time.Now}
}

// CinemaUpdate carries the fields of a partial update.  Nil means
// "leave unchanged"; a non-nil empty slice overwrites tags with an
// empty list.
type CinemaUpdate struct {
	Name    *string
	Address *string
	Price   *float64
	Tags    *[]string
}

// CinemaSearch holds the optional, conjunctive search filters.
type CinemaSearch struct {
	Keyword  string
	MinPrice *float64
	MaxPrice *float64
	Tag      string
}

// Create validates and inserts a cinema, returning its id.  A
// negative price is rejected with ErrInvalidPrice before any write.
func (r *CinemaRepo) Create(ctx context.Context, name, address string, price float64, tags []string) (uint64, error) {
	if price < 0 {
		return 0, ErrInvalidPrice
	}
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := encodeTags(tags)
	if err != nil {
		return 0, err
	}
	ts := stamp(r.now())
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO cinemas (name, address, price, tags, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		name, address, price, tagsJSON, ts, ts)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a cinema or ErrCinemaNotFound.
func (r *CinemaRepo) GetByID(ctx context.Context, id uint64) (model.Cinema, error) {
	var (
		c        model.Cinema
		tagsJSON string
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, address, price, tags, created_at, updated_at FROM cinemas WHERE id = ?", id).
		Scan(&c.ID, &c.Name, &c.Address, &c.Price, &tagsJSON, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Cinema{}, ErrCinemaNotFound
	}
	if err != nil {
		return model.Cinema{}, err
	}
	if c.Tags, err = decodeTags(tagsJSON); err != nil {
		return model.Cinema{}, err
	}
	return c, nil
}

// ListAll returns every cinema ordered by creation time, newest
// first.
func (r *CinemaRepo) ListAll(ctx context.Context) ([]model.Cinema, error) {
	return r.query(ctx,
		"SELECT id, name, address, price, tags, created_at, updated_at FROM cinemas ORDER BY created_at DESC, id DESC")
}

// Update writes the provided fields and always touches updated_at.
// It returns true whenever the id exists, even when no business field
// was supplied (the timestamp touch alone counts as a write), and
// false when the id does not exist.  A supplied negative price is
// rejected with ErrInvalidPrice before anything is written.
func (r *CinemaRepo) Update(ctx context.Context, id uint64, upd CinemaUpdate) (bool, error) {
	if upd.Price != nil && *upd.Price < 0 {
		return false, ErrInvalidPrice
	}

	set := []string{}
	args := []any{}
	if upd.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Address != nil {
		set = append(set, "address = ?")
		args = append(args, *upd.Address)
	}
	if upd.Price != nil {
		set = append(set, "price = ?")
		args = append(args, *upd.Price)
	}
	if upd.Tags != nil {
		tagsJSON, err := encodeTags(*upd.Tags)
		if err != nil {
			return false, err
		}
		set = append(set, "tags = ?")
		args = append(args, tagsJSON)
	}
	set = append(set, "updated_at = ?")
	args = append(args, stamp(r.now()), id)

	res, err := r.db.ExecContext(ctx,
		"UPDATE cinemas SET "+strings.Join(set, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteByID removes a cinema and reports whether a row existed.
func (r *CinemaRepo) DeleteByID(ctx context.Context, id uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM cinemas WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Search applies the optional filters conjunctively and returns
// matches ordered like ListAll.  Keyword and price bounds are pushed
// into the SQL; the tag filter is an exact membership test on the
// decoded list, done here rather than as a LIKE on the serialized
// JSON, so a search for "cat" can never match a stored tag
// "category".
func (r *CinemaRepo) Search(ctx context.Context, q CinemaSearch) ([]model.Cinema, error) {
	where := []string{}
	args := []any{}

	if q.Keyword != "" {
		kw := "%" + strings.ToLower(q.Keyword) + "%"
		where = append(where, "(LOWER(name) LIKE ? OR LOWER(address) LIKE ?)")
		args = append(args, kw, kw)
	}
	if q.MinPrice != nil {
		where = append(where, "price >= ?")
		args = append(args, *q.MinPrice)
	}
	if q.MaxPrice != nil {
		where = append(where, "price <= ?")
		args = append(args, *q.MaxPrice)
	}

	query := "SELECT id, name, address, price, tags, created_at, updated_at FROM cinemas"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if q.Tag == "" {
		return rows, nil
	}
	out := make([]model.Cinema, 0, len(rows))
	for _, c := range rows {
		for _, t := range c.Tags {
			if t == q.Tag {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

func (r *CinemaRepo) query(ctx context.Context, q string, args ...any) ([]model.Cinema, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Cinema, 0)
	for rows.Next() {
		var (
			c        model.Cinema
			tagsJSON string
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.Price, &tagsJSON, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		if c.Tags, err = decodeTags(tagsJSON); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func encodeTags(tags []string) (string, error) {
	b, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeTags(s string) ([]string, error) {
	if s == "" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}
