package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/filmhub/swapper-api/internal/config"
	"github.com/filmhub/swapper-api/internal/queue"
	"github.com/filmhub/swapper-api/internal/repository"
)

// CinemaHandler bundles dependencies for the cinema endpoints.
type CinemaHandler struct {
	Cfg     config.Config
	Cinemas *repository.CinemaRepo
	Publish Publisher
}

func NewCinemaHandler(cfg config.Config, cinemas *repository.CinemaRepo, pub Publisher) *CinemaHandler {
	return &CinemaHandler{Cfg: cfg, Cinemas: cinemas, Publish: pub}
}

// createCinemaReq keeps tags as raw JSON so a wrong shape ("tags": "x")
// gets its own validation message instead of a generic bind failure.
type createCinemaReq struct {
	Name    string          `json:"name"`
	Address string          `json:"address"`
	Price   *float64        `json:"price"`
	Tags    json.RawMessage `json:"tags"`
}

type updateCinemaReq struct {
	Name    *string         `json:"name"`
	Address *string         `json:"address"`
	Price   *float64        `json:"price"`
	Tags    json.RawMessage `json:"tags"`
}

func decodeTagsField(raw json.RawMessage) ([]string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, true
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, false
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, true
}

// List handles GET /api/cinemas.
func (h *CinemaHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	cinemas, err := h.Cinemas.ListAll(ctx)
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "could not list cinemas")
	}
	return respondOK(c, http.StatusOK, "", echo.Map{
		"cinemas": cinemas,
		"count":   len(cinemas),
	})
}

// Create handles POST /api/cinemas.  Name, address and price are
// required; tags default to an empty list.  Validation happens before
// the insert, so a rejected request writes nothing.
func (h *CinemaHandler) Create(c echo.Context) error {
	var req createCinemaReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "request body must be valid JSON")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Address = strings.TrimSpace(req.Address)
	if req.Name == "" || req.Address == "" || req.Price == nil {
		return respondErr(c, http.StatusBadRequest, "name, address and price are required")
	}
	tags, ok := decodeTagsField(req.Tags)
	if !ok {
		return respondErr(c, http.StatusBadRequest, "tags must be an array of strings")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	id, err := h.Cinemas.Create(ctx, req.Name, req.Address, *req.Price, tags)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidPrice) {
			return respondErr(c, http.StatusBadRequest, repository.ErrInvalidPrice.Error())
		}
		return respondErr(c, http.StatusInternalServerError, "could not create cinema")
	}

	h.publishEvent(c.Request().Context(), queue.CinemaEvent{
		Action: "created", CinemaID: id, At: time.Now().UTC(),
	})
	return respondOK(c, http.StatusOK, "cinema created successfully", echo.Map{
		"cinema_id": id,
	})
}

// Get handles GET /api/cinemas/:id.
func (h *CinemaHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid cinema id")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	cinema, err := h.Cinemas.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCinemaNotFound) {
			return respondErr(c, http.StatusNotFound, "cinema not found")
		}
		return respondErr(c, http.StatusInternalServerError, "could not load cinema")
	}
	return respondOK(c, http.StatusOK, "", echo.Map{"cinema": cinema})
}

// Update handles PUT /api/cinemas/:id.  Only fields present in the
// body are changed; updated_at is always touched, so a body with no
// recognized fields still succeeds against an existing id.
func (h *CinemaHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid cinema id")
	}
	var req updateCinemaReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "request body must be valid JSON")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	// Existence is checked first so an unknown id reports 404 even
	// when the body is also invalid.
	if _, err := h.Cinemas.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCinemaNotFound) {
			return respondErr(c, http.StatusNotFound, "cinema not found")
		}
		return respondErr(c, http.StatusInternalServerError, "could not load cinema")
	}

	upd := repository.CinemaUpdate{
		Name:    req.Name,
		Address: req.Address,
		Price:   req.Price,
	}
	if len(req.Tags) > 0 && string(req.Tags) != "null" {
		tags, ok := decodeTagsField(req.Tags)
		if !ok {
			return respondErr(c, http.StatusBadRequest, "tags must be an array of strings")
		}
		upd.Tags = &tags
	}

	updated, err := h.Cinemas.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidPrice) {
			return respondErr(c, http.StatusBadRequest, repository.ErrInvalidPrice.Error())
		}
		return respondErr(c, http.StatusInternalServerError, "could not update cinema")
	}
	if !updated {
		return respondErr(c, http.StatusNotFound, "cinema not found")
	}

	h.publishEvent(c.Request().Context(), queue.CinemaEvent{
		Action: "updated", CinemaID: id, At: time.Now().UTC(),
	})
	return respondOK(c, http.StatusOK, "cinema updated successfully", nil)
}

// Delete handles DELETE /api/cinemas/:id.
func (h *CinemaHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid cinema id")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	removed, err := h.Cinemas.DeleteByID(ctx, id)
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "could not delete cinema")
	}
	if !removed {
		return respondErr(c, http.StatusNotFound, "cinema not found")
	}

	h.publishEvent(c.Request().Context(), queue.CinemaEvent{
		Action: "deleted", CinemaID: id, At: time.Now().UTC(),
	})
	return respondOK(c, http.StatusOK, "cinema deleted successfully", nil)
}

// Search handles GET /api/cinemas/search.  All filters are optional
// and AND'ed together; the response echoes the parsed filters back
// under search_params.
func (h *CinemaHandler) Search(c echo.Context) error {
	q := repository.CinemaSearch{
		Keyword: strings.TrimSpace(c.QueryParam("keyword")),
		Tag:     strings.TrimSpace(c.QueryParam("tag")),
	}
	if s := c.QueryParam("min_price"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return respondErr(c, http.StatusBadRequest, "min_price must be a number")
		}
		q.MinPrice = &v
	}
	if s := c.QueryParam("max_price"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return respondErr(c, http.StatusBadRequest, "max_price must be a number")
		}
		q.MaxPrice = &v
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	cinemas, err := h.Cinemas.Search(ctx, q)
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "search failed")
	}

	params := echo.Map{
		"keyword":   nilIfEmpty(q.Keyword),
		"tag":       nilIfEmpty(q.Tag),
		"min_price": q.MinPrice,
		"max_price": q.MaxPrice,
	}
	return respondOK(c, http.StatusOK, "", echo.Map{
		"cinemas":       cinemas,
		"count":         len(cinemas),
		"search_params": params,
	})
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (h *CinemaHandler) publishEvent(ctx context.Context, ev queue.CinemaEvent) {
	if h.Publish == nil {
		return
	}
	_ = h.Publish(ctx, queue.CinemaEventsQueue, ev)
}
