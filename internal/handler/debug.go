package handler

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// DebugHandler exposes a diagnostic view of the database tables.
type DebugHandler struct {
	DB     *sql.DB
	Driver string
}

func NewDebugHandler(db *sql.DB, driver string) *DebugHandler {
	return &DebugHandler{DB: db, Driver: driver}
}

type tableInfo struct {
	Name     string `json:"name"`
	RowCount int64  `json:"row_count"`
}

// Tables handles GET /api/debug/tables and reports each table with
// its row count.
func (h *DebugHandler) Tables(c echo.Context) error {
	var listQuery string
	if h.Driver == "mysql" {
		listQuery = "SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE()"
	} else {
		listQuery = "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'"
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	rows, err := h.DB.QueryContext(ctx, listQuery)
	if err != nil {
		return respondErr(c, http.StatusInternalServerError, "could not inspect tables")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return respondErr(c, http.StatusInternalServerError, "could not inspect tables")
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return respondErr(c, http.StatusInternalServerError, "could not inspect tables")
	}

	tables := make([]tableInfo, 0, len(names))
	for _, name := range names {
		var count int64
		// Table names come from the database's own catalog, not from
		// the request.
		if err := h.DB.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", name)).Scan(&count); err != nil {
			return respondErr(c, http.StatusInternalServerError, "could not inspect tables")
		}
		tables = append(tables, tableInfo{Name: name, RowCount: count})
	}

	return respondOK(c, http.StatusOK, "", echo.Map{"tables": tables})
}
