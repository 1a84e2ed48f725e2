package router // package router defines how HTTP routes are registered for the API

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/filmhub/swapper-api/internal/handler"
	"github.com/filmhub/swapper-api/internal/middleware"
)

// Deps carries everything route registration needs.  CacheMW may be a
// pass-through when Redis is unavailable.
type Deps struct {
	Auth      *handler.AuthHandler
	Images    *handler.ImageHandler
	Cinemas   *handler.CinemaHandler
	Debug     *handler.DebugHandler
	JWTSecret string
	CacheMW   echo.MiddlewareFunc
}

// RegisterRoutes wires the full API surface.  Auth requirements
// follow the endpoint table: uploads, deletes and all cinema CRUD
// need a valid token; browsing images, downloading a single image and
// searching cinemas are public.  /api/cinemas/search is registered as
// a static route so it wins over /api/cinemas/:id and stays outside
// the JWT check.
func RegisterRoutes(e *echo.Echo, d Deps) {
	e.HTTPErrorHandler = errorHandler

	jwt := middleware.JWTAuth(d.JWTSecret)
	cache := d.CacheMW
	if cache == nil {
		cache = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	e.GET("/", handler.Home)
	e.GET("/healthz", handler.Health)

	e.POST("/api/login", d.Auth.Login)
	e.POST("/api/register", d.Auth.Register)
	e.GET("/api/protected", d.Auth.Protected, jwt)

	e.GET("/api/swapper/images", d.Images.List, cache)
	e.POST("/api/swapper/upload", d.Images.Upload, jwt)
	e.GET("/api/swapper/image/:id", d.Images.Download)
	e.DELETE("/api/swapper/image/:id", d.Images.Delete, jwt)

	e.GET("/api/cinemas", d.Cinemas.List, jwt)
	e.POST("/api/cinemas", d.Cinemas.Create, jwt)
	e.GET("/api/cinemas/search", d.Cinemas.Search, cache)
	e.GET("/api/cinemas/:id", d.Cinemas.Get, jwt)
	e.PUT("/api/cinemas/:id", d.Cinemas.Update, jwt)
	e.DELETE("/api/cinemas/:id", d.Cinemas.Delete, jwt)

	if d.Debug != nil {
		e.GET("/api/debug/tables", d.Debug.Tables)
	}
}

// errorHandler shapes framework-level failures (unknown routes,
// method mismatches, panics recovered by echo) into the same envelope
// the handlers use, without leaking internal detail.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	message := "internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		switch code {
		case http.StatusNotFound:
			message = "endpoint not found"
		case http.StatusMethodNotAllowed:
			message = "method not allowed"
		default:
			if s, ok := he.Message.(string); ok {
				message = s
			}
		}
	}
	_ = c.JSON(code, echo.Map{"success": false, "message": message})
}
