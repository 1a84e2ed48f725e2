package handler // handler package contains the HTTP handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Home handles GET / and returns a short index of the API surface.
func Home(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "user auth, swapper image and cinema management API",
		"endpoints": echo.Map{
			"auth": echo.Map{
				"/api/login":     "log in",
				"/api/register":  "register a new account",
				"/api/protected": "protected test endpoint",
			},
			"images": echo.Map{
				"/api/swapper/images":     "list all swapper images",
				"/api/swapper/upload":     "upload a swapper image",
				"/api/swapper/image/{id}": "download or delete an image",
			},
			"cinemas": echo.Map{
				"/api/cinemas":        "list or create cinemas",
				"/api/cinemas/{id}":   "get, update or delete a cinema",
				"/api/cinemas/search": "search cinemas",
			},
		},
	})
}

// Health is a health-check endpoint used by load balancers and
// monitoring systems to verify that the service is running.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
