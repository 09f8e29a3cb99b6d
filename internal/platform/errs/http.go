package errs

import "github.com/labstack/echo/v4"

// HTTP converts a service error into an echo HTTP error with the mapped
// status code.
func HTTP(err error) *echo.HTTPError {
	return echo.NewHTTPError(Status(err), err.Error())
}
