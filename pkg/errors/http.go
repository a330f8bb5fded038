package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func ToHTTPStatus(code string) int {
	httpStatus, _ := GetCodeMapping(code)
	return httpStatus
}

// ToHTTPError converts err into an echo.HTTPError
func ToHTTPError(err error) *echo.HTTPError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if As(err, &appErr) {
		return echo.NewHTTPError(ToHTTPStatus(appErr.Code()), appErr.Message())
	}

	var echoErr *echo.HTTPError
	if As(err, &echoErr) {
		return echoErr
	}

	return echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// WriteJSON writes err as {"error", "code"}. Messages of 5xx errors are
// replaced with the status text.
func WriteJSON(c echo.Context, err error) error {
	var appErr *AppError
	if !As(err, &appErr) {
		appErr = Internal("internal server error", err)
	}

	status := ToHTTPStatus(appErr.Code())
	message := appErr.Message()
	if status >= http.StatusInternalServerError {
		message = http.StatusText(status)
	}

	return c.JSON(status, echo.Map{
		"error": message,
		"code":  appErr.Code(),
	})
}
