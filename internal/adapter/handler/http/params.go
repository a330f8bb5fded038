package http

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/boring-ventures/minka-sub001/internal/domain/entity"
	apperrors "github.com/boring-ventures/minka-sub001/pkg/errors"
)

func uuidParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperrors.InvalidArgument("invalid "+name, err)
	}
	return id, nil
}

func intQuery(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.InvalidArgument("invalid "+name+" parameter", err)
	}
	return v, nil
}

// paginationParams reads page and limit; out of range values are normalized
func paginationParams(c echo.Context) (entity.PaginationParams, error) {
	page, err := intQuery(c, "page")
	if err != nil {
		return entity.PaginationParams{}, err
	}
	limit, err := intQuery(c, "limit")
	if err != nil {
		return entity.PaginationParams{}, err
	}
	p := entity.PaginationParams{Page: page, Limit: limit}
	p.Validate()
	return p, nil
}
