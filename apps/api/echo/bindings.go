package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/classroom/core"
	"github.com/trezcool/classroom/core/assignment"
)

type (
	filterRequest struct {
		Status string `json:"status"`
		Search string `json:"search"`
	}

	notificationsResponse struct {
		Notifications interface{} `json:"notifications"`
		UnreadCount   int         `json:"unreadCount"`
	}

	validateResponse struct {
		OK    bool              `json:"ok"`
		Value map[string]string `json:"value"`
	}
)

// Bind reads the status and search from the query string.
func (fr *filterRequest) Bind(ctx echo.Context) (assignment.QueryFilter, error) {
	fr.Status = ctx.QueryParam("status")
	fr.Search = ctx.QueryParam("search")
	return fr.queryFilter()
}

func (fr *filterRequest) queryFilter() (assignment.QueryFilter, error) {
	st, err := assignment.ParseStatusFilter(fr.Status)
	if err != nil {
		return assignment.QueryFilter{}, core.NewValidationError(err, core.FieldError{Field: "status", Error: err.Error()})
	}
	return assignment.QueryFilter{Status: st, Search: fr.Search}, nil
}

// paramID reads the `id` path param; anything but an int is not found.
func paramID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, errHttpNotFound
	}
	return id, nil
}

// queryInt reads an optional int query param.
func queryInt(ctx echo.Context, name string, def int) (int, error) {
	val := ctx.QueryParam(name)
	if val == "" {
		return def, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, core.NewValidationError(err, core.FieldError{Field: name, Error: "must be a whole number"})
	}
	return n, nil
}
