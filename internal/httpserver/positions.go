package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/staffhub/staffhub/internal/logging"
	"github.com/staffhub/staffhub/internal/service"
	"github.com/staffhub/staffhub/internal/transport"
)

type PositionHTTP struct {
	Svc *service.PositionService
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}
	return uint(id), nil
}

func (h *PositionHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "positions_list")

	rows, err := h.Svc.List(ctx)
	if err != nil {
		l.Error("list_error", "status", 500, "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, rows)
}

func (h *PositionHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c, "position_id")
	if err != nil {
		return err
	}

	row, err := h.Svc.Get(ctx, id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, row)
}

func (h *PositionHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "positions_create")

	var req transport.CreatePositionRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	pos, err := h.Svc.Create(ctx, req.PositionCode, req.PositionName, req.ID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":       "position created successfully",
		"position_id":   pos.PositionID,
		"position_code": pos.PositionCode,
		"position_name": pos.PositionName,
		"user_id":       pos.UserID,
	})
}

func (h *PositionHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "positions_update")

	id, err := parseID(c, "position_id")
	if err != nil {
		return err
	}

	var req transport.UpdatePositionRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	pos, err := h.Svc.Update(ctx, id, service.PositionPatch{
		PositionCode: req.PositionCode,
		PositionName: req.PositionName,
		UserID:       req.ID,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, pos)
}

func (h *PositionHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c, "position_id")
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "position deleted successfully"})
}

func (h *PositionHTTP) DeleteAll(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.Svc.DeleteAll(ctx); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "all positions deleted"})
}
