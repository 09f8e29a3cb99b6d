package appointment

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/errs"
	"github.com/hms/hms/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/appointments", h.ListAppointments)
	g.POST("/appointments", h.BookAppointment)
	g.GET("/appointments/search", h.SearchAppointments)
	g.GET("/appointments/:id", h.GetAppointment)
	g.PUT("/appointments/:id", h.UpdateAppointment)
	g.DELETE("/appointments/:id", h.DeleteAppointment)
}

func (h *Handler) BookAppointment(c echo.Context) error {
	var in Input
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) GetAppointment(c echo.Context) error {
	a, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	pg := pagination.FromContext(c)
	views, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(views, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateAppointment(c echo.Context) error {
	var in Input
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) DeleteAppointment(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return errs.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) SearchAppointments(c echo.Context) error {
	q := c.QueryParam("q")
	status := c.QueryParam("status")
	date := c.QueryParam("date")

	views, err := h.svc.Search(c.Request().Context(), q, status, date)
	if err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"results":         views,
		"query":           q,
		"selected_status": status,
		"selected_date":   date,
		"total_results":   len(views),
	})
}
