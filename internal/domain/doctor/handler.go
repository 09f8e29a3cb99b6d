package doctor

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
	g.GET("/doctors", h.ListDoctors)
	g.POST("/doctors", h.CreateDoctor)
	g.GET("/doctors/search", h.SearchDoctors)
	g.GET("/doctors/:id", h.GetDoctor)
	g.PUT("/doctors/:id", h.UpdateDoctor)
	g.DELETE("/doctors/:id", h.DeleteDoctor)
}

func (h *Handler) CreateDoctor(c echo.Context) error {
	var in Input
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) GetDoctor(c echo.Context) error {
	d, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) ListDoctors(c echo.Context) error {
	pg := pagination.FromContext(c)
	doctors, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(doctors, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateDoctor(c echo.Context) error {
	var in Input
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d, err := h.svc.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) DeleteDoctor(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return errs.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) SearchDoctors(c echo.Context) error {
	ctx := c.Request().Context()
	q := c.QueryParam("q")
	specialization := c.QueryParam("specialization")
	department := c.QueryParam("department")

	doctors, err := h.svc.Search(ctx, q, specialization, department)
	if err != nil {
		return errs.HTTP(err)
	}

	specializations, err := h.svc.Specializations(ctx)
	if err != nil {
		return errs.HTTP(err)
	}
	departments, err := h.svc.Departments(ctx)
	if err != nil {
		return errs.HTTP(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"results":                 doctors,
		"query":                   q,
		"specializations":         specializations,
		"departments":             departments,
		"selected_specialization": specialization,
		"selected_department":     department,
		"total_results":           len(doctors),
	})
}
