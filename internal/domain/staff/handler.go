package staff

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/internal/platform/errs"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers signup and login on the public group and the
// authenticated endpoints on the protected group.
func (h *Handler) RegisterRoutes(public, protected *echo.Group) {
	public.POST("/auth/signup", h.Signup)
	public.POST("/auth/login", h.Login)
	protected.GET("/auth/me", h.Me)
	protected.GET("/dashboard", h.Dashboard)
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

func (h *Handler) Signup(c echo.Context) error {
	var creds credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	u, token, err := h.svc.Signup(c.Request().Context(), creds.Username, creds.Password)
	if errors.Is(err, ErrUsernameTaken) {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	if err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusCreated, sessionResponse{User: u, Token: token})
}

func (h *Handler) Login(c echo.Context) error {
	var creds credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	u, token, err := h.svc.Login(c.Request().Context(), creds.Username, creds.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	if err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusOK, sessionResponse{User: u, Token: token})
}

func (h *Handler) Me(c echo.Context) error {
	current, ok := auth.CurrentUser(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
	}
	u, err := h.svc.Get(c.Request().Context(), current.ID)
	if err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) Dashboard(c echo.Context) error {
	stats, err := h.svc.Dashboard(c.Request().Context())
	if err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusOK, stats)
}
