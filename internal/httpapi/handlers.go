package httpapi

import (
	"net/http"

	"github.com/callegarimattia/starfleet/internal/controller"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// EchoHandler binds the AppController's actions to echo routes.
type EchoHandler struct {
	ctrl *controller.AppController
}

// NewEchoHandler creates an EchoHandler over ctrl.
func NewEchoHandler(ctrl *controller.AppController) *EchoHandler {
	return &EchoHandler{ctrl: ctrl}
}

// RegisterRoutes mounts every handler onto e, guarding everything but /login behind
// echo-jwt token validation plus RequirePlayerID, and every route behind a per-IP
// rate limiter.
func (h *EchoHandler) RegisterRoutes(e *echo.Echo, jwtSecret []byte, ratePerMinute int) {
	limiter := newIPRateLimiter(ratePerMinute)
	e.Use(limiter.Middleware)

	e.POST("/login", h.Login)

	api := e.Group("")
	api.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: jwtSecret,
		ErrorHandler: func(c echo.Context, err error) error {
			log.Warn().Err(err).Str("path", c.Path()).Msg("jwt validation failed")
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		},
	}))
	api.Use(RequirePlayerID)

	api.GET("/matches", h.ListMatches)
	api.POST("/matches", h.HostMatch)
	api.POST("/matches/:id/join", h.JoinMatch)
	api.GET("/matches/:id", h.GetState)
	api.POST("/matches/:id/field", h.ConfigureField)
	api.POST("/matches/:id/fleet", h.ConfigureFleet)
	api.POST("/matches/:id/place", h.PlaceEntity)
	api.POST("/matches/:id/autoplace", h.Autoplace)
	api.POST("/matches/:id/ready", h.Ready)
	api.POST("/matches/:id/start", h.Start)
	api.POST("/matches/:id/shoot", h.Shoot)
	api.GET("/matches/:id/ws", h.StreamMatchEvents)
}

// Login exchanges a display name for a signed token.
func (h *EchoHandler) Login(c echo.Context) error {
	var body struct {
		Username string `json:"username"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON")
	}

	resp, err := h.ctrl.Login(c.Request().Context(), body.Username, "web", body.Username)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

// ListMatches returns every match still waiting for a second player.
func (h *EchoHandler) ListMatches(c echo.Context) error {
	matches, err := h.ctrl.ListGamesAction(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, matches)
}

// HostMatch creates a new match with the caller as host.
func (h *EchoHandler) HostMatch(c echo.Context) error {
	playerID, _ := c.Get("player_id").(string)
	matchID, err := h.ctrl.HostGameAction(c.Request().Context(), playerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"match_id": matchID})
}

// JoinMatch seats the caller as the match's second player.
func (h *EchoHandler) JoinMatch(c echo.Context) error {
	playerID, _ := c.Get("player_id").(string)
	view, err := h.ctrl.JoinGameAction(c.Request().Context(), c.Param("id"), playerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, view)
}

// GetState returns the caller's current view of the match.
func (h *EchoHandler) GetState(c echo.Context) error {
	playerID, _ := c.Get("player_id").(string)
	view, err := h.ctrl.GetGameStateAction(c.Request().Context(), c.Param("id"), playerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, view)
}

// ConfigureField sets the caller's field shape and dimensions.
func (h *EchoHandler) ConfigureField(c echo.Context) error {
	var body struct {
		Shape  string `json:"shape"`
		Params []int  `json:"params"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON")
	}

	playerID, _ := c.Get("player_id").(string)
	view, err := h.ctrl.ConfigureFieldAction(c.Request().Context(), c.Param("id"), playerID, body.Shape, body.Params)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, view)
}

// ConfigureFleet sets the caller's intended fleet composition.
func (h *EchoHandler) ConfigureFleet(c echo.Context) error {
	var body struct {
		Counts map[string]int `json:"counts"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON")
	}

	playerID, _ := c.Get("player_id").(string)
	view, err := h.ctrl.ConfigureFleetAction(c.Request().Context(), c.Param("id"), playerID, body.Counts)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, view)
}

// PlaceEntity places one entity at a coordinate.
func (h *EchoHandler) PlaceEntity(c echo.Context) error {
	var body struct {
		EntityType string `json:"entity_type"`
		Coordinate string `json:"coordinate"`
		Rotation   int    `json:"rotation"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON")
	}

	playerID, _ := c.Get("player_id").(string)
	view, err := h.ctrl.PlaceEntityAction(
		c.Request().Context(), c.Param("id"), playerID, body.EntityType, body.Coordinate, body.Rotation,
	)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, view)
}

// Autoplace places every one of the caller's pending entities at random.
func (h *EchoHandler) Autoplace(c echo.Context) error {
	playerID, _ := c.Get("player_id").(string)
	view, err := h.ctrl.AutoplaceAction(c.Request().Context(), c.Param("id"), playerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, view)
}

// Ready locks in the caller's setup choices.
func (h *EchoHandler) Ready(c echo.Context) error {
	playerID, _ := c.Get("player_id").(string)
	view, err := h.ctrl.ReadyAction(c.Request().Context(), c.Param("id"), playerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, view)
}

// Start transitions the match from SETUP to ACTIVE.
func (h *EchoHandler) Start(c echo.Context) error {
	playerID, _ := c.Get("player_id").(string)
	view, err := h.ctrl.StartAction(c.Request().Context(), c.Param("id"), playerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, view)
}

// Shoot fires at a coordinate on the opponent's field.
func (h *EchoHandler) Shoot(c echo.Context) error {
	var body struct {
		Coordinate string `json:"coordinate"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON")
	}

	playerID, _ := c.Get("player_id").(string)
	shot, view, err := h.ctrl.ShootAction(c.Request().Context(), c.Param("id"), playerID, body.Coordinate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{"shot": shot, "game": view})
}
