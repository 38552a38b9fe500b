package httpapi

import (
	"net/http"
	"time"

	"github.com/callegarimattia/starfleet/internal/dto"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// StreamMatchEvents upgrades to a websocket and pushes a fresh GameView every time
// NotificationService reports a change to this match, starting with the caller's
// current view.
func (h *EchoHandler) StreamMatchEvents(c echo.Context) error {
	playerID, _ := c.Get("player_id").(string)
	matchID := c.Param("id")

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx := c.Request().Context()

	initial, err := h.ctrl.GetGameStateAction(ctx, matchID, playerID)
	if err != nil {
		return conn.WriteJSON(dto.WSEvent{Type: "error", Error: err.Error()})
	}
	if err := conn.WriteJSON(dto.WSEvent{Type: "game_update", Payload: &initial}); err != nil {
		return err
	}

	sub, events := h.ctrl.SubscribeToMatch(matchID)
	defer sub.Unsubscribe()

	// writeLimiter caps how often this connection can push an update, so a burst
	// of shots in a match doesn't flood a slow client.
	writeLimiter := rate.NewLimiter(rate.Every(100*time.Millisecond), 5)

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			if err := writeLimiter.Wait(ctx); err != nil {
				return nil
			}
			view, err := h.ctrl.GetGameStateAction(ctx, matchID, playerID)
			if err != nil {
				log.Warn().Err(err).Str("match_id", matchID).Msg("failed to refresh stream view")
				continue
			}
			if err := conn.WriteJSON(dto.WSEvent{Type: "game_update", Payload: &view}); err != nil {
				return err
			}
		}
	}
}
