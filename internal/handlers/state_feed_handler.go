package handlers

import (
	"net/http"

	"github.com/Dias221467/Meal_Planner/internal/store"
	jwtutil "github.com/Dias221467/Meal_Planner/pkg/jwt"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StateFeedHandler pushes state snapshots to connected clients so they can
// re-render without polling.
type StateFeedHandler struct {
	Store     *store.Store
	JWTSecret string
}

func NewStateFeedHandler(s *store.Store, jwtSecret string) *StateFeedHandler {
	return &StateFeedHandler{Store: s, JWTSecret: jwtSecret}
}

// StateFeedWebSocketHandler upgrades the connection and streams every new
// state snapshot. Intermediate snapshots may be coalesced; the client always
// ends up with the latest one.
func (h *StateFeedHandler) StateFeedWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}
	claims, err := jwtutil.ValidateToken(token, h.JWTSecret)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Warn("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	logrus.WithField("deviceId", claims.DeviceID).Info("State feed connected")

	ch, cancel := h.Store.Subscribe()
	defer cancel()

	if err := conn.WriteJSON(h.Store.State()); err != nil {
		return
	}

	// Reader goroutine only detects the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case state := <-ch:
			if err := conn.WriteJSON(state); err != nil {
				return
			}
		case <-closed:
			logrus.WithField("deviceId", claims.DeviceID).Info("State feed disconnected")
			return
		}
	}
}
