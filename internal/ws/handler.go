package ws

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/gridspace-io/gridspace/internal/dependencies/random"
)

// Gateway accepts websocket connections and runs one session per
// connection. Frames from one connection are handled in arrival order on
// that connection's goroutine; cross-connection coordination lives
// entirely in the Registry.
type Gateway struct {
	registry *Registry
	verifier TokenVerifier
	spaces   SpaceDirectory
	users    UserLookup
	random   random.Random
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewGateway creates a connection gateway bound to the given registry
// and collaborators.
func NewGateway(registry *Registry, verifier TokenVerifier, spaces SpaceDirectory, users UserLookup, rnd random.Random, logger *slog.Logger) *Gateway {
	return &Gateway{
		registry: registry,
		verifier: verifier,
		spaces:   spaces,
		users:    users,
		random:   rnd,
		logger:   logger.With(slog.String("component", "ws")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Token auth happens inside the join frame, not at upgrade
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection and runs the session until the
// transport closes.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn("upgrade failed", slog.Any("error", err))
		return
	}

	c := newClient(conn, g.logger)
	session := NewSession(c, g.registry, g.verifier, g.spaces, g.users, g.random, g.logger)

	g.logger.Info("connection accepted", slog.String("session_key", session.Key()))

	go c.writePump()

	ctx := r.Context()
	c.readLoop(func(frame []byte) {
		session.HandleMessage(ctx, frame)
	})

	session.Destroy()
	g.logger.Info("connection closed",
		slog.String("session_key", session.Key()),
		slog.String("user_id", session.UserID()))
}
