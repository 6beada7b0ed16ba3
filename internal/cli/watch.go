package cli

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "watch <space-id>",
		Short: "Join a space and stream realtime events",
		Long: `Connect to the realtime gateway, join the given space, and stream
events as they happen.

Events include:
  - space-joined: You joined; payload carries your spawn and the roster
  - user-joined: A member joined the space
  - movement: A member moved
  - user-left: A member left the space
  - bullet-shot: A member fired a bullet
  - health-update: A member's health changed
  - player-death: A member's health reached zero

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Token == "" {
				return fmt.Errorf("no token; sign in first")
			}
			return watchSpace(args[0], jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// GatewayEvent is one received frame with a local timestamp
type GatewayEvent struct {
	Time    time.Time       `json:"time"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func watchSpace(spaceID string, jsonOutput bool) error {
	wsURL, err := gatewayURL(cfg.ServerURL)
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	// Join the space
	join := map[string]any{
		"type": "join",
		"payload": map[string]string{
			"spaceId": spaceID,
			"token":   cfg.Token,
		},
	}
	if err := conn.WriteJSON(join); err != nil {
		return fmt.Errorf("join failed: %w", err)
	}

	// Handle interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
		case <-done:
		}
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = conn.Close()
	}()

	if !jsonOutput {
		fmt.Printf("Connected to space %s\n", spaceID)
	}

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			close(done)
			if !jsonOutput {
				fmt.Println("Disconnected")
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			// Interrupt closes the conn out from under ReadMessage
			if strings.Contains(err.Error(), "use of closed network connection") {
				return nil
			}
			return fmt.Errorf("stream error: %w", err)
		}

		var env struct {
			Type    string          `json:"type"`
			Payload json.RawMessage `json:"payload"`
		}
		if err := json.Unmarshal(frame, &env); err != nil {
			continue
		}
		printGatewayEvent(env.Type, env.Payload, jsonOutput)
	}
}

// gatewayURL converts the configured HTTP server URL to the ws endpoint
func gatewayURL(serverURL string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	u.Path = "/ws"

	return u.String(), nil
}

func printGatewayEvent(msgType string, payload json.RawMessage, jsonOutput bool) {
	now := time.Now()

	if jsonOutput {
		evt := GatewayEvent{
			Time:    now,
			Type:    msgType,
			Payload: payload,
		}
		jsonData, _ := json.Marshal(evt)
		fmt.Println(string(jsonData))
	} else {
		timestamp := now.Format("2006-01-02 15:04:05")
		displayData := string(payload)
		if len(displayData) > 100 {
			displayData = displayData[:100] + "..."
		}
		fmt.Printf("[%s] %s: %s\n", timestamp, msgType, displayData)
	}
}
