package server

import (
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/engine"
	"cognitive-intel/pkg/api"
	"cognitive-intel/pkg/logger"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и GameService.
// Клиент наблюдает за сектором глазами одного игрока.
type Client struct {
	Game      *engine.GameService
	Conn      *websocket.Conn
	Send      chan api.ServerResponse
	Player    types.PlayerID
	SessionID string

	log *logrus.Entry
}

func NewClient(game *engine.GameService, conn *websocket.Conn) *Client {
	sessionID := uuid.NewString()
	return &Client{
		Game:      game,
		Conn:      conn,
		Send:      make(chan api.ServerResponse, 256),
		SessionID: sessionID,
		log:       logger.For("ws_client").WithField("session", sessionID),
	}
}

// login разбирает первое сообщение. Токен - номер игрока ("1" или "P1").
func (c *Client) login(cmd api.ClientCommand) (types.PlayerID, error) {
	if cmd.Action != "LOGIN" {
		return types.NoPlayer, fmt.Errorf("expected LOGIN, got %q", cmd.Action)
	}
	player, err := types.ParsePlayerID(cmd.Token)
	if err != nil {
		return types.NoPlayer, err
	}
	if !c.Game.HasPlayer(player) {
		return types.NoPlayer, fmt.Errorf("player %s is not in this game", player)
	}
	return player, nil
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// 1. HANDSHAKE (LOGIN)
	var loginCmd api.ClientCommand
	if err := c.Conn.ReadJSON(&loginCmd); err != nil {
		c.log.WithError(err).Warn("Handshake failed")
		close(c.Send)
		return
	}

	player, err := c.login(loginCmd)
	if err != nil {
		c.log.WithError(err).Warn("Login rejected")
		c.Send <- api.ServerResponse{Type: "ERROR", Error: err.Error()}
		close(c.Send)
		return
	}
	c.Player = player
	c.log = c.log.WithField("player", player)
	c.log.Info("Client logged in")

	// 2. ПЕРВЫЙ СНИМОК (до подписки, чтобы клиент не ждал тика)
	var initial *api.ServerResponse
	c.Game.Instance.Inspect(func(i *engine.Instance) {
		initial = i.BuildStateFor(player)
	})
	initial.Type = "LOGIN_OK"
	c.Send <- *initial

	// 3. ПОДПИСКА НА ОБНОВЛЕНИЯ
	gameUpdates := c.Game.Hub.Register(player)

	// Запускаем пересылку обновлений из Hub в writePump
	go func() {
		for msg := range gameUpdates {
			c.Send <- msg
		}
		close(c.Send)
	}()

	defer func() {
		c.Game.Hub.Unregister(player, gameUpdates)
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
		c.log.Info("Client disconnected")
	}()

	// 4. ЦИКЛ ЧТЕНИЯ КОМАНД
	for {
		var cmd api.ClientCommand
		err := c.Conn.ReadJSON(&cmd)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Errorf("WS Error: %v", err)
			}
			break
		}

		if err := c.Game.ProcessCommand(player, cmd); err != nil {
			c.log.WithError(err).WithField("action", cmd.Action).Warn("Command rejected")
			// Ответ идёт через Hub: только он владеет каналом клиента
			c.Game.Hub.SendTo(player, api.ServerResponse{Type: "ERROR", Player: player.String(), Error: err.Error()})
		}
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				c.log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
