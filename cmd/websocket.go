package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"swapcycle/internal/models"
)

const (
	wsReadLimit     = 1 << 20 // 1 MB
	wsReadDeadline  = 120 * time.Second
	wsWriteDeadline = 5 * time.Second
	wsPingInterval  = 15 * time.Second
	wsHelloDeadline = 30 * time.Second
)

// tradeEvent is the frame pushed to a connected party when a trade
// changes state.
type tradeEvent struct {
	Event string       `json:"event"`
	Trade models.Trade `json:"trade"`
}

type directMsg struct {
	userID int
	event  tradeEvent
}

type unreg struct {
	userID int
	conn   *websocket.Conn
}

type Client struct {
	ID     int
	Socket *websocket.Conn
}

type WebSocketManager struct {
	clients    map[int]*websocket.Conn
	direct     chan directMsg
	register   chan Client
	unregister chan unreg
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[int]*websocket.Conn),
		direct:     make(chan directMsg),
		register:   make(chan Client),
		unregister: make(chan unreg),
	}
}

// Run owns the clients map. All map operations happen here.
func (ws *WebSocketManager) Run() {
	for {
		select {
		case client := <-ws.register:
			// A new socket for a user replaces the old one.
			if old, ok := ws.clients[client.ID]; ok && old != nil && old != client.Socket {
				_ = old.Close()
			}
			ws.clients[client.ID] = client.Socket
			log.Printf("WS register user=%d", client.ID)

		case u := <-ws.unregister:
			if cur, ok := ws.clients[u.userID]; ok && cur == u.conn {
				_ = cur.Close()
				delete(ws.clients, u.userID)
				log.Printf("WS unregister user=%d", u.userID)
			}

		case d := <-ws.direct:
			conn, ok := ws.clients[d.userID]
			if !ok {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(wsWriteDeadline))
			if err := conn.WriteJSON(d.event); err != nil {
				// Drop the dead socket here. Sending on unregister
				// from the loop that drains it would block forever.
				log.Printf("WS send to user=%d failed: %v", d.userID, err)
				_ = conn.Close()
				delete(ws.clients, d.userID)
			}
		}
	}
}

// PushTradeUpdate delivers a trade event to the user's open socket, if
// any. Implements the notification pusher used by the trade service.
func (ws *WebSocketManager) PushTradeUpdate(userID int, trade models.Trade, event string) {
	select {
	case ws.direct <- directMsg{userID: userID, event: tradeEvent{Event: event, Trade: trade}}:
	default:
		// Run loop busy or not started. Websocket delivery is best
		// effort, FCM covers the offline case.
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler upgrades the connection and waits for a hello frame
// carrying the user id before registering the socket.
func (app *application) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.errorLog.Printf("WS upgrade: %v", err)
		return
	}

	conn.SetReadLimit(wsReadLimit)
	conn.SetReadDeadline(time.Now().Add(wsHelloDeadline))

	var hello struct {
		UserID int `json:"user_id"`
	}
	_, data, err := conn.ReadMessage()
	if err != nil || json.Unmarshal(data, &hello) != nil || hello.UserID == 0 {
		conn.Close()
		return
	}

	app.wsManager.register <- Client{ID: hello.UserID, Socket: conn}

	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsReadDeadline))
		return nil
	})

	go app.pingLoop(hello.UserID, conn)

	for {
		conn.SetReadDeadline(time.Now().Add(wsReadDeadline))
		if _, _, err := conn.ReadMessage(); err != nil {
			app.wsManager.unregister <- unreg{userID: hello.UserID, conn: conn}
			return
		}
	}
}

func (app *application) pingLoop(userID int, conn *websocket.Conn) {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for range ticker.C {
		// WriteControl is safe alongside the manager's data writes;
		// WriteMessage here would race them on the same socket.
		if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteDeadline)); err != nil {
			app.wsManager.unregister <- unreg{userID: userID, conn: conn}
			return
		}
	}
}
