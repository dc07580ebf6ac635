package orderControllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/junaidrashid-git/rivaleats-api/notify"
)

const writeWait = 5 * time.Second

// Feed pushes accepted orders to connected admin dashboards.
type Feed struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewFeed() *Feed {
	return &Feed{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeWS upgrades the request and holds the connection until the client
// goes away. Inbound messages are ignored.
func (f *Feed) ServeWS(c *gin.Context) {
	conn, err := f.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	f.mu.Lock()
	f.clients[conn] = true
	f.mu.Unlock()

	defer f.drop(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (f *Feed) drop(conn *websocket.Conn) {
	f.mu.Lock()
	delete(f.clients, conn)
	f.mu.Unlock()
	conn.Close()
}

func (f *Feed) Clients() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

// Notify broadcasts order events; other event types are ignored.
func (f *Feed) Notify(_ context.Context, ev notify.Event) error {
	if ev.Type != notify.EventOrderAccepted {
		return nil
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for client := range f.clients {
		client.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("⚠️ Dropping order feed client: %v", err)
			delete(f.clients, client)
			client.Close()
		}
	}
	return nil
}
