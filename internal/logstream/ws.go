package logstream

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // local tool; restrict if ever exposed
	},
}

// WSHandler upgrades the connection and streams log entries until the
// client goes away. On connect, the buffered entries are replayed so a
// late-opening console still shows history.
func WSHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		for _, entry := range hub.Recent() {
			if err := ws.WriteJSON(entry); err != nil {
				_ = ws.Close()
				return
			}
		}

		hub.AddWS(ws)

		// Keep the connection open; incoming messages are ignored.
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		hub.RemoveWS(ws)
	}
}
