package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"lumen-cms/live"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const writeTimeout = 10 * time.Second

// LiveHandler streams a collection's full current set over a
// websocket: one frame on connect, then one frame per change.
type LiveHandler struct {
	hub *live.Hub
	log *logrus.Logger
}

func NewLiveHandler(hub *live.Hub, log *logrus.Logger) *LiveHandler {
	if log == nil {
		log = logrus.New()
	}
	return &LiveHandler{hub: hub, log: log}
}

func (h *LiveHandler) Stream(c *gin.Context) {
	collection := c.Param("collection")
	if !h.hub.Known(collection) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	sub := h.hub.Subscribe(collection)
	defer sub.Cancel()

	// readers only send close frames; drain them so the close is seen
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := h.push(c, conn, collection); err != nil {
		return
	}

	for {
		select {
		case <-done:
			return
		case <-sub.C:
			if err := h.push(c, conn, collection); err != nil {
				return
			}
		}
	}
}

// push re-fetches the collection and writes the full set as one frame.
func (h *LiveHandler) push(c *gin.Context, conn *websocket.Conn, collection string) error {
	data, err := h.hub.Snapshot(c.Request.Context(), collection)
	if err != nil {
		h.log.WithError(err).WithField("collection", collection).Warn("live snapshot failed")
		return err
	}

	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(map[string]interface{}{
		"collection": collection,
		"data":       data,
	})
}
