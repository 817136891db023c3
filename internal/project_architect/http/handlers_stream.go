package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/GoSim-25-26J-441/ece-project-architect/internal/api/http/middleware"
	"github.com/gin-gonic/gin"
)

// StreamProgress streams the rotating progress message of the session's
// generation using Server-Sent Events. It ends with a "done" event once no
// generation is running.
func (h *Handler) StreamProgress(c *gin.Context) {
	sid := middleware.SessionID(c)
	ctx := c.Request.Context()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // nginx: disable buffering

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "streaming unsupported"})
		return
	}

	send := func(event string, payload gin.H) {
		data, _ := json.Marshal(payload)
		fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, string(data))
		flusher.Flush()
	}

	msg, busy := h.mgr.Progress(ctx, sid)
	if !busy {
		send("done", gin.H{"generating": false})
		return
	}
	send("progress", gin.H{"generating": true, "message": msg})
	last := msg

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	poll := time.NewTicker(h.pollEvery)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-keepAlive.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()

		case <-poll.C:
			msg, busy := h.mgr.Progress(ctx, sid)
			if !busy {
				send("done", gin.H{"generating": false})
				return
			}
			if msg != last {
				last = msg
				send("progress", gin.H{"generating": true, "message": msg})
			}
		}
	}
}
