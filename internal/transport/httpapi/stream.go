package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"HackerNews/internal/livefeed"
)

// handleStream sends the current snapshot followed by every feed mutation as
// server-sent events. The observer is registered before the snapshot is taken,
// so a story inserted in between may appear twice; clients key stories by id.
// A client that falls more than streamBuffer events behind is disconnected.
func (s *Server) handleStream(c echo.Context) error {
	res := c.Response()
	flusher, ok := res.Writer.(http.Flusher)
	if !ok {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "streaming not supported"})
	}

	events := make(chan livefeed.Event, streamBuffer)
	overflow := make(chan struct{})
	var once sync.Once
	unsubscribe := s.feed.Subscribe(func(ev livefeed.Event) {
		select {
		case events <- ev:
		default:
			once.Do(func() { close(overflow) })
		}
	})
	defer unsubscribe()

	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)

	if err := writeEvent(res, "snapshot", toStoryResponses(s.feed.Snapshot())); err != nil {
		return nil
	}
	flusher.Flush()

	heartbeat := time.NewTicker(s.heartbeat)
	defer heartbeat.Stop()

	ctx := c.Request().Context()
	for {
		var err error
		select {
		case <-ctx.Done():
			return nil
		case <-s.base.Done():
			return nil
		case <-overflow:
			s.logger.Warn("stream client too slow, disconnecting")
			_ = writeEvent(res, "overflow", errorResponse{Error: "too many pending events"})
			flusher.Flush()
			return nil
		case <-heartbeat.C:
			_, err = fmt.Fprint(res, ": heartbeat\n\n")
		case ev := <-events:
			switch ev.Kind {
			case livefeed.EventCleared:
				err = writeEvent(res, ev.Kind.String(), struct{}{})
			case livefeed.EventInserted:
				err = writeEvent(res, ev.Kind.String(), streamEvent{Index: ev.Index, Story: toStoryResponse(ev.Story)})
			}
		}
		if err != nil {
			s.logger.Debug("stream client disconnected", "error", err)
			return nil
		}
		flusher.Flush()
	}
}

func writeEvent(res *echo.Response, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", name, err)
	}
	_, err = fmt.Fprintf(res, "event: %s\ndata: %s\n\n", name, data)
	return err
}
