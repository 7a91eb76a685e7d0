package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleStories(c echo.Context) error {
	stories := s.feed.Snapshot()
	return c.JSON(http.StatusOK, storiesResponse{
		Refreshing: s.refresher.IsRefreshing(),
		Count:      len(stories),
		Stories:    toStoryResponses(stories),
	})
}

func (s *Server) handleRefreshStatus(c echo.Context) error {
	resp := refreshStatusResponse{Refreshing: s.refresher.IsRefreshing()}
	if last, ok := s.refresher.LastReport(); ok {
		resp.Last = toReportResponse(last)
	}
	return c.JSON(http.StatusOK, resp)
}

// handleRefreshStart triggers a background refresh. The refresh runs under the
// server's base context so it survives the request.
func (s *Server) handleRefreshStart(c echo.Context) error {
	if !s.refresher.RequestRefresh(s.base) {
		return c.JSON(http.StatusConflict, errorResponse{Error: "refresh already in progress"})
	}
	s.logger.Info("refresh requested over http")
	return c.JSON(http.StatusAccepted, map[string]bool{"refreshing": true})
}

func (s *Server) handleRefreshCancel(c echo.Context) error {
	if !s.refresher.Cancel() {
		return c.JSON(http.StatusConflict, errorResponse{Error: "no refresh running"})
	}
	s.logger.Info("refresh cancelled over http")
	return c.JSON(http.StatusAccepted, map[string]bool{"cancelled": true})
}
