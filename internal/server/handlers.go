package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/career"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) navigate(c *gin.Context) {
	var req career.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "request body must be a JSON object with skills and interests"})
		return
	}

	paths, err := s.source.Fetch(c.Request.Context(), req)
	if err != nil {
		s.logger.Error("scoring profile failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, errorResponse{Error: "career paths are unavailable"})
		return
	}

	paths, err = s.filters.Run(c.Request.Context(), paths)
	if err != nil {
		s.logger.Error("filtering career paths failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "career paths are unavailable"})
		return
	}

	s.metrics.observePaths(len(paths))
	s.logger.Info("returning career paths", zap.Strings("titles", career.Titles(paths)))

	c.JSON(http.StatusOK, paths)
}

func (s *Server) fixture(c *gin.Context) {
	c.Data(http.StatusOK, "application/json", career.DemoFixture())
}
