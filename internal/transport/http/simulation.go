package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-minimax/internal/service/simulation"
)

type SimulationHandler struct {
	Service *simulation.Service
}

func NewSimulationHandler(svc *simulation.Service) *SimulationHandler {
	return &SimulationHandler{Service: svc}
}

// Run plays a full depth sweep and returns the report. The request waits for it.
func (h *SimulationHandler) Run(c *gin.Context) {
	report, err := h.Service.Run(c.Request.Context())
	switch {
	case errors.Is(err, simulation.ErrAlreadyRunning):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, report)
	}
}

func (h *SimulationHandler) Latest(c *gin.Context) {
	report, err := h.Service.Latest(c.Request.Context())
	switch {
	case errors.Is(err, simulation.ErrNoReport):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, report)
	}
}

func (h *SimulationHandler) Get(c *gin.Context) {
	report, err := h.Service.Report(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, simulation.ErrInvalidReportID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, simulation.ErrNoReport):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, report)
	}
}
