package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/football-sim/internal/report"
	"github.com/maxviazov/football-sim/internal/service"
	"github.com/maxviazov/football-sim/pkg/response"
)

// SimulationHandler runs one isolated simulation per request. Nothing is kept between requests.
type SimulationHandler struct {
	svc service.CompetitionService
}

func NewSimulationHandler(svc service.CompetitionService) *SimulationHandler {
	return &SimulationHandler{svc: svc}
}

func (h *SimulationHandler) Register(r *gin.RouterGroup) {
	r.POST("/leagues/simulate", h.simulateLeague)
	r.POST("/tournaments/simulate", h.simulateTournament)
	r.POST("/championships/simulate", h.runChampionship)
}

func (h *SimulationHandler) simulateLeague(c *gin.Context) {
	var req service.LeagueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput) // parsing details stay internal
		return
	}
	rep, err := h.svc.SimulateLeague(c.Request.Context(), req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	if wantsText(c) {
		writeText(c, func(b *bytes.Buffer) error { return report.League(b, rep, verbose(c)) })
		return
	}
	response.WriteData(c, http.StatusOK, rep)
}

func (h *SimulationHandler) simulateTournament(c *gin.Context) {
	var req service.TournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	rep, err := h.svc.SimulateTournament(c.Request.Context(), req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	if wantsText(c) {
		writeText(c, func(b *bytes.Buffer) error { return report.Tournament(b, rep, verbose(c)) })
		return
	}
	response.WriteData(c, http.StatusOK, rep)
}

// runChampionship accepts an empty body and plays the default championship.
func (h *SimulationHandler) runChampionship(c *gin.Context) {
	var req service.ChampionshipRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.WriteError(c, service.ErrInvalidInput)
			return
		}
	}
	rep, err := h.svc.RunChampionship(c.Request.Context(), req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	if wantsText(c) {
		writeText(c, func(b *bytes.Buffer) error { return report.Championship(b, rep, verbose(c)) })
		return
	}
	response.WriteData(c, http.StatusOK, rep)
}

func wantsText(c *gin.Context) bool { return c.Query("format") == "text" }

func verbose(c *gin.Context) bool { return c.Query("verbose") == "true" }

func writeText(c *gin.Context, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}
