package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aaronzipp/who-is-the-wolf/internal/game"
)

type cluesRequest struct {
	Clues []string `json:"clues" binding:"required"`
}

type voteRequest struct {
	Target string `json:"target" binding:"required"`
}

// HandleGetSession returns the session as the caller may see it
func (ctx *Context) HandleGetSession(c *gin.Context) {
	s, err := ctx.Manager.Get(c.Request.Context(), sessionID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	writeView(c, http.StatusOK, s)
}

// HandleSubmitClues stores the caller's three clues
func (ctx *Context) HandleSubmitClues(c *gin.Context) {
	var req cluesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	uid, _ := identity(c)
	s, err := ctx.Manager.Execute(c.Request.Context(), sessionID(c), game.SubmitCluesCommand{UserID: uid, Clues: req.Clues})
	if err != nil {
		writeError(c, err)
		return
	}
	writeView(c, http.StatusOK, s)
}

// HandleVote records the caller's suspect for the current round
func (ctx *Context) HandleVote(c *gin.Context) {
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	uid, _ := identity(c)
	s, err := ctx.Manager.Execute(c.Request.Context(), sessionID(c), game.CastVoteCommand{VoterID: uid, TargetID: req.Target})
	if err != nil {
		writeError(c, err)
		return
	}
	writeView(c, http.StatusOK, s)
}
