package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aaronzipp/who-is-the-wolf/internal/game"
)

// HandleLeave removes the caller from a lobby or forfeits their seat in a running game
func (ctx *Context) HandleLeave(c *gin.Context) {
	uid, _ := identity(c)
	s, err := ctx.Manager.Execute(c.Request.Context(), sessionID(c), game.LeaveCommand{UserID: uid})
	if err != nil {
		writeError(c, err)
		return
	}
	writeView(c, http.StatusOK, s)
}

// HandleAddBots fills the free seats with computer players, which starts the game
func (ctx *Context) HandleAddBots(c *gin.Context) {
	uid, _ := identity(c)
	s, err := ctx.Manager.Execute(c.Request.Context(), sessionID(c), game.AddBotsCommand{RequesterID: uid})
	if err != nil {
		writeError(c, err)
		return
	}
	writeView(c, http.StatusOK, s)
}
