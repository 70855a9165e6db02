package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultScoreLimit = 20
	maxScoreLimit     = 100
)

// HandleScores returns the scoreboard
func (ctx *Context) HandleScores(c *gin.Context) {
	limit := defaultScoreLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			badRequest(c, strconv.ErrSyntax)
			return
		}
		limit = min(n, maxScoreLimit)
	}
	scores, err := ctx.Manager.Scoreboard(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scores": scores})
}
