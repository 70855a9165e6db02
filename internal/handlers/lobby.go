package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"

	"github.com/aaronzipp/who-is-the-wolf/internal/game"
)

const qrSize = 256

type identityRequest struct {
	Name string `json:"name"`
}

type createRequest struct {
	Capacity      *int `json:"capacity"`
	MinorityCount *int `json:"minorityCount"`
}

// HandleSetIdentity stores the caller's display name
func (ctx *Context) HandleSetIdentity(c *gin.Context) {
	var req identityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	name, err := normalizeName(req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	session := sessions.Default(c)
	session.Set(keyName, name)
	if err := session.Save(); err != nil {
		writeError(c, err)
		return
	}
	c.Set(keyName, name)
	ctx.HandleMe(c)
}

// HandleMe returns the caller's identity
func (ctx *Context) HandleMe(c *gin.Context) {
	uid, name := identity(c)
	c.JSON(http.StatusOK, gin.H{"userId": uid, "displayName": name})
}

// HandleListLobbies lists the sessions that can still be joined
func (ctx *Context) HandleListLobbies(c *gin.Context) {
	lobbies, err := ctx.Manager.OpenLobbies(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": lobbies})
}

// HandleCreateSession creates a new session with the caller as creator
func (ctx *Context) HandleCreateSession(c *gin.Context) {
	var req createRequest
	// an empty body keeps the configured defaults
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return
	}
	capacity, minority := ctx.Config.Game.Capacity, ctx.Config.Game.MinorityCount
	if req.Capacity != nil {
		capacity = *req.Capacity
	}
	if req.MinorityCount != nil {
		minority = *req.MinorityCount
	}

	uid, name := identity(c)
	s, err := ctx.Manager.Create(c.Request.Context(), uid, name, capacity, minority)
	if err != nil {
		writeError(c, err)
		return
	}
	writeView(c, http.StatusCreated, s)
}

// HandleJoin enrolls the caller in a waiting session
func (ctx *Context) HandleJoin(c *gin.Context) {
	uid, name := identity(c)
	s, err := ctx.Manager.Execute(c.Request.Context(), sessionID(c), game.JoinCommand{UserID: uid, DisplayName: name})
	if err != nil {
		writeError(c, err)
		return
	}
	writeView(c, http.StatusOK, s)
}

// HandleQRCode renders the join link of a session as a PNG QR code
func (ctx *Context) HandleQRCode(c *gin.Context) {
	id := sessionID(c)
	if _, err := ctx.Manager.Get(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	png, err := qrcode.Encode(ctx.joinURL(id), qrcode.Medium, qrSize)
	if err != nil {
		log.Error().Err(err).Str("module", "handlers").Str("session", id).Msg("qr encode failed")
		writeError(c, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/png", png)
}

func (ctx *Context) joinURL(id string) string {
	return strings.TrimRight(ctx.Config.PublicURL, "/") + "/join/" + id
}

// sessionID reads the room code from the path; codes are case insensitive
func sessionID(c *gin.Context) string {
	return strings.ToUpper(strings.TrimSpace(c.Param("id")))
}
