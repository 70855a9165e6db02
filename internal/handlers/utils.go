package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/aaronzipp/who-is-the-wolf/internal/game"
	"github.com/aaronzipp/who-is-the-wolf/internal/models"
	"github.com/aaronzipp/who-is-the-wolf/internal/render"
	"github.com/aaronzipp/who-is-the-wolf/internal/store"
)

const (
	identityCookie = "wolf_session"
	keyUserID      = "uid"
	keyName        = "name"
	maxNameLength  = 32
)

var errInvalidName = errors.New("name must be 1 to 32 characters")

// IdentityMiddleware gives every visitor a stable user id kept in the cookie session
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		uid, _ := session.Get(keyUserID).(string)
		if uid == "" {
			uid = uuid.NewString()
			session.Set(keyUserID, uid)
			if err := session.Save(); err != nil {
				log.Error().Err(err).Str("module", "handlers").Msg("failed to save identity")
			}
		}
		name, _ := session.Get(keyName).(string)
		c.Set(keyUserID, uid)
		c.Set(keyName, name)
		c.Next()
	}
}

// identity returns the caller's user id and display name. Callers that never
// picked a name get a guest name derived from their id.
func identity(c *gin.Context) (string, string) {
	uid := c.GetString(keyUserID)
	name := c.GetString(keyName)
	if name == "" {
		name = "Guest " + strings.ToUpper(uid[:4])
	}
	return uid, name
}

func normalizeName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return "", errInvalidName
	}
	return name, nil
}

// apiError maps an error onto a status code and a machine readable code
func apiError(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, game.ErrInvalidConfig):
		return http.StatusBadRequest, "invalid_config"
	case errors.Is(err, game.ErrInvalidClueCount):
		return http.StatusBadRequest, "invalid_clues"
	case errors.Is(err, game.ErrInvalidTarget):
		return http.StatusBadRequest, "invalid_target"
	case errors.Is(err, errInvalidName):
		return http.StatusBadRequest, "invalid_name"
	case errors.Is(err, game.ErrNotCreator):
		return http.StatusForbidden, "not_creator"
	case errors.Is(err, game.ErrNotInGame):
		return http.StatusForbidden, "not_in_game"
	case errors.Is(err, game.ErrGameFull):
		return http.StatusConflict, "game_full"
	case errors.Is(err, game.ErrGameAlreadyStarted):
		return http.StatusConflict, "already_started"
	case errors.Is(err, game.ErrAlreadyJoined):
		return http.StatusConflict, "already_joined"
	case errors.Is(err, game.ErrGameAlreadyEnded):
		return http.StatusConflict, "already_ended"
	case errors.Is(err, game.ErrWrongPhase):
		return http.StatusConflict, "wrong_phase"
	}
	return http.StatusInternalServerError, "internal"
}

func writeError(c *gin.Context, err error) {
	status, code := apiError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("module", "handlers").Str("path", c.FullPath()).Msg("request failed")
		msg = "internal error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg, "code": code})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request: %v", err), "code": "bad_request"})
}

// writeView answers with the session as the caller may see it
func writeView(c *gin.Context, status int, s *models.Session) {
	uid, _ := identity(c)
	c.JSON(status, render.Session(s, uid))
}
