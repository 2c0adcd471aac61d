package web

import (
	"log"
	"net/http"

	"miniblog/internal/session"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// CurrentIdentity resolves the session cookie into an identity and
// stores it in the request context. A missing, forged or expired cookie
// leaves the request anonymous; a store failure is logged and also
// falls back to anonymous rather than failing the request.
func (h *Handler) CurrentIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cookie, err := c.Cookie(sessionCookie); err == nil && cookie != "" {
			ident, err := h.sessions.Resolve(cookie)
			if err != nil {
				log.Printf("Failed to resolve session: %v", err)
			} else if ident != nil {
				c.Set(identityKey, ident)
			}
		}
		c.Next()
	}
}

// RequireAuth redirects anonymous requests to the login form.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identityFrom(c) == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// identityFrom returns the resolved identity for this request, or nil
// when the request is anonymous.
func identityFrom(c *gin.Context) *session.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	ident, ok := v.(*session.Identity)
	if !ok {
		return nil
	}
	return ident
}
