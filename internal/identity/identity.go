// Package identity resolves request credentials into an Actor. There is no
// ambient current-user state: every handler receives the Actor through the
// request context and passes it down explicitly.
package identity

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jfarias-dev/ligauni/pkg/token"
)

const (
	RoleAdmin      = "admin"
	RolePlanillero = "planillero"

	// ContextActorKey is where the identity middleware stores the Actor.
	ContextActorKey = "currentActor"
)

// Actor is the resolved identity of a request: the external identity
// service's verdict plus the local profile row, when one exists.
type Actor struct {
	Authenticated bool
	Admin         bool
	ProfileID     uint
	AuthID        string
	Username      string
	Roles         []string
}

// Anonymous is the actor attached to unauthenticated requests.
func Anonymous() Actor {
	return Actor{}
}

// HasRole reports whether the actor carries the given role.
func (a Actor) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Resolve is a pure function of validated claims and the matching local
// profile id. The identity service is trusted verbatim (admin flag comes
// from the token's roles, never from local state).
func Resolve(claims *token.Claims, profileID uint) Actor {
	if claims == nil {
		return Anonymous()
	}
	return Actor{
		Authenticated: true,
		Admin:         claims.HasRole(RoleAdmin),
		ProfileID:     profileID,
		AuthID:        claims.Subject,
		Username:      claims.Username,
		Roles:         claims.Roles,
	}
}

// FromContext retrieves the Actor the identity middleware attached.
// Requests that skipped the middleware resolve to the anonymous actor.
func FromContext(c *gin.Context) Actor {
	val, exists := c.Get(ContextActorKey)
	if !exists {
		return Anonymous()
	}
	actor, ok := val.(Actor)
	if !ok {
		return Anonymous()
	}
	return actor
}

// RequireFromContext is FromContext for handlers behind RequireAuth.
func RequireFromContext(c *gin.Context) (Actor, error) {
	actor := FromContext(c)
	if !actor.Authenticated {
		return actor, errors.New("actor not found in context")
	}
	return actor, nil
}
