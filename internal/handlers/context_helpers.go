package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/domain/access"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
)

// callerFrom builds the access.Caller from what AuthMiddleware stored.
// On failure it writes the response and returns false.
func callerFrom(c *gin.Context, lookup access.BarberLookup, log *zap.Logger) (access.Caller, bool) {
	uid, ok1 := c.Get(middleware.ContextUserID)
	role, ok2 := c.Get(middleware.ContextUserRole)
	userID, ok3 := uid.(uint)
	roleStr, ok4 := role.(string)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		httperr.Unauthorized(c, "user_not_in_context", "Authentication required.")
		return access.Caller{}, false
	}

	caller, err := access.Resolve(c.Request.Context(), lookup, userID, roleStr)
	if err != nil {
		httperr.Respond(c, log, err)
		return access.Caller{}, false
	}
	return caller, true
}
