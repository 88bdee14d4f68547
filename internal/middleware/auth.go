package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prepwise/prepwise/internal/dto"
	"github.com/prepwise/prepwise/internal/model"
	"github.com/prepwise/prepwise/internal/service"
)

// SessionCookieName is the HTTP-only cookie carrying the session token.
const SessionCookieName = "session"

// CurrentUserKey is the gin context key under which the resolved user is stored.
const CurrentUserKey = "currentUser"

// RequireAuth resolves the acting user from the session cookie and refuses
// with 401 when the session is absent, unknown or expired.
func RequireAuth(authService service.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(SessionCookieName)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Success: false, Error: "Authentication required"})
			return
		}

		user, err := authService.GetCurrentUser(token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Success: false, Error: "Authentication required"})
			return
		}

		ctx.Set(CurrentUserKey, user)
		ctx.Next()
	}
}

// CurrentUser fetches the user stored by RequireAuth.
func CurrentUser(ctx *gin.Context) *model.User {
	if value, exists := ctx.Get(CurrentUserKey); exists {
		if user, ok := value.(*model.User); ok {
			return user
		}
	}
	return nil
}
