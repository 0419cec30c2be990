package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	errs "github.com/civicgridhq/civicgrid/errors"
	"github.com/civicgridhq/civicgrid/models"
	"github.com/civicgridhq/civicgrid/server/response"
	"github.com/civicgridhq/civicgrid/services/jwt"
)

// Authorize validates the bearer token and loads the caller into the gin
// context. The token is issued elsewhere; this middleware is the auth-context
// boundary that turns it into an explicit (user, role) pair.
func (s *Server) Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := getTokenFromHeader(c)
		if accessToken == "" {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		accessClaims, err := jwt.ValidateAndGetClaims(accessToken, s.Config.JWTSecret)
		if err != nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		userIDValue := accessClaims["id"]
		var userID uint
		switch v := userIDValue.(type) {
		case float64:
			userID = uint(v)
		default:
			respondAndAbort(c, "", http.StatusBadRequest, nil, errs.New("invalid userID format", http.StatusBadRequest))
			return
		}

		user, err := s.UserRepository.FindUserByID(userID)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				respondAndAbort(c, "user not found", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
				return
			}
			respondAndAbort(c, "unable to find entity", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		c.Set("user", user)
		c.Set("userID", userID)
		c.Set("role", user.Role.Name)
		c.Next()
	}
}

// RequireRole gates a route group on the caller's role. Runs after Authorize.
func (s *Server) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != role {
			respondAndAbort(c, "", http.StatusForbidden, nil, errs.ErrForbidden)
			return
		}
		c.Next()
	}
}

func respondAndAbort(c *gin.Context, message string, status int, data interface{}, e error) {
	response.JSON(c, message, status, data, e)
	c.Abort()
}

func getTokenFromHeader(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// GetUserFromContext pulls the authenticated user set by Authorize.
func GetUserFromContext(c *gin.Context) (*models.User, error) {
	if userI, exists := c.Get("user"); exists {
		if user, ok := userI.(*models.User); ok {
			return user, nil
		}
	}
	return nil, errs.New("user is not logged in", http.StatusUnauthorized)
}

// voteRateLimiter slows down vote hammering per user. Enforcement of one vote
// per report is the ledger's unique index, not this limiter.
func voteRateLimiter() gin.HandlerFunc {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 30,
	})
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: func(c *gin.Context, info ratelimit.Info) {
			respondAndAbort(c, "too many requests", http.StatusTooManyRequests, nil,
				errs.New("rate limit exceeded, retry after "+time.Until(info.ResetTime).String(), http.StatusTooManyRequests))
		},
		KeyFunc: func(c *gin.Context) string {
			if userID, ok := c.Get("userID"); ok {
				return c.FullPath() + "|" + strconv.FormatUint(uint64(userID.(uint)), 10)
			}
			return c.ClientIP()
		},
	})
}
