package auth

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const identityKey = "auth.identity"

// unauthorizedMessage is the single caller-visible rejection text. The
// internal failure kind (missing vs malformed vs expired) goes to the log
// only, never to the client.
const unauthorizedMessage = "unauthorized, please log in"

// Gate authenticates every request except CORS preflights and whitelisted
// paths. On success the verified identity is attached to the request context
// for the handler chain; the gin context dies with the request, so the
// identity never outlives it. On any failure the request is aborted with a
// uniform 401 envelope before business handlers run.
func Gate(codec *Codec, whitelist Whitelist) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		if whitelist.IsPublic(c.Request.URL.Path) {
			c.Next()
			return
		}

		header := strings.TrimSpace(c.GetHeader(HeaderAuthorization))
		if header == "" {
			reject(c, ErrMissingCredential)
			return
		}
		if !strings.HasPrefix(header, BearerPrefix) {
			reject(c, ErrMalformedCredential)
			return
		}

		id, err := codec.Parse(header)
		if err != nil {
			reject(c, err)
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

func reject(c *gin.Context, reason error) {
	log.Printf("auth: rejected %s %s: %v", c.Request.Method, c.Request.URL.Path, reason)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":    http.StatusUnauthorized,
		"message": unauthorizedMessage,
		"data":    nil,
	})
}

// CurrentIdentity returns the identity the gate attached for this request.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := value.(Identity)
	return id, ok
}

func CurrentUserID(c *gin.Context) (int64, bool) {
	id, ok := CurrentIdentity(c)
	if !ok {
		return 0, false
	}
	return id.UserID, true
}
