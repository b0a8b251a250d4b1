package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// ShopIDKey is the gin context key the middleware sets for handlers.
const ShopIDKey = "shopID"

// Claims ties a token to one tenant shop.
type Claims struct {
	ShopID uint `json:"shop_id"`
	jwt.StandardClaims
}

// IssueToken mints a signed tenant token for a shop.
func IssueToken(secret string, shopID uint, ttl time.Duration) (string, error) {
	claims := Claims{
		ShopID: shopID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a token and returns the shop it belongs to.
func ParseToken(secret, tokenString string) (uint, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}
	return claims.ShopID, nil
}

// Middleware authenticates dashboard requests and puts the tenant shop ID on
// the request context.
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		shopID, err := ParseToken(secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ShopIDKey, shopID)
		c.Next()
	}
}

// ShopID reads the authenticated tenant from the request context.
func ShopID(c *gin.Context) uint {
	if v, ok := c.Get(ShopIDKey); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
