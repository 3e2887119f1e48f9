package middleware

import (
	"errors"
	"strings"
	"time"

	"FinControl/config"
	appErrors "FinControl/internal/errors"
	"FinControl/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

type Claims struct {
	UserID string `json:"user_id,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Subject devolve o usuário do token, aceitando tanto "user_id" quanto "sub".
func (c *Claims) Subject() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.RegisteredClaims.Subject
}

type JwtService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewJwtService(cfg config.JWTConfig) (*JwtService, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, errors.New("jwt secret não configurado")
	}
	return &JwtService{secret: []byte(cfg.Secret), issuer: cfg.Issuer, now: time.Now}, nil
}

func (s *JwtService) GenerateToken(userID, role string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *JwtService) ParseToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, appErrors.ErrInvalidToken.WithError(err)
	}
	if !token.Valid {
		return nil, appErrors.ErrInvalidToken
	}

	if _, err := pkg.ParseULID(claims.Subject()); err != nil {
		return nil, appErrors.ErrInvalidToken.WithError(err)
	}
	return claims, nil
}

func AuthMiddleware(jwtService *JwtService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortWithError(c, appErrors.ErrUnauthorized)
			return
		}

		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abortWithError(c, appErrors.ErrInvalidToken)
			return
		}

		claims, err := jwtService.ParseToken(strings.TrimSpace(token))
		if err != nil {
			abortWithError(c, appErrors.FromError(err))
			return
		}

		c.Set(ContextUserID, claims.Subject())
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != role {
			abortWithError(c, appErrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

func abortWithError(c *gin.Context, err *appErrors.AppError) {
	payload := gin.H{
		"error":   err.Code,
		"message": err.Message,
	}
	if len(err.Details) > 0 {
		payload["details"] = err.Details
	}
	c.AbortWithStatusJSON(err.StatusCode, payload)
}
