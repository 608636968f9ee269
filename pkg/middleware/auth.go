package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/subscription-insights-api/pkg/apiErrors"
)

type contextKey string

const (
	ContextKeyClaims contextKey = "claims"

	// AdminRole é o papel exigido nas rotas administrativas (cron)
	AdminRole = "admin"
)

// Claims são as informações esperadas no token das rotas administrativas
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

var errInvalidSigningMethod = errors.New("método de assinatura inesperado")

// AdminOnly exige um Bearer token HS256 assinado com secret e com role=admin.
// Sem secret configurado as rotas ficam desabilitadas.
func AdminOnly(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Rotas administrativas desabilitadas: AUTH_SECRET não configurado")
				return
			}

			authHeader := r.Header.Get("Authorization")
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if authHeader == "" || tokenString == authHeader {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Bearer token é obrigatório")
				return
			}

			claims, err := ParseToken(tokenString, secret)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token inválido")
				return
			}

			if claims.Role != AdminRole {
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem acessar esta rota")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ParseToken valida a assinatura e a expiração do token
func ParseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidSigningMethod
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}
