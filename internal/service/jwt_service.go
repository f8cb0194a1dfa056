package service

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// TokenVerifier valida los access tokens emitidos por el servicio de identidad.
// Este servicio no emite tokens; solo comprueba firma, emisor y expiracion.
type TokenVerifier struct {
	secret []byte
	issuer string
}

type Claims struct {
	SubjectID string `json:"uid"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

var (
	ErrJWTInvalid = errors.New("jwt invalid")
	ErrJWTExpired = errors.New("jwt expired")
)

func NewTokenVerifier(secret, issuer string) *TokenVerifier {
	if strings.TrimSpace(issuer) == "" {
		issuer = "veda-auth"
	}
	return &TokenVerifier{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// Enabled indica si hay secreto configurado.
func (v *TokenVerifier) Enabled() bool {
	return v != nil && len(v.secret) > 0
}

func (v *TokenVerifier) ParseAccessToken(accessToken string) (Claims, error) {
	if !v.Enabled() {
		return Claims{}, ErrJWTInvalid
	}
	if strings.TrimSpace(accessToken) == "" {
		return Claims{}, ErrJWTInvalid
	}
	claims, err := v.parseToken(accessToken)
	if err != nil {
		return Claims{}, err
	}
	if claims.TokenType != "access" {
		return Claims{}, ErrJWTInvalid
	}
	if !v.isValidClaims(claims) {
		return Claims{}, ErrJWTInvalid
	}
	return claims, nil
}

func (v *TokenVerifier) parseToken(tokenString string) (Claims, error) {
	var claims Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrJWTExpired
		}
		return Claims{}, ErrJWTInvalid
	}
	return claims, nil
}

func (v *TokenVerifier) isValidClaims(claims Claims) bool {
	if strings.TrimSpace(claims.SubjectID) == "" {
		return false
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return false
	}
	if claims.Subject != claims.SubjectID {
		return false
	}
	return strings.TrimSpace(claims.Issuer) == v.issuer
}
