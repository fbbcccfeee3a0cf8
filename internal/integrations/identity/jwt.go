package identity

import (
	"context"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// JWTVerifier проверяет HS256 токены локально по общему секрету
// sub - ID пользователя, администратор определяется claim is_admin или role = "admin"
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier создает проверяющего токены
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Authenticate разбирает и проверяет токен, exp проверяется библиотекой
func (v *JWTVerifier) Authenticate(_ context.Context, tokenString string) (domain.Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return domain.Principal{}, fmt.Errorf("%w: invalid token: %v", ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Principal{}, fmt.Errorf("%w: invalid token claims", ErrUnauthorized)
	}

	userID, err := subject(claims["sub"])
	if err != nil {
		return domain.Principal{}, err
	}

	isAdmin, _ := claims["is_admin"].(bool)
	if role, _ := claims["role"].(string); role == RoleAdmin {
		isAdmin = true
	}

	return domain.Principal{UserID: userID, IsAdmin: isAdmin}, nil
}

// subject принимает sub как число или строку с числом
func subject(raw interface{}) (int64, error) {
	var id int64
	switch v := raw.(type) {
	case float64:
		id = int64(v)
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid sub %q", ErrUnauthorized, v)
		}
		id = parsed
	default:
		return 0, fmt.Errorf("%w: missing sub", ErrUnauthorized)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: invalid sub %d", ErrUnauthorized, id)
	}
	return id, nil
}
