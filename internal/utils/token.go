package utils

import (
	"time"

	novelhub "novelhub/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type UserClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

var expireDuration time.Duration
var jwtKey []byte
var issuer string

func InitToken() {
	// 读取配置
	expireDuration = time.Duration(viper.GetInt64("service.token.access_token_expire_duration")) * time.Second
	jwtKey = []byte(viper.GetString("service.token.secret"))
	issuer = viper.GetString("service.token.issuer")
}

func GenToken(userID int64) (string, error) {
	claims := &UserClaims{
		userID,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expireDuration)),
			Issuer:    issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

func ParseToken(tokenStr string) (userID int64, err error) {
	token, err := jwt.ParseWithClaims(tokenStr, &UserClaims{}, func(t *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, novelhub.ErrExpiredToken
		}
		return 0, err
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return 0, novelhub.ErrInvalidToken
	}

	return claims.UserID, nil
}
