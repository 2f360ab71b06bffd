package jwt

import (
	"errors"
	"fmt"
	"slotpoker-server/internal/config"
	"time"

	jwtgo "github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Issuer issues the JWT
const Issuer = "slotpoker-server"

// Audience is the intended JWT audience
const Audience = "slotpoker"

var secret []byte
var ttl time.Duration

// LoadKeys will load the signing secret from the configuration
// this method should only be called once.
func LoadKeys() {
	cfg := config.Instance().JWT
	SetSecret(cfg.Secret, time.Duration(cfg.TTL)*time.Second)
}

// SetSecret sets the HMAC secret and the lifetime of issued tokens
// A ttl of zero issues tokens that do not expire
func SetSecret(s string, d time.Duration) {
	if s == "" {
		logrus.Fatal("jwt secret is empty")
	}

	secret = []byte(s)
	ttl = d
}

// Sign will sign a JWT for the account
func Sign(accountID uuid.UUID) (string, error) {
	if secret == nil {
		panic("LoadKeys() not called")
	}

	now := time.Now()
	claims := jwtgo.StandardClaims{
		Audience: Audience,
		Id:       uuid.New().String(),
		IssuedAt: now.Unix(),
		Issuer:   Issuer,
		Subject:  accountID.String(),
	}

	if ttl > 0 {
		claims.ExpiresAt = now.Add(ttl).Unix()
	}

	return jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, claims).SignedString(secret)
}

// ValidAccountID will validate a signed JWT and return the account it was issued for
func ValidAccountID(signedString string) (uuid.UUID, error) {
	if secret == nil {
		panic("LoadKeys() not called")
	}

	token, err := jwtgo.ParseWithClaims(signedString, &jwtgo.StandardClaims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodHMAC); !ok {
			return nil, errors.New("expected HS256 signing method")
		}

		return secret, nil
	})

	if err != nil {
		return uuid.Nil, err
	}

	if token.Valid {
		if claims, ok := token.Claims.(*jwtgo.StandardClaims); ok {
			if !claims.VerifyAudience(Audience, true) {
				return uuid.Nil, errors.New("invalid audience")
			}

			if claims.Issuer != Issuer {
				return uuid.Nil, errors.New("invalid issuer")
			}

			return uuid.Parse(claims.Subject)
		}

		return uuid.Nil, fmt.Errorf("expected jwt.StandardClaims, got %T", token.Claims)
	}

	logrus.Warn("token claims were not valid. did not expect to reach this code")
	return uuid.Nil, errors.New("claims were not valid")
}
