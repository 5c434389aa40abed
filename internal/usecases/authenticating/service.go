package authenticating

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/oddsdesk/bet-metrics-api/internal/config"
	"github.com/oddsdesk/bet-metrics-api/internal/domain"
)

// Authenticator is the toy single-credential gate in front of the analysis
// endpoints. One shared ops login, a short-lived JWT, nothing more; it is
// deliberately not a real user system.
type Authenticator interface {
	Login(username, password string) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	cfg *config.Config
}

func NewService(cfg *config.Config) Authenticator {
	return &Service{cfg: cfg}
}

// Login checks the shared credential and issues a JWT on success.
func (s *Service) Login(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrMissingRequiredData
	}

	userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Auth.OpsUser)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.Auth.OpsPasswordHash), []byte(password))
	if !userMatch || passErr != nil {
		logrus.WithField("username", username).Warn("authenticating: rejected login attempt")
		return "", ErrInvalidCredentials
	}

	token, err := generateJWT(username, s.cfg.Auth.Secret)
	if err != nil {
		return "", err
	}

	logrus.WithField("username", username).Info("authenticating: login succeeded")
	return token, nil
}

// ValidateToken parses and verifies a bearer token.
func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func generateJWT(username, secret string) (string, error) {
	claims := domain.Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
