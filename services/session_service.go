package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/tilakWebkorps/Healthy-meal/models"
	"github.com/tilakWebkorps/Healthy-meal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when login is attempted with an unknown
// email or a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrNoSession is returned when logout is attempted without a valid session token.
var ErrNoSession = errors.New("no authenticated session")

// SessionService issues and revokes session tokens. Tokens are stateless JWTs;
// when a redis client is configured, logout records the token's jti so the
// auth middleware can reject it for the rest of its lifetime.
type SessionService interface {
	Login(email, password string) (string, error)
	Logout(tokenString string) error
	Authenticate(tokenString string) (*models.User, error)
}

type sessionService struct {
	userRepo repository.UserRepository
	rdb      *redis.Client // nil disables revocation
	secret   []byte
	tokenTTL time.Duration
}

// NewSessionService creates a new instance of SessionService. rdb may be nil.
func NewSessionService(userRepo repository.UserRepository, rdb *redis.Client, secret string, tokenTTL time.Duration) SessionService {
	return &sessionService{
		userRepo: userRepo,
		rdb:      rdb,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// Login verifies the credentials and mints an HS256 session token carrying
// the user id, a unique jti and an expiry.
func (s *sessionService) Login(email, password string) (string, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		errMsg := "failed to fetch user for login"
		log.Printf("ERROR: [SessionService] %s: %v", errMsg, err)
		return "", fmt.Errorf("%s: %w", errMsg, err)
	}
	if user == nil {
		log.Printf("WARN: [SessionService] Login attempt for unknown email.")
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordDigest), []byte(password)); err != nil {
		log.Printf("WARN: [SessionService] Login attempt with wrong password for user ID %d.", user.ID)
		return "", ErrInvalidCredentials
	}

	jti, err := newTokenID()
	if err != nil {
		return "", fmt.Errorf("failed to generate session token id: %w", err)
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": fmt.Sprintf("%d", user.ID),
		"jti": jti,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	log.Printf("INFO: [SessionService] User ID %d logged in.", user.ID)
	return signed, nil
}

// Logout revokes the session token. With no redis client the token is only
// validated; stateless tokens then simply age out at their expiry.
func (s *sessionService) Logout(tokenString string) error {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return ErrNoSession
	}
	if s.rdb == nil {
		return nil
	}

	jti, _ := claims["jti"].(string)
	exp, expErr := claims.GetExpirationTime()
	if jti == "" || expErr != nil || exp == nil {
		return ErrNoSession
	}
	ttl := time.Until(exp.Time)
	if ttl <= 0 {
		return ErrNoSession
	}
	if err := s.rdb.Set(context.Background(), revocationKey(jti), "1", ttl).Err(); err != nil {
		errMsg := "failed to record session revocation"
		log.Printf("ERROR: [SessionService] %s: %v", errMsg, err)
		return fmt.Errorf("%s: %w", errMsg, err)
	}
	log.Printf("INFO: [SessionService] Session %s revoked.", jti)
	return nil
}

// Authenticate parses the token, rejects revoked sessions and loads the user.
func (s *sessionService) Authenticate(tokenString string) (*models.User, error) {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return nil, ErrNoSession
	}

	if s.rdb != nil {
		if jti, _ := claims["jti"].(string); jti != "" {
			revoked, err := s.rdb.Exists(context.Background(), revocationKey(jti)).Result()
			if err != nil {
				errMsg := "failed to check session revocation"
				log.Printf("ERROR: [SessionService] %s: %v", errMsg, err)
				return nil, fmt.Errorf("%s: %w", errMsg, err)
			}
			if revoked > 0 {
				return nil, ErrNoSession
			}
		}
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, ErrNoSession
	}
	var userID uint
	if _, err := fmt.Sscanf(sub, "%d", &userID); err != nil {
		return nil, ErrNoSession
	}
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}
	if user == nil {
		return nil, ErrNoSession
	}
	return user, nil
}

func (s *sessionService) parseClaims(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrNoSession
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrNoSession
	}
	return claims, nil
}

func newTokenID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func revocationKey(jti string) string {
	return "session:revoked:" + jti
}
