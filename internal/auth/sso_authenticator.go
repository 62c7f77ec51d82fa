package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	keyfunc "github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type SsoAuthenticator struct {
	keyFn func(t *jwt.Token) (any, error)
}

func NewSsoAuthenticatorWithKeyFn(keyFn func(t *jwt.Token) (any, error)) (*SsoAuthenticator, error) {
	return &SsoAuthenticator{keyFn: keyFn}, nil
}

func NewSsoAuthenticator(jwkCertUrl string) (*SsoAuthenticator, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	k, err := keyfunc.NewDefaultCtx(ctx, []string{jwkCertUrl})
	if err != nil {
		return nil, fmt.Errorf("failed to get sso public keys: %w", err)
	}

	return &SsoAuthenticator{keyFn: k.Keyfunc}, nil
}

func (s *SsoAuthenticator) Authenticate(token string) (User, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name}), jwt.WithIssuedAt(), jwt.WithExpirationRequired())
	t, err := parser.Parse(token, s.keyFn)
	if err != nil {
		zap.S().Named("auth").Errorw("failed to parse or the token is invalid", "error", err)
		return User{}, fmt.Errorf("failed to authenticate token: %w", err)
	}

	if !t.Valid {
		return User{}, fmt.Errorf("failed to parse or validate token")
	}

	return s.parseToken(t)
}

func (s *SsoAuthenticator) parseToken(userToken *jwt.Token) (User, error) {
	claims, ok := userToken.Claims.(jwt.MapClaims)
	if !ok {
		return User{}, errors.New("failed to parse jwt token claims")
	}

	username, ok := claims["preferred_username"].(string)
	if !ok {
		return User{}, errors.New("missing preferred_username claim")
	}
	orgID, ok := claims["org_id"].(string)
	if !ok {
		return User{}, errors.New("missing org_id claim")
	}

	return User{
		Username:     username,
		Organization: orgID,
		Token:        userToken,
	}, nil
}

func (s *SsoAuthenticator) Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accessToken := r.Header.Get("Authorization")
		if accessToken == "" || len(accessToken) < len("Bearer ") {
			http.Error(w, "No token provided", http.StatusUnauthorized)
			return
		}

		accessToken = accessToken[len("Bearer "):]
		user, err := s.Authenticate(accessToken)
		if err != nil {
			http.Error(w, "authentication failed", http.StatusUnauthorized)
			return
		}

		ctx := NewUserContext(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
