package auth

import (
	"net/http"

	"github.com/powhr/talentflow/internal/config"
	"go.uber.org/zap"
)

type Authenticator interface {
	Authenticator(next http.Handler) http.Handler
}

const (
	SsoAuthentication  string = "sso"
	NoneAuthentication string = "none"
)

func NewAuthenticator(authConfig config.Auth) (Authenticator, error) {
	zap.S().Named("auth").Infof("authentication: '%s'", authConfig.AuthenticationType)

	switch authConfig.AuthenticationType {
	case SsoAuthentication:
		return NewSsoAuthenticator(authConfig.JwkCertURL)
	default:
		return NewNoneAuthenticator()
	}
}
