// Package services hosts the domain services the screens call. Each service
// wraps the single data.Source chosen at startup; the mock/real decision
// never appears here.
package services

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/tetoca/tetoca-go/internal/data"
	"github.com/tetoca/tetoca-go/internal/models"
	"github.com/tetoca/tetoca-go/internal/session"
	"github.com/tetoca/tetoca-go/internal/storage"
	"github.com/tetoca/tetoca-go/internal/transport"
)

type Auth struct {
	source   data.Source
	local    storage.Store
	sessions *session.Manager
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewAuth(source data.Source, local storage.Store, sessions *session.Manager, logger zerolog.Logger) *Auth {
	return &Auth{
		source:   source,
		local:    local,
		sessions: sessions,
		validate: validator.New(),
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

func (a *Auth) Login(ctx context.Context, email, password string) (models.User, error) {
	creds := data.Credentials{Email: email, Password: password}
	if err := a.validate.Struct(creds); err != nil {
		return models.User{}, &transport.APIError{Code: transport.CodeBadRequest, Message: err.Error()}
	}
	sess, err := a.source.Login(ctx, creds)
	if err != nil {
		return models.User{}, err
	}
	if err := a.local.Set(storage.KeyAuthToken, sess.Token); err != nil {
		return models.User{}, err
	}
	a.sessions.SignIn(sess.User)
	return sess.User, nil
}

func (a *Auth) Register(ctx context.Context, input data.RegisterInput) (models.User, error) {
	if err := a.validate.Struct(input); err != nil {
		return models.User{}, &transport.APIError{Code: transport.CodeBadRequest, Message: err.Error()}
	}
	sess, err := a.source.Register(ctx, input)
	if err != nil {
		return models.User{}, err
	}
	if err := a.local.Set(storage.KeyAuthToken, sess.Token); err != nil {
		return models.User{}, err
	}
	a.sessions.SignIn(sess.User)
	return sess.User, nil
}

// Logout clears local state even when the remote call fails, and reports
// success as a bool instead of an error.
func (a *Auth) Logout(ctx context.Context) bool {
	err := a.source.Logout(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("remote logout failed, clearing local session anyway")
	}
	_ = a.local.Delete(storage.KeyAuthToken)
	_ = a.local.Delete(storage.KeyTenantID)
	a.sessions.SignOut()
	return err == nil
}

func (a *Auth) IsAuthenticated() bool {
	token, err := a.local.Get(storage.KeyAuthToken)
	return err == nil && token != ""
}

// CurrentUser returns (nil, nil) when there is no usable session: either no
// token is stored, or the backend rejected it (in which case the transport
// has already discarded it).
func (a *Auth) CurrentUser(ctx context.Context) (*models.User, error) {
	if !a.IsAuthenticated() {
		return nil, nil
	}
	user, err := a.source.CurrentUser(ctx)
	if err != nil {
		if transport.IsUnauthorized(err) {
			_ = a.local.Delete(storage.KeyAuthToken)
			a.sessions.SetUser(nil)
			return nil, nil
		}
		return nil, err
	}
	a.sessions.SetUser(&user)
	return &user, nil
}

func (a *Auth) SetTenant(tenantID string) error {
	if tenantID == "" {
		if err := a.local.Delete(storage.KeyTenantID); err != nil {
			return err
		}
		a.sessions.SetTenant("")
		return nil
	}
	if err := a.local.Set(storage.KeyTenantID, tenantID); err != nil {
		return err
	}
	a.sessions.SetTenant(tenantID)
	return nil
}

func (a *Auth) CurrentTenantID() string {
	tenantID, _ := a.local.Get(storage.KeyTenantID)
	return tenantID
}
