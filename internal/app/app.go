// Package app is the client session: the local task list, the stored login
// token and the auth API behind one value.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/yukikurage/listify/internal/client"
	"github.com/yukikurage/listify/internal/dto"
	"github.com/yukikurage/listify/internal/storage"
	"github.com/yukikurage/listify/internal/tasklist"
)

const KeyToken = "token"

var ErrNotLoggedIn = errors.New("not logged in")

// AuthAPI is the subset of the API client the app needs.
type AuthAPI interface {
	Register(ctx context.Context, req client.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req client.LoginRequest) (*dto.AuthResponse, error)
	Verify(ctx context.Context, token string) (*dto.VerifiedUserDTO, error)
	Me(ctx context.Context, token string) (*dto.UserDTO, error)
}

type App struct {
	Tasks  *tasklist.Manager
	store  storage.Store
	api    AuthAPI
	logger *slog.Logger
}

func New(store storage.Store, api AuthAPI, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		Tasks:  tasklist.NewManager(store),
		store:  store,
		api:    api,
		logger: logger,
	}
}

// Load restores the task list and draft. Login state is independent of it.
func (a *App) Load(ctx context.Context) error {
	return a.Tasks.Load(ctx)
}

func (a *App) Register(ctx context.Context, username, email, password string) (*dto.AuthResponse, error) {
	resp, err := a.api.Register(ctx, client.RegisterRequest{
		Username: username,
		Password: password,
		Email:    email,
	})
	if err != nil {
		return nil, err
	}
	if err := a.saveToken(ctx, resp.Token); err != nil {
		return nil, err
	}
	a.logger.Debug("registered", "username", resp.User.Username)
	return resp, nil
}

func (a *App) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	resp, err := a.api.Login(ctx, client.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if err := a.saveToken(ctx, resp.Token); err != nil {
		return nil, err
	}
	a.logger.Debug("logged in", "email", resp.User.Email)
	return resp, nil
}

// Verify asks the server who owns the stored token. A token the server does
// not recognize is dropped locally and ErrNotLoggedIn is returned.
func (a *App) Verify(ctx context.Context) (*dto.VerifiedUserDTO, error) {
	token, err := a.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrNotLoggedIn
	}

	user, err := a.api.Verify(ctx, token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		a.logger.Info("stored token rejected, logging out")
		if err := a.Logout(ctx); err != nil {
			return nil, err
		}
		return nil, ErrNotLoggedIn
	}
	return user, nil
}

// Profile fetches the full account behind the stored token. A 401 from the
// server drops the token like Verify does.
func (a *App) Profile(ctx context.Context) (*dto.UserDTO, error) {
	token, err := a.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrNotLoggedIn
	}

	user, err := a.api.Me(ctx, token)
	if client.StatusOf(err) == http.StatusUnauthorized {
		a.logger.Info("stored token rejected, logging out")
		if err := a.Logout(ctx); err != nil {
			return nil, err
		}
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Logout forgets the stored token. The server keeps it.
func (a *App) Logout(ctx context.Context) error {
	if err := a.store.Delete(ctx, KeyToken); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// Token returns the stored token, or "" when logged out.
func (a *App) Token(ctx context.Context) (string, error) {
	token, _, err := a.store.Load(ctx, KeyToken)
	if err != nil {
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return token, nil
}

func (a *App) saveToken(ctx context.Context, token string) error {
	if err := a.store.Save(ctx, KeyToken, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}
