package auth

import (
	"context"
	"errors"
	"strconv"

	"hrassistant/internal/domain"
)

// ErrInvalidCredentials is returned for a bad username/password pair.
// A non-numeric password counts as invalid credentials, not as an
// error, so the caller's attempt counter still advances.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Authenticator checks credentials against the user store. It holds no
// session state: the authenticated user is returned to the caller, who
// owns login attempts and any caching.
type Authenticator struct {
	store domain.UserStore
}

func New(store domain.UserStore) *Authenticator {
	return &Authenticator{store: store}
}

// Authenticate looks up the user (case-insensitive) and compares the
// integer password. Store failures propagate so the caller can tell an
// unreachable sheet from a wrong password.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	pw, err := strconv.Atoi(password)
	if err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	user, err := a.store.FindUser(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if user.Password != pw {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// Refresh re-reads the user record from the store so balance displays
// reflect external edits.
func (a *Authenticator) Refresh(ctx context.Context, username string) (domain.User, error) {
	return a.store.FindUser(ctx, username)
}
