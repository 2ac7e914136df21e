package auth

import (
	"context"

	"github.com/simp-lee/forumclient/internal/domain"
	"github.com/simp-lee/forumclient/internal/pkg"
	"github.com/simp-lee/forumclient/internal/session"
	"github.com/simp-lee/forumclient/internal/transport"
)

// Service handles authentication against the forum backend and keeps the
// local session store in sync with its outcome.
type Service struct {
	client  *transport.Client
	session *session.Store
}

// NewService creates an auth Service bound to a transport and session store.
func NewService(client *transport.Client, store *session.Store) *Service {
	return &Service{client: client, session: store}
}

// Login authenticates with email and password. On success the returned token
// and user are persisted to the session store, so subsequent requests carry
// the bearer token automatically.
func (s *Service) Login(ctx context.Context, email, password string) transport.Result[domain.User] {
	req := LoginRequest{Email: email, Password: password}
	if err := pkg.ValidateStruct(req); err != nil {
		return transport.Fail[domain.User](err)
	}

	res := transport.Decode[AuthResponse](s.client.Post(ctx, "/auth/login", req, nil))
	if !res.Success {
		return transport.FailFrom[domain.User](res)
	}
	if res.Data.AccessToken == "" {
		return transport.Fail[domain.User](domain.NewAPIError(domain.CodeUnknown, "login response missing access token"))
	}

	if err := s.session.Login(res.Data.AccessToken, res.Data.User); err != nil {
		return transport.Fail[domain.User](domain.NewAPIError(domain.CodeUnknown, "failed to persist session: "+err.Error()))
	}
	return transport.OK(res.Data.User)
}

// Register creates a new account. The caller still needs to Login afterwards;
// the backend does not return a token on registration.
func (s *Service) Register(ctx context.Context, req RegisterRequest) transport.Result[domain.User] {
	if err := pkg.ValidateStruct(req); err != nil {
		return transport.Fail[domain.User](err)
	}
	return transport.Decode[domain.User](s.client.Post(ctx, "/auth/register", req, nil))
}

// Logout clears the local session. There is no server-side session to
// invalidate; the token simply stops being sent.
func (s *Service) Logout() error {
	return s.session.Logout()
}

// CurrentUser returns the cached user of the active session, if any.
func (s *Service) CurrentUser() (domain.User, bool) {
	return s.session.User()
}
