package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/simp-lee/logger"
	"gorm.io/gorm"

	"github.com/simp-lee/forumclient/internal/config"
	"github.com/simp-lee/forumclient/internal/controller"
	"github.com/simp-lee/forumclient/internal/module/adminuser"
	"github.com/simp-lee/forumclient/internal/module/auth"
	"github.com/simp-lee/forumclient/internal/module/comment"
	"github.com/simp-lee/forumclient/internal/module/institution"
	"github.com/simp-lee/forumclient/internal/module/notice"
	"github.com/simp-lee/forumclient/internal/module/notification"
	"github.com/simp-lee/forumclient/internal/module/post"
	"github.com/simp-lee/forumclient/internal/module/report"
	"github.com/simp-lee/forumclient/internal/session"
	"github.com/simp-lee/forumclient/internal/transport"
)

// App holds the wired client: the shared transport, the persisted session
// and one service per resource.
type App struct {
	cfg    *config.Config
	logger *logger.Logger
	db     *gorm.DB

	Session   *session.Store
	Transport *transport.Client
	Notifier  controller.Notifier

	Auth          *auth.Service
	Reports       *report.Service
	Comments      *comment.Service
	Notices       *notice.Service
	Institutions  *institution.Service
	Users         *adminuser.Service
	Posts         *post.Service
	Notifications *notification.Service
}

// New creates and wires a fully configured App from the given Config.
//
// It sets up logging, the session database, hydrates the stored session
// and builds the transport plus one service per resource.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	success := false

	// 1. Setup logger.
	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	defer func() {
		if success {
			return
		}
		if err := log.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}()

	// 2. Setup the session database and hydrate the stored session.
	db, err := config.SetupSessionDB(&cfg.Session, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("setup session database: %w", err)
	}
	defer func() {
		if success {
			return
		}
		if err := config.CloseSessionDB(db); err != nil {
			slog.Error("session database close error", slog.Any("error", err))
		}
	}()

	store, err := session.NewStore(db)
	if err != nil {
		return nil, fmt.Errorf("create session store: %w", err)
	}
	if err := store.Hydrate(); err != nil {
		return nil, fmt.Errorf("hydrate session: %w", err)
	}

	// 3. Shared transport; the session store doubles as the token source,
	// so a 401 wipes the stored login.
	client := transport.New(transport.Options{
		BaseURL:   cfg.API.BaseURL,
		UserAgent: cfg.API.UserAgent,
		Timeout:   cfg.RequestTimeout(),
		Tokens:    store,
		Logger:    log.Logger,
	})

	// 4. Manual dependency injection: transport → services.
	a := &App{
		cfg:       cfg,
		logger:    log,
		db:        db,
		Session:   store,
		Transport: client,
		Notifier:  controller.NewSlogNotifier(log.Logger),

		Auth:          auth.NewService(client, store),
		Reports:       report.NewService(client),
		Comments:      comment.NewService(client),
		Notices:       notice.NewService(client),
		Institutions:  institution.NewService(client),
		Users:         adminuser.NewService(client),
		Posts:         post.NewService(client),
		Notifications: notification.NewService(client),
	}

	log.Info("client wired",
		slog.String("base_url", cfg.API.BaseURL),
		slog.Bool("authenticated", store.Authenticated()))

	success = true
	return a, nil
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger.Logger
}

// Close aborts in-flight requests and releases the session database and
// the logger.
func (a *App) Close() error {
	a.Transport.CancelAll()

	var errs []error
	if err := config.CloseSessionDB(a.db); err != nil {
		errs = append(errs, fmt.Errorf("close session database: %w", err))
	}
	if err := a.logger.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close logger: %w", err))
	}
	return errors.Join(errs...)
}
