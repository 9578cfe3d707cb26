package app

import (
	"net/http"

	"gorm.io/gorm"

	"sponsorship-app-go/internal/config"
	"sponsorship-app-go/internal/db"
	childrendomain "sponsorship-app-go/internal/domain/children"
	photosdomain "sponsorship-app-go/internal/domain/photos"
	proxiesdomain "sponsorship-app-go/internal/domain/proxies"
	schoolsdomain "sponsorship-app-go/internal/domain/schools"
	sponsorsdomain "sponsorship-app-go/internal/domain/sponsors"
	userdomain "sponsorship-app-go/internal/domain/user"
	childrenrepo "sponsorship-app-go/internal/repository/postgres/children"
	photosrepo "sponsorship-app-go/internal/repository/postgres/photos"
	proxiesrepo "sponsorship-app-go/internal/repository/postgres/proxies"
	schoolsrepo "sponsorship-app-go/internal/repository/postgres/schools"
	sponsorsrepo "sponsorship-app-go/internal/repository/postgres/sponsors"
	userrepo "sponsorship-app-go/internal/repository/postgres/user"
	"sponsorship-app-go/internal/session"
	"sponsorship-app-go/internal/transport/httpserver"
	"sponsorship-app-go/internal/transport/httpserver/handler"
	authmw "sponsorship-app-go/internal/transport/httpserver/middleware"
	"sponsorship-app-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	sessions   session.Store
	log        logger.Logger
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: running migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	sessions, err := newSessionStore(cfg.Session, log)
	if err != nil {
		return nil, err
	}

	children := childrendomain.NewService(childrenrepo.NewPostgres(dbConn))
	sponsors := sponsorsdomain.NewService(sponsorsrepo.NewPostgres(dbConn))
	schools := schoolsdomain.NewService(schoolsrepo.NewPostgres(dbConn))
	proxies := proxiesdomain.NewService(proxiesrepo.NewPostgres(dbConn))
	photos := photosdomain.NewService(photosrepo.NewPostgres(dbConn))
	users := userdomain.NewService(userrepo.NewPostgres(dbConn))

	handlers := handler.New(children, sponsors, schools, proxies, photos, users, sessions, handler.Config{
		Debug:         cfg.Debug,
		SessionCookie: cfg.Session.CookieName,
		SessionTTL:    cfg.Session.TTL,
		SecureCookies: cfg.Env == "production",
	}, log)

	auth := authmw.NewSessionAuth(sessions, users, cfg.Session.CookieName, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, auth)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
		sessions:   sessions,
		log:        log,
	}, nil
}

// newSessionStore picks Redis when an address is configured, otherwise the
// in-process store. Single-instance deployments don't need Redis.
func newSessionStore(cfg config.SessionConfig, log logger.Logger) (session.Store, error) {
	if cfg.RedisAddr == "" {
		log.Info("sessions: using in-memory store")
		return session.NewMemoryStore(), nil
	}

	log.Info("sessions: using redis store", "addr", cfg.RedisAddr)
	return session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if closer, ok := a.sessions.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			a.log.Error("app: session store close failed", "err", err)
		}
	}

	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
