package handler

import (
	"time"

	childrendomain "sponsorship-app-go/internal/domain/children"
	photosdomain "sponsorship-app-go/internal/domain/photos"
	proxiesdomain "sponsorship-app-go/internal/domain/proxies"
	schoolsdomain "sponsorship-app-go/internal/domain/schools"
	sponsorsdomain "sponsorship-app-go/internal/domain/sponsors"
	userdomain "sponsorship-app-go/internal/domain/user"
	"sponsorship-app-go/internal/session"
	"sponsorship-app-go/pkg/logger"
)

type Config struct {
	Debug         bool
	SessionCookie string
	SessionTTL    time.Duration
	SecureCookies bool
}

type Handlers struct {
	Children *childrendomain.Service
	Sponsors *sponsorsdomain.Service
	Schools  *schoolsdomain.Service
	Proxies  *proxiesdomain.Service
	Photos   *photosdomain.Service
	Users    *userdomain.Service

	sessions session.Store
	cfg      Config
	log      logger.Logger
}

func New(
	children *childrendomain.Service,
	sponsors *sponsorsdomain.Service,
	schools *schoolsdomain.Service,
	proxies *proxiesdomain.Service,
	photos *photosdomain.Service,
	users *userdomain.Service,
	sessions session.Store,
	cfg Config,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Children: children,
		Sponsors: sponsors,
		Schools:  schools,
		Proxies:  proxies,
		Photos:   photos,
		Users:    users,
		sessions: sessions,
		cfg:      cfg,
		log:      log,
	}
}
