package bootstrap

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/redis/go-redis/v9"

	hmsui "github.com/carebridge/hms-ui"
	"github.com/carebridge/hms-ui/config"
	"github.com/carebridge/hms-ui/internal/adapters/hmsauth"
	redisstore "github.com/carebridge/hms-ui/internal/adapters/redis"
	"github.com/carebridge/hms-ui/internal/clients/hms"
	"github.com/carebridge/hms-ui/internal/service"
)

// ServiceDeps contains shared dependencies for service construction.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// Services holds the constructed application services.
type Services struct {
	API      *hms.Client
	Sessions *service.SessionService
}

// NewServices wires the backend client, auth provider, session store, and
// session service from shared dependencies.
func NewServices(deps *ServiceDeps) (*Services, error) {
	cfg := deps.Config

	api, err := hms.NewClient(&http.Client{Timeout: cfg.Backend.Timeout}, cfg.Backend.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("create backend client: %w", err)
	}

	sessions := service.NewSessionService(service.SessionServiceOptions{
		Provider: hmsauth.NewProvider(api),
		Sessions: redisstore.NewSessionStore(deps.RedisClient),
		Config:   cfg.Session,
	})

	return &Services{
		API:      api,
		Sessions: sessions,
	}, nil
}

// FrontendAssets selects the template and static filesystems. Development
// mode reads from disk for hot reloading; production serves the embedded
// copies.
func FrontendAssets(cfg *config.AppConfig) (templates fs.FS, static fs.FS, err error) {
	if cfg.IsDev {
		return os.DirFS("frontend/templates"), os.DirFS("frontend/static"), nil
	}

	templates, err = fs.Sub(hmsui.TemplateFS, "frontend/templates")
	if err != nil {
		return nil, nil, fmt.Errorf("embedded templates: %w", err)
	}
	static, err = fs.Sub(hmsui.StaticFS, "frontend/static")
	if err != nil {
		return nil, nil, fmt.Errorf("embedded static assets: %w", err)
	}
	return templates, static, nil
}
