package api

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lunarialabs/lunaria/internal/db"
	"github.com/lunarialabs/lunaria/internal/services"
	"github.com/lunarialabs/lunaria/internal/weather"
)

const (
	authCookieName      = "lunaria_session"
	contextUserKey      = "current_user"
	defaultAuthTokenTTL = 24 * time.Hour
	rememberAuthTTL     = 30 * 24 * time.Hour
)

type Handler struct {
	secretKey    []byte
	cookieSecure bool
	location     *time.Location
	logger       *zap.Logger

	repositories *db.Repositories
	authService  *services.AuthService
	cycleService *services.CycleService
	exports      *services.ExportService
	weather      *weather.Service
}

func NewHandler(database *gorm.DB, secretKey string, cookieSecure bool, location *time.Location, weatherService *weather.Service, logger *zap.Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	repositories := db.NewRepositories(database)
	return &Handler{
		secretKey:    []byte(secretKey),
		cookieSecure: cookieSecure,
		location:     location,
		logger:       logger,
		repositories: repositories,
		authService:  services.NewAuthService(repositories.Users),
		cycleService: services.NewCycleService(repositories.Cycles),
		exports:      services.NewExportService(),
		weather:      weatherService,
	}
}

func (handler *Handler) now() time.Time {
	return time.Now().In(handler.location)
}
