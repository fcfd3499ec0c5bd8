package api

import (
	"github.com/terraincognita07/memento/internal/config"
	"github.com/terraincognita07/memento/internal/db"
	"github.com/terraincognita07/memento/internal/geo"
	"github.com/terraincognita07/memento/internal/images"
	"github.com/terraincognita07/memento/internal/services"
	"gorm.io/gorm"
)

const contextUserKey = "current_user"

type Handler struct {
	db        *gorm.DB
	config    *config.Config
	secretKey []byte

	repositories      *db.Repositories
	authService       *services.AuthService
	entryService      *services.EntryService
	goalService       *services.GoalService
	specialDayService *services.SpecialDayService
	setupService      *services.SetupService

	processor    *images.Processor
	avatars      *images.AvatarProcessor
	geocoder     *geo.Geocoder
	loginLimiter *attemptLimiter
}

func NewHandler(database *gorm.DB, config *config.Config) *Handler {
	repositories := db.NewRepositories(database)
	return &Handler{
		db:                database,
		config:            config,
		secretKey:         []byte(config.SecretKey),
		repositories:      repositories,
		authService:       services.NewAuthService(repositories.Users),
		entryService:      services.NewEntryService(repositories.Entries),
		goalService:       services.NewGoalService(repositories.Goals),
		specialDayService: services.NewSpecialDayService(repositories.SpecialDays),
		setupService:      services.NewSetupService(repositories.Users),
		processor:         images.NewProcessor(config),
		avatars:           images.NewAvatarProcessor(config),
		geocoder:          geo.NewGeocoder(config.GeocodeBaseURL, config.GeocodeTimeout),
		loginLimiter:      newAttemptLimiter(),
	}
}

// EnsureDefaultAdmin bootstraps the first admin account on an empty
// database.
func (handler *Handler) EnsureDefaultAdmin() (bool, error) {
	return handler.setupService.EnsureDefaultAdmin(
		handler.config.DefaultAdminUsername,
		handler.config.DefaultAdminPassword,
		handler.config.DefaultAdminDOB,
	)
}
