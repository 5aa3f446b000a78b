package api

import (
	"github.com/fogmarch/habitgrid/internal/db"
	"github.com/fogmarch/habitgrid/internal/models"
	"github.com/fogmarch/habitgrid/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	cookieSecure bool

	repositories      *db.Repositories
	habitService      *services.HabitService
	completionService *services.CompletionService
	weekService       *services.WeekService
	loginThrottle     *loginThrottle
}

func NewHandler(database *gorm.DB, secretKey string, cookieSecure bool) *Handler {
	repositories := db.NewRepositories(database)
	return &Handler{
		db:                database,
		secretKey:         []byte(secretKey),
		cookieSecure:      cookieSecure,
		repositories:      repositories,
		habitService:      services.NewHabitService(repositories.Habits),
		completionService: services.NewCompletionService(repositories.Habits, repositories.Completions),
		weekService:       services.NewWeekService(repositories.Habits, repositories.Completions),
		loginThrottle:     newLoginThrottle(),
	}
}

type credentialsInput struct {
	Email       string `json:"email" form:"email"`
	Password    string `json:"password" form:"password"`
	DisplayName string `json:"display_name" form:"display_name"`
}

type habitPayload struct {
	Name            string                  `json:"name"`
	Description     string                  `json:"description"`
	Category        string                  `json:"category"`
	ColorHex        string                  `json:"color_hex"`
	Icon            string                  `json:"icon"`
	Frequency       string                  `json:"frequency"`
	FrequencyConfig *models.FrequencyConfig `json:"frequency_config"`
}

type togglePayload struct {
	Date string `json:"date"`
}

type reorderPayload struct {
	OrderedIDs []string `json:"ordered_ids"`
}
