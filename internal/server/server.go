package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"acadly.app/portal/internal/config"
	"acadly.app/portal/internal/entity"
	"acadly.app/portal/internal/middleware"
	"acadly.app/portal/pkg/storage"

	authHttp "acadly.app/portal/internal/modules/auth/delivery/http"
	authService "acadly.app/portal/internal/modules/auth/service"

	calHttp "acadly.app/portal/internal/modules/calendar/delivery/http"
	calRepo "acadly.app/portal/internal/modules/calendar/repository"
	calService "acadly.app/portal/internal/modules/calendar/service"

	dashHttp "acadly.app/portal/internal/modules/dashboard/delivery/http"
	dashService "acadly.app/portal/internal/modules/dashboard/service"

	insightHttp "acadly.app/portal/internal/modules/insight/delivery/http"
	insightProvider "acadly.app/portal/internal/modules/insight/provider"
	insightService "acadly.app/portal/internal/modules/insight/service"

	lbHttp "acadly.app/portal/internal/modules/leaderboard/delivery/http"
	lbService "acadly.app/portal/internal/modules/leaderboard/service"

	notiHttp "acadly.app/portal/internal/modules/notification/delivery/http"
	notifRepo "acadly.app/portal/internal/modules/notification/repository"
	notifService "acadly.app/portal/internal/modules/notification/service"

	profileRepo "acadly.app/portal/internal/modules/profile/repository"

	queryHttp "acadly.app/portal/internal/modules/query/delivery/http"
	queryRepo "acadly.app/portal/internal/modules/query/repository"
	queryService "acadly.app/portal/internal/modules/query/service"

	recHttp "acadly.app/portal/internal/modules/recommendation/delivery/http"
	recRepo "acadly.app/portal/internal/modules/recommendation/repository"
	recService "acadly.app/portal/internal/modules/recommendation/service"

	searchService "acadly.app/portal/internal/modules/search/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const sessionName = "acadly_session"

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Server {
	profiles := profileRepo.NewProfileRepository(db)

	var imageStorage storage.ImageStorage
	if os.Getenv("CLOUDINARY_URL") != "" {
		var err error
		imageStorage, err = storage.NewCloudinaryStorage()
		if err != nil {
			log.Printf("cloudinary unavailable, storing calendar images inline: %v", err)
			imageStorage = nil
		}
	}

	var meiliClient meilisearch.ServiceManager
	if cfg.MeiliSearchHost != "" {
		host := cfg.MeiliSearchHost
		if !strings.HasPrefix(host, "http") {
			host = "http://" + host + ":7700"
		}
		meiliClient = meilisearch.New(host, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	}
	eventSearch := searchService.NewEventSearchService(meiliClient)

	notificationRepository := notifRepo.NewNotificationRepository(db)
	notificationSvc := notifService.NewNotificationService(notificationRepository, redisClient)
	notificationHandler := notiHttp.NewNotificationHandler(notificationSvc)

	authSvc := authService.NewAuthService(profiles)
	authHandler := authHttp.NewAuthHandler(authSvc)

	recommendationRepository := recRepo.NewRepository(db)
	recommendationSvc := recService.NewService(recommendationRepository, notificationSvc)
	recommendationHandler := recHttp.NewRecommendationHandler(recommendationSvc)

	queryRepository := queryRepo.NewQueryRepository(db)
	querySvc := queryService.NewQueryService(queryRepository, notificationSvc)
	queryHandler := queryHttp.NewQueryHandler(querySvc)

	calendarRepository := calRepo.NewCalendarRepository(db)
	calendarSvc := calService.NewCalendarService(calendarRepository, profiles, notificationSvc, eventSearch, imageStorage)
	calendarHandler := calHttp.NewCalendarHandler(calendarSvc)

	leaderboardSvc := lbService.NewLeaderboardService(profiles)
	leaderboardHandler := lbHttp.NewLeaderboardHandler(leaderboardSvc)

	dashboardSvc := dashService.NewDashboardService(recommendationRepository, queryRepository, calendarRepository, leaderboardSvc)
	dashboardHandler := dashHttp.NewDashboardHandler(dashboardSvc)

	var llm insightProvider.LLMProvider
	if cfg.GeminiAPIKey != "" {
		gemini, err := insightProvider.NewGeminiProvider(context.Background(), os.Getenv("GEMINI_MODEL"))
		if err != nil {
			log.Printf("gemini unavailable, insights will serve the fallback summary: %v", err)
		} else {
			llm = gemini
		}
	}
	insightSvc := insightService.NewInsightService(recommendationRepository, queryRepository, profiles, llm)
	insightHandler := insightHttp.NewInsightHandler(insightSvc)

	router := gin.New()

	setupCORS(router, cfg)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(sessions.Sessions(sessionName, newSessionStore(cfg)))

	authMiddleware := middleware.NewAuthMiddleware(profiles)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/auth/me", authHandler.Me)

		// Recommendation routes
		protected.GET("/recommendations", recommendationHandler.List)
		protected.POST("/recommendations", recommendationHandler.Create)
		protected.GET("/recommendations/:id", recommendationHandler.Get)
		protected.POST("/recommendations/:id/upvote", recommendationHandler.ToggleUpvote)
		protected.POST("/recommendations/:id/comments", recommendationHandler.AddComment)

		// Query routes
		protected.GET("/queries", queryHandler.List)
		protected.POST("/queries", queryHandler.Create)
		protected.PATCH("/queries/:id/respond",
			authMiddleware.RequireRole(entity.ResponderRoles...), queryHandler.Respond)

		protected.GET("/leaderboard", leaderboardHandler.Top)

		// Faculty calendar routes
		protected.GET("/faculty-calendar", calendarHandler.ListCalendars)
		protected.POST("/faculty-calendar/upload", calendarHandler.UploadCalendar)
		protected.DELETE("/faculty-calendar/:id", calendarHandler.DeleteCalendar)

		// Faculty event routes
		protected.GET("/faculty-events", calendarHandler.ListEvents)
		protected.POST("/faculty-events", calendarHandler.CreateEvent)
		protected.DELETE("/faculty-events/:id", calendarHandler.DeleteEvent)

		// Academic event routes
		protected.GET("/academic-events", calendarHandler.ListAcademicEvents)
		protected.POST("/academic-events",
			authMiddleware.RequireRole(entity.RoleSuperadmin), calendarHandler.CreateAcademicEvent)
		protected.DELETE("/academic-events/:id",
			authMiddleware.RequireRole(entity.RoleSuperadmin), calendarHandler.DeleteAcademicEvent)

		// Notification routes
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PATCH("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PATCH("/notifications/read-all", notificationHandler.MarkAllAsRead)

		protected.GET("/dashboard/stats", dashboardHandler.Stats)

		protected.GET("/ai/insights",
			authMiddleware.RequireRole(entity.RoleDean, entity.RoleSuperadmin), insightHandler.Insights)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// newSessionStore prefers Redis so sessions survive restarts and can be
// shared across instances; the cookie store is the single-node fallback.
func newSessionStore(cfg *config.Config) sessions.Store {
	secret := []byte(cfg.SessionSecret)

	var store sessions.Store
	if cfg.RedisAddr != "" {
		rs, err := redisStore.NewStore(10, "tcp", cfg.RedisAddr, "", cfg.RedisPassword, secret)
		if err != nil {
			log.Printf("redis session store unavailable, using cookie store: %v", err)
		} else {
			store = rs
		}
	}
	if store == nil {
		store = cookie.NewStore(secret)
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int((7 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   cfg.AppEnv == "production",
	})
	return store
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	origins := strings.Split(cfg.AllowedOrigins, ",")

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
