package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prepwise/prepwise/config"
	"github.com/prepwise/prepwise/database"
	_ "github.com/prepwise/prepwise/docs" // Swagger docs - auto-generated
	"github.com/prepwise/prepwise/internal/controller"
	"github.com/prepwise/prepwise/internal/logger"
	"github.com/prepwise/prepwise/internal/middleware"
	"github.com/prepwise/prepwise/internal/model"
	"github.com/prepwise/prepwise/internal/repository"
	"github.com/prepwise/prepwise/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title PrepWise API
// @version 2.0
// @description AI mock interview practice: generated questions, structured feedback and coaching Q&A.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewSessionRepository,
			repository.NewInterviewRepository,
			repository.NewFeedbackRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewPromptService,
			service.NewGeminiLLMService,
			service.NewFeedbackValidator,
			service.NewAuthService,
			service.NewInterviewService,
			service.NewFeedbackService,
		),

		// API Controllers Layer
		fx.Provide(
			controller.NewAuthController,
			controller.NewInterviewController,
			controller.NewFeedbackController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Route gin request logging through zerolog.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authService service.AuthService,
	authCtrl *controller.AuthController,
	interviewCtrl *controller.InterviewController,
	feedbackCtrl *controller.FeedbackController,
) {
	api := router.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/sign-up", authCtrl.SignUp)
		authGroup.POST("/sign-in", authCtrl.SignIn)
		authGroup.POST("/sign-out", authCtrl.SignOut)
		authGroup.GET("/me", middleware.RequireAuth(authService), authCtrl.Me)

		interviews := api.Group("/interviews")
		interviews.POST("/generate", interviewCtrl.Generate)
		interviews.GET("/generate", interviewCtrl.Capabilities)

		authed := interviews.Group("", middleware.RequireAuth(authService))
		authed.GET("/my", interviewCtrl.GetMyInterviews)
		authed.GET("/latest", interviewCtrl.GetLatestInterviews)
		authed.GET("/:interview_id", interviewCtrl.GetInterviewDetails)
		authed.POST("/:interview_id/feedback", feedbackCtrl.CreateFeedback)
		authed.GET("/:interview_id/feedback", feedbackCtrl.GetFeedback)

		feedback := api.Group("/feedback", middleware.RequireAuth(authService))
		feedback.POST("/tips", feedbackCtrl.GenerateTips)
		feedback.POST("/ask", feedbackCtrl.AskQuestion)
		feedback.GET("/analytics", feedbackCtrl.GetAnalytics)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("PrepWise API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Session{},
		&model.Interview{},
		&model.Feedback{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
