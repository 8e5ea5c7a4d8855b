package pkg

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"CareerGo/internal/auth"
	"CareerGo/internal/config"
	"CareerGo/internal/counselling"
	"CareerGo/internal/institution"
	"CareerGo/internal/mailer"
	"CareerGo/internal/profile"
	"CareerGo/internal/recommendation"
	"CareerGo/internal/storage"
	"CareerGo/pkg/middleware"
)

var EchoModules = fx.Module("echo",
	fx.Provide(NewEchoServer),
	fx.Provide(config.NewAppConfig),
	fx.Provide(config.NewLogger),
	fx.Provide(config.NewMongoDBClient),
	fx.Provide(config.NewEmailService),
	fx.Provide(storage.NewStorage),

	fx.Provide(auth.NewUserRepository),
	fx.Provide(auth.NewRefreshTokenRepository),
	fx.Provide(auth.NewService),
	fx.Provide(auth.NewHandler),
	fx.Provide(auth.NewTokenSweeper),

	fx.Provide(profile.NewRepository),
	fx.Provide(profile.NewService),
	fx.Provide(profile.NewHandler),
	fx.Provide(func(p *profile.Service) auth.ProfileInitializer { return p }),

	fx.Provide(institution.NewRepository),
	fx.Provide(institution.NewService),
	fx.Provide(institution.NewHandler),

	fx.Provide(counselling.NewRepository),
	fx.Provide(counselling.NewMeetingLinkGenerator),
	fx.Provide(func(r *auth.UserRepository) counselling.UserDirectory { return r }),
	fx.Provide(func(r *institution.Repository) counselling.InstitutionDirectory { return r }),
	fx.Provide(counselling.NewService),
	fx.Provide(counselling.NewHandler),

	fx.Provide(recommendation.NewRepository),
	fx.Provide(recommendation.NewOpenAIRanker),
	fx.Provide(recommendation.NewService),
	fx.Provide(recommendation.NewHandler),

	fx.Provide(mailer.NewHandler),

	fx.Invoke(func(db *mongo.Database) {
		config.UniqueEmailIndex(db.Collection("users"))
		config.UniqueEmailIndex(db.Collection("institutions"))
	}),
	fx.Invoke(func(s *auth.TokenSweeper, lc fx.Lifecycle) { s.StartSweeper(lc) }),
	fx.Invoke(RegisterRoutes),
)

func NewEchoServer(lc fx.Lifecycle, cfg *config.AppConfig, logger *zap.SugaredLogger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.RateLimit(cfg))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.ClientURL},
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	if cfg.StorageType == "local" {
		e.Static("/uploads", cfg.LocalStoragePath)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
					logger.Fatalw("failed to start the server", "error", err)
				}
			}()
			logger.Infow("server running", "port", cfg.Port)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("shutting down the server ...")
			return e.Shutdown(ctx)
		},
	})
	return e
}

func RegisterRoutes(
	e *echo.Echo,
	cfg *config.AppConfig,
	authHandler *auth.Handler,
	profileHandler *profile.Handler,
	institutionHandler *institution.Handler,
	counsellingHandler *counselling.Handler,
	recommendationHandler *recommendation.Handler,
	mailerHandler *mailer.Handler,
) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	v1 := e.Group("/api/v1")

	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)
	v1.GET("/auth/confirmation/:token", authHandler.VerifyAccount)
	v1.POST("/auth/resend-verification", authHandler.ResendVerification)
	v1.POST("/auth/forgot-password", authHandler.ForgotPassword)
	v1.POST("/auth/reset-password/:token", authHandler.ResetPassword)
	v1.POST("/auth/refresh-token", authHandler.RefreshToken)
	v1.POST("/institutions/register", institutionHandler.Register)
	v1.GET("/institutions/list", institutionHandler.GetList)

	protected := v1.Group("", middleware.JWT(cfg))
	protected.POST("/auth/logout", authHandler.Logout)
	protected.PATCH("/auth/change-password", authHandler.ChangePassword)
	protected.GET("/auth/me", authHandler.SelfIdentification)

	protected.GET("/profile", profileHandler.GetOverview)
	protected.PATCH("/profile/basic-info", profileHandler.UpdateBasicInfo)
	protected.PATCH("/profile/image", profileHandler.UpdateProfileImage)
	protected.POST("/profile/education", profileHandler.AddEducation)
	protected.GET("/profile/education", profileHandler.GetEducation)
	protected.PATCH("/profile/education/:recordId", profileHandler.UpdateEducation)
	protected.DELETE("/profile/education/:recordId", profileHandler.DeleteEducation)
	protected.POST("/profile/achievements", profileHandler.AddAchievement)
	protected.GET("/profile/achievements", profileHandler.GetAchievements)
	protected.PATCH("/profile/achievements/:recordId", profileHandler.UpdateAchievement)
	protected.DELETE("/profile/achievements/:recordId", profileHandler.DeleteAchievement)
	protected.POST("/profile/certifications", profileHandler.AddCertification)
	protected.GET("/profile/certifications", profileHandler.GetCertifications)
	protected.PATCH("/profile/certifications/:recordId", profileHandler.UpdateCertification)
	protected.DELETE("/profile/certifications/:recordId", profileHandler.DeleteCertification)

	protected.POST("/counselling", counsellingHandler.Book)
	protected.GET("/counselling", counsellingHandler.GetAll)
	protected.GET("/counselling/booked-dates", counsellingHandler.GetBookedDates)
	protected.GET("/counselling/dashboard", counsellingHandler.GetDashboardSummary)
	protected.PATCH("/counselling/:sessionId/decision", counsellingHandler.Decide)
	protected.PATCH("/counselling/:sessionId/reschedule", counsellingHandler.Reschedule)
	protected.PATCH("/counselling/:sessionId/complete", counsellingHandler.Complete)
	protected.DELETE("/counselling/:sessionId", counsellingHandler.Cancel)

	protected.POST("/recommendations", recommendationHandler.Recommend)
	protected.GET("/course-categories", recommendationHandler.GetAllCourseCategories)

	admin := v1.Group("", middleware.JWT(cfg), middleware.Casbin)
	admin.GET("/institutions", institutionHandler.GetAll)
	admin.GET("/institutions/:institutionId", institutionHandler.GetDetails)
	admin.PATCH("/institutions/:institutionId", institutionHandler.UpdateDetails)
	admin.PATCH("/institutions/:institutionId/logo", institutionHandler.UpdateLogo)
	admin.POST("/institutions/:institutionId/course-categories", institutionHandler.AddCourseCategory)
	admin.GET("/institutions/:institutionId/course-categories", institutionHandler.GetCourseCategories)
	admin.DELETE("/institutions/:institutionId/course-categories", institutionHandler.RemoveCourseCategory)
	admin.POST("/institutions/:institutionId/courses", institutionHandler.CreateCourse)
	admin.GET("/institutions/:institutionId/courses", institutionHandler.GetCourses)
	admin.GET("/courses/:courseId", institutionHandler.GetCourseDetail)
	admin.PATCH("/courses/:courseId", institutionHandler.UpdateCourse)
	admin.DELETE("/courses/:courseId", institutionHandler.DeleteCourse)
	admin.POST("/mail/send", mailerHandler.Send)
	admin.POST("/mail/bulk", mailerHandler.SendBulk)
}
