package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"tastepalette/cmd/fx/account_fx"
	"tastepalette/cmd/fx/ai_fx"
	"tastepalette/cmd/fx/config_fx"
	"tastepalette/cmd/fx/controllers_fx"
	"tastepalette/cmd/fx/db_fx"
	"tastepalette/cmd/fx/diary_fx"
	"tastepalette/cmd/fx/mail_fx"
	"tastepalette/cmd/fx/memcache_fx"
	"tastepalette/cmd/fx/menu_fx"
	"tastepalette/cmd/fx/profile_fx"
	"tastepalette/cmd/fx/storage_fx"
	"tastepalette/internal/api/controllers"
	"tastepalette/internal/config"
	"tastepalette/internal/services"
	"tastepalette/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}

	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		ai_fx.Module,
		storage_fx.Module,
		account_fx.Module,
		menu_fx.Module,
		profile_fx.Module,
		diary_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle(engine),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at :%s", cfg.Port)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

type RouterParams struct {
	fx.In

	Config    *config.Config
	LogWriter io.Writer
	Accounts  services.AccountServiceInterface
	RateStore middleware.RateLimitStore

	AccountController *controllers.AccountController
	UserController    *controllers.UserController
	MenuController    *controllers.MenuController
	ProfileController *controllers.ProfileController
	DiaryController   *controllers.DiaryController
}

func ProvideRouter(p RouterParams) *gin.Engine {
	if p.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.LoggerWithWriter(p.LogWriter))
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware(p.Config.AllowedOrigins))

	RegisterRoutes(r, p)

	return r
}

func RegisterRoutes(r *gin.Engine, p RouterParams) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := middleware.SessionAuthMiddleware(p.Accounts)
	limit := middleware.RateLimitMiddleware(p.RateStore, p.Config.RateLimitRequests, p.Config.RateLimitWindow)

	authGroup := r.Group("/auth", limit)
	authGroup.POST("/signup", p.AccountController.Signup)
	authGroup.POST("/login", p.AccountController.Login)
	authGroup.GET("/verify", p.AccountController.VerifyEmail)
	authGroup.POST("/resend-verification", p.AccountController.ResendVerification)
	authGroup.POST("/reset-password", p.AccountController.ForgotPassword)
	authGroup.POST("/reset-password/confirm", p.AccountController.ResetPassword)
	authGroup.GET("/check-session", auth, p.AccountController.CheckSession)
	authGroup.POST("/logout", auth, p.AccountController.Logout)

	menuGroup := r.Group("/menu", auth)
	menuGroup.POST("/upload", p.MenuController.Upload)
	menuGroup.GET("/uploads", p.MenuController.List)
	menuGroup.POST("/rate", p.MenuController.Rate)
	menuGroup.GET("/:id", p.MenuController.Get)
	menuGroup.DELETE("/:id", p.MenuController.Delete)

	profileGroup := r.Group("/profile", auth)
	profileGroup.GET("/taste", p.ProfileController.GetTasteProfile)
	profileGroup.POST("/taste", p.ProfileController.SaveTasteProfile)
	profileGroup.POST("/update-from-rating", p.ProfileController.UpdateFromRating)

	diaryGroup := r.Group("/diary", auth)
	diaryGroup.GET("/visits", p.DiaryController.ListVisits)
	diaryGroup.POST("/visits", p.DiaryController.CreateVisit)
	diaryGroup.POST("/visit", p.DiaryController.CreateVisitFromScan)

	userGroup := r.Group("/user", auth)
	userGroup.GET("/me", p.UserController.Me)
	userGroup.GET("/onboarding-status", p.UserController.OnboardingStatus)
	userGroup.POST("/update-onboarding", p.UserController.UpdateOnboarding)
	userGroup.PUT("/profile", p.UserController.UpdateProfile)
	userGroup.DELETE("/delete-account", p.UserController.DeleteAccount)
}
