package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/myos14/gymAdmin/internal/attendance"
	"github.com/myos14/gymAdmin/internal/auth"
	"github.com/myos14/gymAdmin/internal/config"
	"github.com/myos14/gymAdmin/internal/dashboard"
	"github.com/myos14/gymAdmin/internal/email"
	"github.com/myos14/gymAdmin/internal/member"
	"github.com/myos14/gymAdmin/internal/payment"
	"github.com/myos14/gymAdmin/internal/plan"
	"github.com/myos14/gymAdmin/internal/report"
	"github.com/myos14/gymAdmin/internal/subscription"
	"github.com/myos14/gymAdmin/internal/user"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(50, 100))

	memberRepo := member.NewRepository(db)
	planRepo := plan.NewRepository(db)
	subscriptionRepo := subscription.NewRepository(db)
	attendanceRepo := attendance.NewRepository(db)
	paymentRepo := payment.NewRepository(db)
	dashboardRepo := dashboard.NewRepository(db)
	reportRepo := report.NewRepository(db)
	userRepo := user.NewRepository(db)

	userHandler := user.NewHandler(user.NewService(userRepo, cfg.JWTSecret))
	memberHandler := member.NewHandler(member.NewService(memberRepo, emailService))
	planHandler := plan.NewHandler(plan.NewService(planRepo))
	subscriptionHandler := subscription.NewHandler(
		subscription.NewService(subscriptionRepo, memberRepo, planRepo))
	attendanceHandler := attendance.NewHandler(
		attendance.NewService(attendanceRepo, memberRepo, subscriptionRepo))
	paymentHandler := payment.NewHandler(
		payment.NewService(paymentRepo, memberRepo, subscriptionRepo, emailService))
	dashboardHandler := dashboard.NewHandler(
		dashboard.NewService(dashboardRepo, subscriptionRepo))
	reportHandler := report.NewHandler(
		report.NewService(reportRepo, subscriptionRepo))

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	adminMiddleware := auth.RequireRole("admin")

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/login", userHandler.Login)
		authRoutes.POST("/refresh", userHandler.Refresh)
		// Accounts are provisioned by an admin, never self-registered.
		authRoutes.POST("/register", authMiddleware, adminMiddleware, userHandler.Register)
		authRoutes.GET("/me", authMiddleware, userHandler.GetMe)
	}

	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		members := protected.Group("/members")
		{
			members.GET("", memberHandler.List)
			members.POST("", memberHandler.Create)
			members.GET("/:memberID", memberHandler.Get)
			members.PUT("/:memberID", memberHandler.Update)
			members.PATCH("/:memberID/toggle-status", memberHandler.ToggleActive)
			members.DELETE("/:memberID", memberHandler.Delete)
		}

		plans := protected.Group("/plans")
		{
			plans.GET("", planHandler.List)
			plans.POST("", planHandler.Create)
			plans.GET("/:planID", planHandler.Get)
			plans.PUT("/:planID", planHandler.Update)
			plans.DELETE("/:planID", planHandler.Deactivate)
		}

		subscriptions := protected.Group("/subscriptions")
		{
			subscriptions.GET("", subscriptionHandler.List)
			subscriptions.POST("", subscriptionHandler.Create)
			subscriptions.GET("/member/:memberID/active", subscriptionHandler.GetActiveByMember)
			subscriptions.GET("/:subscriptionID", subscriptionHandler.Get)
			subscriptions.PUT("/:subscriptionID", subscriptionHandler.Update)
			subscriptions.POST("/:subscriptionID/renew", subscriptionHandler.Renew)
			subscriptions.DELETE("/:subscriptionID", subscriptionHandler.Delete)
		}

		att := protected.Group("/attendance")
		{
			att.GET("", attendanceHandler.List)
			att.POST("/check-in", attendanceHandler.CheckIn)
			att.PUT("/:attendanceID/check-out", attendanceHandler.CheckOut)
			att.GET("/current/in-gym", attendanceHandler.CurrentInGym)
			att.GET("/stats/daily", attendanceHandler.DailyStats)
			att.GET("/member/:memberID", attendanceHandler.MemberHistory)
			att.DELETE("/:attendanceID", attendanceHandler.Delete)
		}

		payments := protected.Group("/payments")
		{
			payments.GET("", paymentHandler.List)
			payments.POST("", paymentHandler.Create)
			payments.GET("/:paymentID", paymentHandler.Get)
		}

		protected.GET("/dashboard/summary", dashboardHandler.Summary)

		reports := protected.Group("/reports")
		{
			reports.GET("/summary", reportHandler.Summary)
			reports.GET("/monthly-comparison", reportHandler.MonthlyComparison)
		}
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("/notifications/expiry-reminders", ExpiryReminders(dashboardRepo, emailService))
		admin.GET("/test-email", TestEmail(emailService))
		admin.GET("/backup/database", DatabaseBackup(cfg.DatabaseURL))
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

// Shutdown stops accepting new connections and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the underlying engine for handler tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
