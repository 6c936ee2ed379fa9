package server

import (
	"context"
	"net/http"
	"time"

	"courtly/internal/auth"
	"courtly/internal/availability"
	"courtly/internal/booking"
	"courtly/internal/config"
	"courtly/internal/email"
	"courtly/internal/facility"
	"courtly/internal/payment"
	"courtly/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())

	rateLimiter := NewRateLimiter(20, 40, 10*time.Minute)
	router.Use(RateLimitMiddleware(rateLimiter))

	userRepo := user.NewRepository(db)
	facilityRepo := facility.NewRepository(db)
	availabilityRepo := availability.NewRepository(db)
	bookingRepo := booking.NewRepository(db)

	gateway := payment.NewSimulatedGateway(cfg.PaymentSuccessRate)

	userHandler := user.NewHandler(user.NewService(userRepo, cfg.JWTSecret))
	facilityHandler := facility.NewHandler(facility.NewService(facilityRepo))
	availabilityHandler := availability.NewHandler(availability.NewService(availabilityRepo, facilityRepo))
	bookingHandler := booking.NewHandler(booking.NewService(
		bookingRepo, facilityRepo, userRepo, gateway, emailService, cfg.PaymentTimeout,
	))

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.Refresh)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.GET("/facilities", facilityHandler.ListFacilities)
		protected.GET("/facilities/:facilityID/courts", facilityHandler.ListCourts)
		protected.GET("/courts/:courtID/availability", bookingHandler.CheckAvailability)
		protected.POST("/courts/:courtID/bookings", bookingHandler.CreateBooking)
		protected.GET("/bookings", bookingHandler.ListMyBookings)
		protected.POST("/bookings/:bookingID/pay", bookingHandler.Pay)
		protected.POST("/bookings/:bookingID/cancel", bookingHandler.Cancel)
		protected.PATCH("/bookings/:bookingID", bookingHandler.UpdateBooking)
	}

	ownerMiddleware := auth.RequireRole(auth.RoleOwner, auth.RoleAdmin)
	owner := router.Group("/owner")
	owner.Use(authMiddleware, ownerMiddleware)
	{
		owner.POST("/facilities", facilityHandler.CreateFacility)
		owner.POST("/facilities/:facilityID/courts", facilityHandler.CreateCourt)
		owner.GET("/facilities/:facilityID/bookings", bookingHandler.ListBookingsByFacility)
		owner.PATCH("/courts/:courtID", facilityHandler.UpdateCourt)
		owner.DELETE("/courts/:courtID", facilityHandler.DeleteCourt)
		owner.GET("/courts/:courtID/bookings", bookingHandler.ListBookingsByCourt)
		owner.POST("/courts/:courtID/blackouts", availabilityHandler.CreateBlackout)
		owner.GET("/courts/:courtID/blackouts", availabilityHandler.ListByCourt)
		owner.PATCH("/blackouts/:slotID", availabilityHandler.UpdateBlackout)
		owner.DELETE("/blackouts/:slotID", availabilityHandler.DeleteBlackout)
	}

	adminMiddleware := auth.RequireRole(auth.RoleAdmin)
	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.PATCH("/facilities/:facilityID/status", facilityHandler.SetFacilityStatus)
		admin.GET("/analytics/bookings", bookingHandler.GetBookingAnalytics)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the underlying engine for tests.
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
