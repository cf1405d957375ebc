package router

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"wastewise/internal/auth"
	"wastewise/internal/handler"
	"wastewise/internal/ids"
	"wastewise/internal/middleware"
	"wastewise/internal/model"
)

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	Auth       *handler.AuthHandler
	Waste      *handler.WasteHandler
	Collection *handler.CollectionHandler
	Donation   *handler.DonationHandler
	Report     *handler.ReportHandler
	Admin      *handler.AdminHandler
	Health     *handler.HealthHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	h Handlers,
	tokens *auth.TokenService,
	authLimiter *middleware.IPRateLimiter,
	metrics *middleware.Metrics,
) {
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: ids.New}))
	e.Use(requestLogger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(metrics.Middleware())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", h.Health.Healthz)
	e.GET("/readyz", h.Health.Readyz)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	public := api.Group("/auth", authLimiter.Middleware())
	public.POST("/login", h.Auth.Login)
	public.POST("/signup", h.Auth.Signup)

	// Any authenticated role
	secured := api.Group("", middleware.AuthGate(tokens))
	secured.GET("/auth/me", h.Auth.Me)
	secured.GET("/waste-entries", h.Waste.ListEntries)
	secured.POST("/waste/addWaste", h.Waste.AddWaste)
	secured.POST("/request-collection", h.Collection.RequestCollection)
	secured.GET("/collections", h.Collection.MyCollections)
	secured.GET("/reports/summary", h.Report.Summary)
	secured.GET("/reports/waste", h.Report.WasteByCategory)
	secured.GET("/reports/donations", h.Report.DonationsByDay)
	secured.GET("/dashboard", h.Report.Dashboard)
	secured.GET("/dashboard/activities", h.Report.Activities)

	collector := secured.Group("/collector", middleware.RequireRoles(model.RoleWasteCollector))
	collector.GET("/pickup-requests", h.Collection.PickupRequests)
	collector.POST("/mark-collected/:id", h.Collection.MarkCollected)
	collector.GET("/history", h.Collection.History)

	donations := secured.Group("/food-donations")
	donationStaff := middleware.RequireRoles(model.RoleNGO, model.RoleWasteCollector)
	donations.POST("", h.Donation.Create)
	donations.GET("", h.Donation.Mine)
	donations.GET("/pending", h.Donation.Pending, donationStaff)
	donations.GET("/history", h.Donation.History, donationStaff)
	donations.POST("/mark-collected/:id", h.Donation.MarkCollected, donationStaff)

	admin := secured.Group("/admin", middleware.RequireRoles(model.RoleAdmin))
	admin.GET("/stats", h.Admin.Stats)
	admin.GET("/users", h.Admin.Users)
	admin.GET("/activity", h.Admin.Activity)
}

func requestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			slog.LogAttrs(c.Request().Context(), level, "request",
				slog.String("request_id", v.RequestID),
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			)
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
