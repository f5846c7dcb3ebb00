package api

import (
	"encoding/base64"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/saturnino-fabrica-de-software/ponto/internal/api/docs"
	"github.com/saturnino-fabrica-de-software/ponto/internal/api/handler"
	"github.com/saturnino-fabrica-de-software/ponto/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/ponto/internal/database"
)

// bodySlack covers the non-capture fields of a request on top of the capture limit.
const bodySlack = 64 * 1024

type Dependencies struct {
	EmployeeService   handler.EmployeeService
	AttendanceService handler.AttendanceService
	DB                database.Pinger
	RateLimit         middleware.RateLimiterConfig
	// MaxPayloadBytes bounds the decoded capture image; zero keeps the
	// handler default and fiber's default body limit.
	MaxPayloadBytes int
}

type Router struct {
	app         *fiber.App
	logger      *slog.Logger
	deps        *Dependencies
	rateLimiter *middleware.RateLimiter
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	cfg := fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "Ponto API",
	}
	if deps != nil && deps.MaxPayloadBytes > 0 {
		cfg.BodyLimit = bodyLimit(deps.MaxPayloadBytes)
	}

	return &Router{
		app:    fiber.New(cfg),
		logger: logger,
		deps:   deps,
	}
}

// bodyLimit leaves room for a JSON capture whose base64 text carries an image
// of maxPayload bytes.
func bodyLimit(maxPayload int) int {
	return base64.StdEncoding.EncodedLen(maxPayload) + bodySlack
}

func (r *Router) Setup() {
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	var db database.Pinger
	if r.deps != nil {
		db = r.deps.DB
	}
	healthHandler := handler.NewHealthHandler(db)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	if r.deps == nil {
		return
	}

	v1 := r.app.Group("/v1")

	employeeHandler := handler.NewEmployeeHandler(r.deps.EmployeeService, r.logger)
	attendanceHandler := handler.NewAttendanceHandler(r.deps.AttendanceService, r.logger)
	if r.deps.MaxPayloadBytes > 0 {
		employeeHandler.WithMaxImageSize(r.deps.MaxPayloadBytes)
		attendanceHandler.WithMaxImageSize(r.deps.MaxPayloadBytes)
	}

	employees := v1.Group("/employees")
	employees.Get("/", employeeHandler.List)
	employees.Post("/", employeeHandler.Enroll)
	employees.Get("/:id", employeeHandler.Get)
	employees.Put("/:id/face", employeeHandler.ReEnroll)

	v1.Get("/training", employeeHandler.TrainingStatus)
	v1.Get("/dashboard", attendanceHandler.Dashboard)

	// Every capture costs an extractor round trip, so only recognition is limited.
	r.rateLimiter = middleware.NewRateLimiter(r.deps.RateLimit)
	attendance := v1.Group("/attendance", r.rateLimiter.Handler())
	attendance.Post("/check-in", attendanceHandler.CheckIn)
	attendance.Post("/check-out", attendanceHandler.CheckOut)
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	if r.rateLimiter != nil {
		r.rateLimiter.Stop()
	}

	return r.app.Shutdown()
}
