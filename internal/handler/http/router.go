package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(
	timesheetHandler TimesheetHandler,
	wagePresetHandler WagePresetHandler,
	allowedOrigins []string,
	env string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "eventshift"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/timesheets", func(r chi.Router) {
			r.Post("/", timesheetHandler.Create)
			r.Get("/", timesheetHandler.List)

			r.Route("/{timesheetID}", func(r chi.Router) {
				r.Get("/", timesheetHandler.Get)
				r.Patch("/", timesheetHandler.Update)
				r.Delete("/", timesheetHandler.Delete)
				r.Delete("/workdays", timesheetHandler.ResetWork)
				r.Get("/wage", timesheetHandler.GetWage)
			})
		})

		r.Get("/users/{userID}/employments/{companyID}/timesheets", timesheetHandler.ListForEmployment)

		r.Put("/events/{eventID}/span", timesheetHandler.ReconcileEventSpan)

		r.Route("/wage-presets", func(r chi.Router) {
			r.Get("/", wagePresetHandler.List)
			r.Get("/valid", wagePresetHandler.GetValidForDate)
			r.Get("/{name}", wagePresetHandler.Get)
		})
	})

	return r
}
