package main

import (
	"fmt"
	"net/http"

	"github.com/eventshift/eventshift-backend-go/internal/config"
	appHTTP "github.com/eventshift/eventshift-backend-go/internal/handler/http"
	"github.com/eventshift/eventshift-backend-go/internal/pkg/database"
	"github.com/eventshift/eventshift-backend-go/internal/repository/postgresql"
	timesheetService "github.com/eventshift/eventshift-backend-go/internal/service/timesheet"
	wageService "github.com/eventshift/eventshift-backend-go/internal/service/wage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	timesheetRepo := postgresql.NewTimesheetRepository(db)
	wagePresetRepo := postgresql.NewWagePresetRepository(db)
	employmentRepo := postgresql.NewEmploymentRepository(db)
	txManager := postgresql.NewTxManager(db)

	timesheetSvc := timesheetService.NewTimesheetService(txManager, timesheetRepo)
	wageSvc := wageService.NewWageService(txManager, timesheetRepo, wagePresetRepo, employmentRepo)

	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc, wageSvc)
	wagePresetHandler := appHTTP.NewWagePresetHandler(wagePresetRepo)

	router := appHTTP.NewRouter(
		timesheetHandler,
		wagePresetHandler,
		cfg.CORS.AllowedOrigins,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
