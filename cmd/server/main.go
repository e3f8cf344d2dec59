package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/Dias221467/Meal_Planner/internal/config"
	"github.com/Dias221467/Meal_Planner/internal/database"
	"github.com/Dias221467/Meal_Planner/internal/handlers"
	"github.com/Dias221467/Meal_Planner/internal/repository"
	"github.com/Dias221467/Meal_Planner/internal/scheduler"
	"github.com/Dias221467/Meal_Planner/internal/services"
	"github.com/Dias221467/Meal_Planner/internal/store"
	"github.com/Dias221467/Meal_Planner/pkg/email"
	"github.com/Dias221467/Meal_Planner/pkg/logger"
	"github.com/Dias221467/Meal_Planner/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger(cfg.LogLevel)
	logger.Log.Info("Logger initialized")

	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	stateRepo := repository.NewStateRepository(db)
	reminderRepo := repository.NewReminderRepository(db)

	// --- Store ---
	appStore := store.New(stateRepo)
	defer appStore.Close()
	if err := appStore.Load(context.Background()); err != nil {
		log.Fatalf("Failed to load persisted state: %v", err)
	}

	// --- Services ---
	weekService := services.NewWeekService(appStore)
	statsService := services.NewStatsService()

	// --- Reminder scheduling ---
	var mailer scheduler.Mailer
	if cfg.ReminderEmail != "" {
		mailer = email.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPSender, cfg.SMTPPassword, cfg.ReminderEmail)
	}
	reminderScheduler := scheduler.NewReminderScheduler(reminderRepo, mailer)
	reminderScheduler.ScheduleAll(appStore.State().Settings)
	defer reminderScheduler.Stop()

	// --- Handlers ---
	planHandler := handlers.NewPlanHandler(appStore, weekService, statsService)
	groceryHandler := handlers.NewGroceryHandler(appStore)
	settingsHandler := handlers.NewSettingsHandler(appStore, reminderScheduler)
	dataHandler := handlers.NewDataHandler(appStore)
	deviceHandler := handlers.NewDeviceHandler(cfg)
	reminderHandler := handlers.NewReminderHandler(reminderRepo)
	stateFeedHandler := handlers.NewStateFeedHandler(appStore, cfg.JWTSecret)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Pairing is the only unauthenticated route
	router.HandleFunc("/devices/pair", deviceHandler.PairDeviceHandler).Methods("POST")

	// Plan routes
	planRoutes := router.PathPrefix("/weeks").Subrouter()
	planRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	planRoutes.HandleFunc("", planHandler.GetWeeksHandler).Methods("GET")
	planRoutes.HandleFunc("/active", planHandler.GetActiveWeekHandler).Methods("GET")
	planRoutes.HandleFunc("/{weekId}", planHandler.GetWeekHandler).Methods("GET")
	planRoutes.HandleFunc("/{weekId}/days/{dayId}/meals/{mealId}", planHandler.UpdateMealHandler).Methods("PATCH")
	planRoutes.HandleFunc("/{weekId}/days/{dayId}/meals", planHandler.UpsertMealHandler).Methods("PUT")

	// Grocery routes
	planRoutes.HandleFunc("/{weekId}/grocery", groceryHandler.AddGroceryItemHandler).Methods("POST")
	planRoutes.HandleFunc("/{weekId}/grocery/checks", groceryHandler.ClearGroceryChecksHandler).Methods("DELETE")
	planRoutes.HandleFunc("/{weekId}/grocery/{itemId}/toggle", groceryHandler.ToggleGroceryItemHandler).Methods("PATCH")
	planRoutes.HandleFunc("/{weekId}/grocery/{itemId}", groceryHandler.RemoveGroceryItemHandler).Methods("DELETE")

	// Settings routes
	settingsRoutes := router.PathPrefix("/settings").Subrouter()
	settingsRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	settingsRoutes.HandleFunc("", settingsHandler.GetSettingsHandler).Methods("GET")
	settingsRoutes.HandleFunc("/active-week", settingsHandler.SetActiveWeekOverrideHandler).Methods("PUT")
	settingsRoutes.HandleFunc("/grocery-reminder", settingsHandler.SetGroceryReminderHandler).Methods("PUT")
	settingsRoutes.HandleFunc("/definitions", settingsHandler.AddMealDefinitionHandler).Methods("POST")
	settingsRoutes.HandleFunc("/definitions/{defId}", settingsHandler.UpdateMealDefinitionHandler).Methods("PATCH")
	settingsRoutes.HandleFunc("/definitions/{defId}", settingsHandler.RemoveMealDefinitionHandler).Methods("DELETE")

	// Import/export/reset
	dataRoutes := router.PathPrefix("/data").Subrouter()
	dataRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	dataRoutes.HandleFunc("/import", dataHandler.ImportDataHandler).Methods("POST")
	dataRoutes.HandleFunc("/export", dataHandler.ExportDataHandler).Methods("GET")
	dataRoutes.HandleFunc("/reset", dataHandler.ResetDataHandler).Methods("POST")

	// Stats and reminder log
	statsRoutes := router.PathPrefix("/stats").Subrouter()
	statsRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	statsRoutes.HandleFunc("", planHandler.GetStatsHandler).Methods("GET")

	reminderRoutes := router.PathPrefix("/reminders").Subrouter()
	reminderRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	reminderRoutes.HandleFunc("", reminderHandler.GetRemindersHandler).Methods("GET")

	// WebSocket state feed (token via query parameter)
	router.HandleFunc("/ws/state", stateFeedHandler.StateFeedWebSocketHandler)

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
