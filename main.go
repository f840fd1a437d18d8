// File: femicare/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"femicare/config"
	"femicare/cron"
	"femicare/database"
	appointmentRepoPkg "femicare/database/repository/appointment"
	chatRepoPkg "femicare/database/repository/chat"
	cycleRepoPkg "femicare/database/repository/cycle"
	doctorRepoPkg "femicare/database/repository/doctor"
	slotRepoPkg "femicare/database/repository/slot"
	userRepoPkg "femicare/database/repository/user"
	"femicare/handlers"
	"femicare/routes"
	"femicare/services/availability"
	"femicare/services/booking"
	"femicare/services/chat"
	"femicare/services/cycle"
	"femicare/services/doctor"
	"femicare/services/insights"
	"femicare/services/notification"
	"femicare/services/storage"
	"femicare/services/tasks"
	"femicare/services/user"
	"femicare/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.InitOTPCache()
	utils.FirebaseInit()

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	doctorRepo := doctorRepoPkg.NewMongoDoctorRepo()
	slotRepo := slotRepoPkg.NewMongoSlotRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo(slotRepo)
	cycleRepo := cycleRepoPkg.NewMongoCycleRepo()
	chatRepo := chatRepoPkg.NewMongoChatRepo()

	for name, ensure := range map[string]func() error{
		"users":        userRepo.EnsureIndexes,
		"doctors":      doctorRepo.EnsureIndexes,
		"slots":        slotRepo.EnsureIndexes,
		"appointments": appointmentRepo.EnsureIndexes,
		"cycles":       cycleRepo.EnsureIndexes,
		"chat":         chatRepo.EnsureIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure %s indexes: %v", name, err)
		}
	}

	// services.
	notificationService := notification.NewDefaultNotificationService(
		notification.NewSMTPSenderFromConfig(),
	)
	userService := &user.DefaultUserService{
		Repo:     userRepo,
		Doctors:  doctorRepo,
		Notifier: notificationService,
	}
	doctorService := &doctor.DefaultDoctorService{
		Repo:  doctorRepo,
		Users: userRepo,
	}
	availabilityService := &availability.DefaultAvailabilityService{
		Slots:       slotRepo,
		Doctors:     doctorService,
		HorizonDays: config.AppConfig.SlotHorizonDays,
	}
	pendingTTL := time.Duration(config.AppConfig.PendingTTLHours) * time.Hour
	bookingService := &booking.DefaultBookingService{
		Slots:         slotRepo,
		Appointments:  appointmentRepo,
		Doctors:       doctorService,
		Users:         userRepo,
		Notifier:      notificationService,
		ConflictScope: config.AppConfig.BookingConflictScope,
		PendingTTL:    pendingTTL,
	}
	taskClient := tasks.NewClient()
	cycleService := &cycle.DefaultCycleService{
		Logs:      cycleRepo,
		Predictor: cycle.NewHTTPPredictorFromConfig(),
		Reminders: taskClient,
	}
	chatService := &chat.Service{
		Hub:          chat.NewHub(),
		Messages:     chatRepo,
		Appointments: appointmentRepo,
	}

	var insightsService *insights.Service
	if config.AppConfig.GeminiAPIKey != "" {
		gemini, err := insights.NewGeminiClient(context.Background())
		if err != nil {
			logger.Sugar().Warnf("main: insights disabled: %v", err)
		} else {
			insightsService = &insights.Service{
				Generator: gemini,
				Logs:      cycleRepo,
				Cache:     utils.GetCacheClient(),
			}
		}
	}

	storageService, err := storage.NewCloudinaryStorageService()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize storage service: %v", err)
	}

	// Background worker: slot pruning, lifecycle sweeps, reminders.
	cron.InitWorker(cron.Deps{
		Slots:        slotRepo,
		Appointments: appointmentRepo,
		Users:        userRepo,
		Notifier:     notificationService,
		PendingTTL:   pendingTTL,
	})

	utils.StartHealthMonitor([]*redis.Client{
		utils.GetCacheClient(),
		utils.GetAuthCacheClient(),
		utils.GetOTPCacheClient(),
	}, database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,
		Auth:     &handlers.AuthHandler{UserService: userService},
		User:     &handlers.UserHandler{UserService: userService},
		Doctor: &handlers.DoctorHandler{
			DoctorService: doctorService,
			Storage:       storageService,
		},
		Admin: &handlers.AdminHandler{
			DoctorService: doctorService,
			Users:         userRepo,
			Appointments:  appointmentRepo,
		},
		Availability: &handlers.AvailabilityHandler{
			Service: availabilityService,
		},
		Appointment: &handlers.AppointmentHandler{
			BookingService: bookingService,
		},
		Cycle: &handlers.CycleHandler{
			CycleService:    cycleService,
			InsightsService: insightsService,
		},
		Chat: &handlers.ChatHandler{
			ChatService: chatService,
			Users:       userRepo,
		},
	}
	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	_ = taskClient.Close()

	logger.Sugar().Info("main: server stopped gracefully")
}
