package main

import (
	"log"
	"os"

	"affiliate-service/internal/database"
	"affiliate-service/internal/handlers"
	"affiliate-service/internal/rates"
	"affiliate-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found in current directory, trying parent")
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using system environment variables")
		}
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	// Initialize Database
	database.Connect()
	database.Migrate()
	db := database.DB

	// Redis/Asynq Client
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	// Init Services
	helperService := services.NewHelperService(db)
	hierarchyService := services.NewHierarchyService(db)
	referralService := services.NewReferralService(db)
	ledgerService := services.NewLedgerService(db, rates.Default(), hierarchyService, helperService)
	withdrawalService := services.NewWithdrawalService(db, helperService, asynqClient)
	statsService := services.NewStatsService(db)

	// Initialize Gin
	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Welcome to the affiliate service",
		})
	})

	h := handlers.New(referralService, ledgerService, hierarchyService, statsService, withdrawalService, helperService)
	h.RegisterRoutes(r)

	// Start Cron Schedulers
	archiveService := services.NewTransactionArchiveService(db)
	archiveService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("HTTP Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
