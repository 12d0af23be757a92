package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"affiliate-service/internal/consumers"
	"affiliate-service/internal/database"
	"affiliate-service/internal/services"
	"affiliate-service/internal/worker"
)

func main() {
	// Load env
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found in ../../.env, trying .env")
		if err := godotenv.Load(".env"); err != nil {
			log.Println("No .env file found, using system env")
		}
	}

	// Connect DB
	database.Connect()
	db := database.DB

	// Init Services
	helperService := services.NewHelperService(db)
	withdrawalService := services.NewWithdrawalService(db, helperService, nil)

	processor := consumers.NewWithdrawalProcessor(db, withdrawalService)
	w := worker.NewWorker(processor)

	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	log.Printf("Worker starting, redis at %s", redisAddr)
	w.Run(redisAddr)
}
