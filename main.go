package main

import (
	"log"

	"cacscope/internal/config"
	"cacscope/internal/engine"
	"cacscope/internal/testkit"
	"cacscope/ui"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	kit, err := testkit.New()
	if err != nil {
		log.Fatalf("Failed to initialize fixture kit: %v", err)
	}

	server, err := ui.NewServer(kit, engine.New(), appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	log.Printf("Starting CAC dashboard on port %s", appConfig.Server.Port)
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
