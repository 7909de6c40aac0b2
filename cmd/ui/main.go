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
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	kit, err := testkit.New()
	if err != nil {
		log.Fatal("Failed to initialize fixture kit:", err)
	}

	server, err := ui.NewServer(kit, engine.New(), appConfig)
	if err != nil {
		log.Fatal("Failed to create dashboard server:", err)
	}

	log.Printf("Starting CAC dashboard on http://localhost:%s", appConfig.Server.Port)
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
