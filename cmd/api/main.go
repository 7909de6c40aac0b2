package main

import (
	"log"

	"cacscope/internal/config"
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

	app, err := ui.NewApp(ui.AppConfig{
		Port:   appConfig.Server.Port,
		Target: appConfig.Analysis.Target,
	})
	if err != nil {
		log.Fatal("Failed to create API app:", err)
	}

	log.Printf("Starting CAC API on http://localhost:%s", appConfig.Server.Port)
	log.Fatal(app.Start())
}
