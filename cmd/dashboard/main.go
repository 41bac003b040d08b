package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"carbon-intensity/internal/api"
	"carbon-intensity/internal/config"

	"github.com/gin-gonic/gin"
)

func main() {
	cfgPath := flag.String("config", "", "Optional path to YAML config")
	port := flag.String("port", "", "Listen port (overrides config and API_PORT)")
	flag.Parse()

	if err := config.LoadEnv(); err != nil {
		log.Fatalf("Failed to load .env: %v", err)
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != "" {
		cfg.Dashboard.Port = *port
	}

	// Log working directory and search locations for debugging
	if wd, err := os.Getwd(); err == nil {
		log.Printf("Working directory: %s", wd)
	}
	log.Printf("Snapshot search locations (in order): %s", strings.Join(cfg.Dashboard.SearchDirs, ", "))

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(cfg.Dashboard)

	addr := fmt.Sprintf(":%s", cfg.Dashboard.Port)
	log.Printf("Starting dashboard on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
