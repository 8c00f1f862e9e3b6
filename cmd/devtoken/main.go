// Command devtoken prints a bearer token for local testing against the API.
package main

import (
	"flag"
	"fmt"
	"log"

	"fitsync/backend/internal/auth"
	"fitsync/backend/internal/config"
)

func main() {
	userID := flag.String("user", "", "user id to put in the token (required)")
	configPath := flag.String("config", ".", "directory containing config.yaml")
	flag.Parse()

	if *userID == "" {
		log.Fatal("FATAL: -user is required")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	token, err := auth.NewSigner(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration).IssueToken(*userID)
	if err != nil {
		log.Fatalf("FATAL: Could not sign token: %v", err)
	}
	fmt.Println(token)
}
