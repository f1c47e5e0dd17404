package main

import (
	"crypto/rand"
	"log"

	"campus/services/errand/internal/config"
	"campus/services/errand/internal/infra/db"
	api "campus/services/errand/internal/http"
)

func main() {
	cfg := config.FromEnv()

	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		// Tokens signed with a generated secret die with the process;
		// every restart forces clients to log in again.
		secret = make([]byte, 64)
		if _, err := rand.Read(secret); err != nil {
			log.Fatalf("failed to generate signing secret: %v", err)
		}
		log.Print("JWT_SECRET not set, using a random per-process secret")
	}

	store, err := db.NewStore(cfg)
	if err != nil {
		log.Fatalf("failed to init store: %v", err)
	}

	srv, err := api.NewServer(cfg, store, secret)
	if err != nil {
		log.Fatalf("failed to init server: %v", err)
	}
	if err := srv.Run(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
