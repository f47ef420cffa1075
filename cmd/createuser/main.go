// Command createuser creates an API account and prints its token.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Domenick1991/flightservices/config"
	"github.com/Domenick1991/flightservices/internal/repository"
	"github.com/Domenick1991/flightservices/internal/service/auth"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	username := flag.String("username", "", "account username")
	password := flag.String("password", "", "account password (falls back to $CREATEUSER_PASSWORD)")
	flag.Parse()

	if *password == "" {
		*password = os.Getenv("CREATEUSER_PASSWORD")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if cfg.Database.Migrate {
		if err := repository.Migrate(ctx, pool); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	svc := auth.NewAuthService(repository.NewUserRepository(pool), cfg.Auth.BcryptCost)
	user, token, err := svc.Register(ctx, auth.Credentials{Username: *username, Password: *password})
	if err != nil {
		log.Fatalf("create user: %v", err)
	}
	fmt.Printf("user %s (id=%d) token: %s\n", user.Username, user.ID, token.Key)
}
