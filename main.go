package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Louis-BT/Student-Portal/internal/config"
	"github.com/Louis-BT/Student-Portal/internal/database"
	"github.com/Louis-BT/Student-Portal/internal/router"
	"github.com/Louis-BT/Student-Portal/internal/session"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// ensure basic directories exist
	if err := ensureDir(cfg.Upload.Dir); err != nil {
		log.Fatalf("create upload dir: %v", err)
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// make sure the default admin account exists (idempotent)
	if err := database.EnsureAdmin(db, cfg.Admin, cfg.Security.BcryptCost); err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}

	// open the configured session store
	sessions, err := session.Open(cfg.Session, db)
	if err != nil {
		log.Fatalf("open session store: %v", err)
	}

	// setup router
	r := router.SetupRouter(cfg, db, sessions)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
