package main

import (
	"log"

	"github.com/Haunschild/dolosX/internal/shared/config"
	"github.com/Haunschild/dolosX/internal/shared/server"
)

func main() {
	cfg := config.Load()
	r := server.NewRouter(cfg)

	addr := server.Addr(cfg.Port)
	log.Printf("Starting dolosX on %s (model=%s)", addr, cfg.LLMModel)

	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
