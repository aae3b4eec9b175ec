package main

import (
	"log"

	"github.com/MrSnakeDoc/learntube/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ learntube failed to start: %v", err)
	}
}
