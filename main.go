package main

import (
	"log"

	"github.com/utage-jpg/profile/internal/app"
)

func main() {
	if err := app.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
