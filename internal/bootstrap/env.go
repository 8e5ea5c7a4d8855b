package bootstrap

import (
	"log"

	"github.com/joho/godotenv"
)

// LoadDotenv reads a local .env file into the process environment. A missing
// file is fine; deployed environments set their variables directly.
func LoadDotenv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, relying on the process environment")
	}
}
