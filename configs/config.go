package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func Config(key string) string {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: no .env file found, falling back to system environment")
	}

	return os.Getenv(key)
}