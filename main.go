/*
Copyright © 2025 thedailylaw
*/
package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/thedailylaw/dailylaw-be/cmd"
)

func main() {
	cmd.Execute()
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}
}
