package main

import (
	"github.com/joho/godotenv"

	"github.com/kamal-hamza/shot-cli/cmd"
)

func main() {
	// SHOT_* overrides may live in a .env file next to the project
	_ = godotenv.Load()

	cmd.Execute()
}
