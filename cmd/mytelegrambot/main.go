package main

import "github.com/joho/godotenv"

func main() {
	// Local development convenience; absence of a .env file is fine.
	_ = godotenv.Load()
	Execute()
}
