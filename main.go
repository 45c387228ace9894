package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/thebestsalad/portfolio/cmd"
)

func main() {
	cmd.Execute()
}
