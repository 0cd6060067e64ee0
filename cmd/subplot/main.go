package main

import (
	"os"

	"horse.fit/subplot/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
