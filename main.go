package main

import (
	"os"

	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/uni-portal/app"
)

func main() {
	if err := app.NewRootCommand().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
