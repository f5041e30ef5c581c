package main

import (
	"os"

	"github.com/givehub-admin/givehub-admin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
