package main

import (
	"exusiai.dev/chartengine/cmd/app"
)

func main() {
	app.Run()
}
