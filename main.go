package main

import (
	"github.com/edmgen/edmgen/lib"
)

func main() {
	// correlates to bin/edmgen
	app := lib.NewEdmGen()
	app.ArgParse()
	app.Notice("Done")
}
