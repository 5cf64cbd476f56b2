//go:build tinygo

package main

import (
	"context"

	"picodeck/app"
	"picodeck/hal"
)

func main() {
	_ = app.Run(context.Background(), hal.New(), app.DefaultConfig())
	select {}
}
