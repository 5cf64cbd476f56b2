//go:build !cgo

package hostwindow

import (
	"context"
	"errors"

	"picodeck/hal"
)

func Run(_ *hal.Host, _ int, _ func(context.Context, hal.HAL) error) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
