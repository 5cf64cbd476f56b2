//go:build cgo

// Package hostwindow shows the simulated display in a desktop window and maps
// the arrow keys and Enter onto the simulated keypad.
package hostwindow

import (
	"context"
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"picodeck/hal"
	"picodeck/internal/buildinfo"
	"picodeck/keypad"
)

var keyMap = [keypad.NumKeys][]ebiten.Key{
	keypad.Up:    {ebiten.KeyArrowUp, ebiten.KeyW},
	keypad.Down:  {ebiten.KeyArrowDown, ebiten.KeyS},
	keypad.Left:  {ebiten.KeyArrowLeft, ebiten.KeyA},
	keypad.Right: {ebiten.KeyArrowRight, ebiten.KeyD},
	keypad.OK:    {ebiten.KeyEnter, ebiten.KeySpace},
}

// Run starts run with h and opens the window. It blocks until the window is
// closed or run returns; closing the window cancels run's context.
func Run(h *hal.Host, scale int, run func(context.Context, hal.HAL) error) error {
	if scale <= 0 {
		scale = 4
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- run(ctx, h) }()

	w, hh := h.Size()
	g := &game{h: h, done: done}
	ebiten.SetWindowTitle("picodeck (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(w*scale, hh*scale)
	ebiten.SetTPS(60)

	err := ebiten.RunGame(g)
	cancel()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	runErr := g.runErr
	if !g.finished {
		runErr = <-done
	}
	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

type game struct {
	h        *hal.Host
	img      *image.RGBA
	fbImg    *ebiten.Image
	done     chan error
	runErr   error
	finished bool
}

func (g *game) Update() error {
	if !g.finished {
		select {
		case err := <-g.done:
			g.runErr = err
			g.finished = true
			// A failed run leaves the fatal screen up until the window closes.
			if err == nil || errors.Is(err, context.Canceled) {
				return ebiten.Termination
			}
		default:
		}
	}

	for k, keys := range keyMap {
		down := false
		for _, key := range keys {
			if ebiten.IsKeyPressed(key) {
				down = true
				break
			}
		}
		g.h.SetKey(keypad.Key(k), down)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	w, h := g.h.Size()
	if g.img == nil || g.img.Bounds().Dx() != w || g.img.Bounds().Dy() != h {
		g.img = image.NewRGBA(image.Rect(0, 0, w, h))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
	}

	g.h.SnapshotRGBA(g.img)
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.Size()
}
