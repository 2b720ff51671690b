//go:build !noebiten

package glrage

import (
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/opd-ai/go-glrage/internal/display"
	"github.com/opd-ai/go-glrage/internal/render"
)

// errStopped ends the game loop when the instance is stopped or the client
// quits.
var errStopped = errors.New("glrage: stopped")

func newWindowBackend(width, height int) (backend, error) {
	return render.NewEbitenRenderer(width, height), nil
}

// hostGame implements ebiten.Game. Update runs one client frame, whose
// flips and unlocks draw into the renderer's back frame; Draw shows the
// last presented frame.
type hostGame struct {
	ctx      context.Context
	inst     *Instance
	client   Client
	renderer *render.EbitenRenderer
}

func (g *hostGame) Update() error {
	select {
	case <-g.ctx.Done():
		return errStopped
	default:
	}

	handleKeys(g.inst.display)

	if err := g.inst.frame(g.client); err != nil {
		if errors.Is(err, ErrQuit) {
			return errStopped
		}
		return err
	}
	return nil
}

// handleKeys toggles fullscreen on F11 or Alt+Enter and schedules a
// screenshot on PrintScreen.
func handleKeys(ctx *display.Context) {
	enter := inpututil.IsKeyJustPressed(ebiten.KeyEnter) && ebiten.IsKeyPressed(ebiten.KeyAlt)
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) || enter {
		ctx.ToggleFullscreen()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPrintScreen) {
		ctx.ScheduleScreenshot()
	}
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.renderer.Layout(outsideWidth, outsideHeight)
}

// runWindowed runs the Ebitengine game loop. It blocks until the window is
// closed, the instance is stopped or the client quits.
func (i *Instance) runWindowed(ctx context.Context, client Client) error {
	r, ok := i.backend.(*render.EbitenRenderer)
	if !ok {
		return ErrNoWindow
	}

	i.mu.RLock()
	win := i.cfg.Window
	i.mu.RUnlock()
	if i.opts.WindowTitle != "" {
		win.Title = i.opts.WindowTitle
	}

	width, height := r.Size()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(win.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(win.VSync)
	i.display.SetFullscreen(win.Fullscreen)

	err := ebiten.RunGame(&hostGame{ctx: ctx, inst: i, client: client, renderer: r})
	if err == nil || errors.Is(err, errStopped) {
		return nil
	}
	return fmt.Errorf("render loop error: %w", err)
}
