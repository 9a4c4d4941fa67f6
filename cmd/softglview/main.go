// Command softglview shows an animated scene rendered by softgl in a
// window. Space pauses, W toggles wireframe and Escape quits.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/softgl"
	"github.com/gogpu/softgl/internal/demo"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/urfave/cli/v2"
)

const tps = 60

func main() {
	app := &cli.App{
		Name:  "softglview",
		Usage: "show a softgl scene in a window",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "scene",
				Aliases: []string{"s"},
				Usage:   "TOML scene file (defaults to the built-in scene)",
			},
			&cli.IntFlag{
				Name:  "scale",
				Value: 2,
				Usage: "window pixels per rendered pixel",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log context events to stderr",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	if ctx.Bool("verbose") {
		softgl.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}
	s := demo.DefaultScene()
	if path := ctx.String("scene"); path != "" {
		var err error
		if s, err = demo.LoadScene(path); err != nil {
			return err
		}
	}
	r, err := demo.NewRenderer(s.Width, s.Height)
	if err != nil {
		return err
	}
	defer r.Close()

	scale := ctx.Int("scale")
	if scale < 1 {
		scale = 1
	}
	ebiten.SetWindowTitle("softgl")
	ebiten.SetWindowSize(s.Width*scale, s.Height*scale)
	ebiten.SetTPS(tps)
	err = ebiten.RunGame(&viewer{scene: s, renderer: r})
	if err == ebiten.Termination {
		return nil
	}
	return err
}

type viewer struct {
	scene    *demo.Scene
	renderer *demo.Renderer
	frame    *ebiten.Image
	time     float32
	paused   bool
}

func (v *viewer) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.paused = !v.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		v.scene.Wireframe = !v.scene.Wireframe
	}
	if !v.paused {
		v.time += 1.0 / tps
	}
	_, err := v.renderer.Render(v.scene, v.time)
	return err
}

func (v *viewer) Draw(screen *ebiten.Image) {
	surf := v.renderer.Surface()
	if v.frame == nil {
		v.frame = ebiten.NewImage(surf.Width(), surf.Height())
	}
	v.frame.WritePixels(surf.Pix())
	screen.DrawImage(v.frame, nil)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return v.scene.Width, v.scene.Height
}
