// Command softgldemo renders a scene with the softgl software rasterizer
// and writes it as an image.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/softgl"
	"github.com/gogpu/softgl/internal/demo"
	"github.com/urfave/cli/v2"
	"golang.org/x/image/bmp"
)

var (
	sceneFlag = &cli.StringFlag{
		Name:    "scene",
		Aliases: []string{"s"},
		Usage:   "TOML scene file (defaults to the built-in scene)",
	}
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Value:   "softgl.png",
		Usage:   "output file, .png or .bmp",
	}
	widthFlag = &cli.IntFlag{
		Name:  "width",
		Usage: "override the scene width",
	}
	heightFlag = &cli.IntFlag{
		Name:  "height",
		Usage: "override the scene height",
	}
	framesFlag = &cli.IntFlag{
		Name:  "frames",
		Value: 1,
		Usage: "number of frames; more than one numbers the output files",
	}
	fpsFlag = &cli.Float64Flag{
		Name:  "fps",
		Value: 30,
		Usage: "animation rate used to time frames",
	}
	wireframeFlag = &cli.BoolFlag{
		Name:  "wireframe",
		Usage: "draw triangle edges only",
	}
	verboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "log context and draw events to stderr",
	}
)

func main() {
	app := &cli.App{
		Name:  "softgldemo",
		Usage: "render a scene with the softgl software rasterizer",
		Flags: []cli.Flag{
			sceneFlag,
			outputFlag,
			widthFlag,
			heightFlag,
			framesFlag,
			fpsFlag,
			wireframeFlag,
			verboseFlag,
		},
		Action: render,
		Commands: []*cli.Command{
			{
				Name:   "dump-scene",
				Usage:  "print the scene as TOML",
				Flags:  []cli.Flag{sceneFlag},
				Action: dumpScene,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadScene(ctx *cli.Context) (*demo.Scene, error) {
	if path := ctx.String(sceneFlag.Name); path != "" {
		return demo.LoadScene(path)
	}
	return demo.DefaultScene(), nil
}

func dumpScene(ctx *cli.Context) error {
	s, err := loadScene(ctx)
	if err != nil {
		return err
	}
	return s.Encode(os.Stdout)
}

func render(ctx *cli.Context) error {
	if ctx.Bool(verboseFlag.Name) {
		softgl.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
	s, err := loadScene(ctx)
	if err != nil {
		return err
	}
	if w := ctx.Int(widthFlag.Name); w > 0 {
		s.Width = w
	}
	if h := ctx.Int(heightFlag.Name); h > 0 {
		s.Height = h
	}
	if ctx.Bool(wireframeFlag.Name) {
		s.Wireframe = true
	}
	frames := ctx.Int(framesFlag.Name)
	fps := ctx.Float64(fpsFlag.Name)
	if frames < 1 || fps <= 0 {
		return fmt.Errorf("invalid animation: %d frames at %g fps", frames, fps)
	}

	r, err := demo.NewRenderer(s.Width, s.Height)
	if err != nil {
		return err
	}
	defer r.Close()

	out := ctx.String(outputFlag.Name)
	for i := 0; i < frames; i++ {
		stats, err := r.Render(s, float32(float64(i)/fps))
		if err != nil {
			return err
		}
		path := out
		if frames > 1 {
			path = framePath(out, i)
		}
		if err := save(r.Surface(), path); err != nil {
			return err
		}
		softgl.Logger().Info("frame written",
			"path", path,
			"objects", stats.Objects,
			"culled", stats.Culled,
			"triangles", stats.Triangles,
			"fragments", stats.Fragments)
	}
	fmt.Printf("rendered %d frame(s) of %dx%d to %s\n", frames, s.Width, s.Height, out)
	return nil
}

// framePath turns out.png into out_007.png for frame 7.
func framePath(out string, i int) string {
	ext := filepath.Ext(out)
	return fmt.Sprintf("%s_%03d%s", strings.TrimSuffix(out, ext), i, ext)
}

func save(s *softgl.Surface, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := bmp.Encode(f, s.ToImage()); err != nil {
			f.Close()
			return fmt.Errorf("encode %s: %w", path, err)
		}
		return f.Close()
	case ".png", "":
		return s.SavePNG(path)
	default:
		return fmt.Errorf("unsupported output format %q", filepath.Ext(path))
	}
}
