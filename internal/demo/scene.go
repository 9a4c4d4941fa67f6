// Package demo renders small scenes of meshes through a softgl context.
// It backs the softgldemo and softglview commands.
package demo

import (
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrUnknownShape is returned for an object whose shape is not known.
var ErrUnknownShape = errors.New("demo: unknown shape")

// Shapes an Object may name.
const (
	ShapeCube  = "cube"
	ShapePlane = "plane"
)

// Camera is a perspective camera looking from Eye at Target.
type Camera struct {
	Eye    [3]float32 `toml:"eye"`
	Target [3]float32 `toml:"target"`
	Up     [3]float32 `toml:"up"`
	FovY   float32    `toml:"fov_y"` // degrees
	Near   float32    `toml:"near"`
	Far    float32    `toml:"far"`
}

// Light is one directional light plus an ambient term.
type Light struct {
	Direction [3]float32 `toml:"direction"` // towards the light
	Ambient   float32    `toml:"ambient"`
}

// Object places one mesh in the scene.
type Object struct {
	Name     string     `toml:"name"`
	Shape    string     `toml:"shape"`
	Size     [3]float32 `toml:"size"`
	Position [3]float32 `toml:"position"`
	Rotation [3]float32 `toml:"rotation"` // degrees about X, Y, Z
	Spin     float32    `toml:"spin"`     // degrees per second about Y
	Color    [4]float32 `toml:"color"`

	// Texture tiles a checkerboard over the object Texture times per UV
	// unit. Zero leaves it untextured.
	Texture float32 `toml:"texture"`
}

// Scene is everything one frame needs.
type Scene struct {
	Width      int        `toml:"width"`
	Height     int        `toml:"height"`
	Background [4]float32 `toml:"background"`
	Wireframe  bool       `toml:"wireframe"`
	Camera     Camera     `toml:"camera"`
	Light      Light      `toml:"light"`
	Objects    []Object   `toml:"objects"`
}

// DefaultScene returns a spinning cube resting on a checkered floor.
func DefaultScene() *Scene {
	return &Scene{
		Width:      320,
		Height:     240,
		Background: [4]float32{0.08, 0.09, 0.12, 1},
		Camera: Camera{
			Eye:  [3]float32{3, 2.5, 4},
			Up:   [3]float32{0, 1, 0},
			FovY: 60,
			Near: 0.1,
			Far:  50,
		},
		Light: Light{
			Direction: [3]float32{0.4, 1, 0.6},
			Ambient:   0.25,
		},
		Objects: []Object{
			{
				Name:  "cube",
				Shape: ShapeCube,
				Size:  [3]float32{1.5, 1.5, 1.5},
				Spin:  45,
				Color: [4]float32{1, 1, 1, 1},
			},
			{
				Name:     "floor",
				Shape:    ShapePlane,
				Size:     [3]float32{8, 1, 8},
				Position: [3]float32{0, -0.75, 0},
				Color:    [4]float32{0.8, 0.8, 0.8, 1},
				Texture:  4,
			},
		},
	}
}

// LoadScene reads a TOML scene over the defaults: keys the file omits
// keep their DefaultScene values, and a file listing objects replaces
// the default objects.
func LoadScene(path string) (*Scene, error) {
	s := DefaultScene()
	s.Objects = nil
	md, err := toml.DecodeFile(path, s)
	if err != nil {
		return nil, fmt.Errorf("demo: load scene %s: %w", path, err)
	}
	if !md.IsDefined("objects") {
		s.Objects = DefaultScene().Objects
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("demo: load scene %s: %w", path, err)
	}
	return s, nil
}

// Encode writes the scene as TOML.
func (s *Scene) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(s)
}

// Validate reports the first problem that would stop the scene from
// rendering.
func (s *Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("demo: invalid size %dx%d", s.Width, s.Height)
	}
	if s.Camera.Near <= 0 || s.Camera.Far <= s.Camera.Near {
		return fmt.Errorf("demo: invalid depth range [%g, %g]", s.Camera.Near, s.Camera.Far)
	}
	for _, o := range s.Objects {
		switch o.Shape {
		case ShapeCube, ShapePlane:
		default:
			return fmt.Errorf("%w: %q in object %q", ErrUnknownShape, o.Shape, o.Name)
		}
	}
	return nil
}

// View returns the camera's view matrix.
func (c Camera) View() mgl32.Mat4 {
	up := mgl32.Vec3(c.Up)
	if up.Len() == 0 {
		up = mgl32.Vec3{0, 1, 0}
	}
	return mgl32.LookAtV(mgl32.Vec3(c.Eye), mgl32.Vec3(c.Target), up)
}

// Projection returns the camera's projection matrix for an aspect ratio.
func (c Camera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// Model returns the object's model matrix at time t seconds.
func (o Object) Model(t float32) mgl32.Mat4 {
	r := o.Rotation
	spin := o.Spin * t
	return mgl32.Translate3D(o.Position[0], o.Position[1], o.Position[2]).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(r[1] + spin))).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(r[0]))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(r[2])))
}
