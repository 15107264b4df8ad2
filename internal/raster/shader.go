package raster

import (
	"fmt"
	"strings"

	"github.com/san-kum/glcanvas/internal/gfx"
)

// UniformType is the declared type of a uniform.
type UniformType int

const (
	Vec4 UniformType = iota + 1
	Mat4
)

func (t UniformType) String() string {
	switch t {
	case Vec4:
		return "vec4"
	case Mat4:
		return "mat4"
	}
	return "invalid"
}

func (t UniformType) size() int {
	if t == Mat4 {
		return 16
	}
	return 4
}

// Attribute declares a per-vertex input with Size float components.
type Attribute struct {
	Name string
	Size int
}

type Uniform struct {
	Name string
	Type UniformType
}

// VertexOut is what a vertex stage produces for one vertex.
type VertexOut struct {
	Position  [4]float32
	PointSize float32
	Varying   [4]float32
}

// VertexShader is the Go form of a vertex stage. Main receives one
// value per declared attribute, in declaration order, with components
// the buffer does not supply filled from (0, 0, 0, 1).
type VertexShader struct {
	Attributes []Attribute
	Uniforms   []Uniform
	Varyings   int
	Main       func(attrs [][4]float32, u Uniforms) VertexOut
}

// FragmentShader is the Go form of a fragment stage. Main returns an
// RGBA color in [0, 1].
type FragmentShader struct {
	Uniforms []Uniform
	Varyings int
	Main     func(varying [4]float32, u Uniforms) [4]float32
}

// Uniforms gives shader stages read access to the program's uniform
// values. Values never set read as zero.
type Uniforms struct {
	values map[string][]float32
}

func (u Uniforms) Vec4(name string) [4]float32 {
	var v [4]float32
	copy(v[:], u.values[name])
	return v
}

func (u Uniforms) Mat4(name string) gfx.Mat4 {
	var m gfx.Mat4
	copy(m[:], u.values[name])
	return m
}

// Shader is a shader object: a stage kind plus its source and compile
// status.
type Shader struct {
	kind     Enum
	vertex   *VertexShader
	fragment *FragmentShader
	compiled bool
	log      string
}

func (s *Shader) Kind() Enum      { return s.kind }
func (s *Shader) Compiled() bool  { return s.compiled }
func (s *Shader) InfoLog() string { return s.log }

func compileVertex(vs *VertexShader) error {
	if vs.Main == nil {
		return fmt.Errorf("vertex stage has no main")
	}
	seen := make(map[string]bool)
	for _, a := range vs.Attributes {
		if a.Name == "" {
			return fmt.Errorf("attribute with empty name")
		}
		if seen[a.Name] {
			return fmt.Errorf("attribute %q redeclared", a.Name)
		}
		seen[a.Name] = true
		if a.Size < 1 || a.Size > 4 {
			return fmt.Errorf("attribute %q has size %d", a.Name, a.Size)
		}
	}
	if err := checkUniforms(vs.Uniforms, seen); err != nil {
		return err
	}
	return checkVaryings(vs.Varyings)
}

func compileFragment(fs *FragmentShader) error {
	if fs.Main == nil {
		return fmt.Errorf("fragment stage has no main")
	}
	if err := checkUniforms(fs.Uniforms, make(map[string]bool)); err != nil {
		return err
	}
	return checkVaryings(fs.Varyings)
}

func checkUniforms(us []Uniform, seen map[string]bool) error {
	for _, u := range us {
		if u.Name == "" {
			return fmt.Errorf("uniform with empty name")
		}
		if seen[u.Name] {
			return fmt.Errorf("%q redeclared", u.Name)
		}
		seen[u.Name] = true
		if u.Type != Vec4 && u.Type != Mat4 {
			return fmt.Errorf("uniform %q has unsupported type", u.Name)
		}
	}
	return nil
}

func checkVaryings(n int) error {
	if n < 0 || n > 4 {
		return fmt.Errorf("%d varying components, want 0..4", n)
	}
	return nil
}

// Program links a vertex and a fragment stage.
type Program struct {
	vs, fs   *Shader
	linked   bool
	log      string
	uniforms map[string]UniformType
	values   map[string][]float32
}

func (p *Program) Linked() bool    { return p.linked }
func (p *Program) InfoLog() string { return p.log }

func (p *Program) link() error {
	var problems []string
	if p.vs == nil {
		problems = append(problems, "no vertex shader attached")
	} else if !p.vs.compiled {
		problems = append(problems, "vertex shader not compiled")
	}
	if p.fs == nil {
		problems = append(problems, "no fragment shader attached")
	} else if !p.fs.compiled {
		problems = append(problems, "fragment shader not compiled")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}

	vs, fs := p.vs.vertex, p.fs.fragment
	if fs.Varyings > vs.Varyings {
		return fmt.Errorf("fragment reads %d varying components, vertex writes %d", fs.Varyings, vs.Varyings)
	}

	types := make(map[string]UniformType)
	for _, u := range vs.Uniforms {
		types[u.Name] = u.Type
	}
	for _, u := range fs.Uniforms {
		if t, ok := types[u.Name]; ok && t != u.Type {
			return fmt.Errorf("uniform %q is %s in vertex and %s in fragment", u.Name, t, u.Type)
		}
		types[u.Name] = u.Type
	}

	p.uniforms = types
	p.values = make(map[string][]float32)
	return nil
}

func (p *Program) attribLocation(name string) int {
	for i, a := range p.vs.vertex.Attributes {
		if a.Name == name {
			return i
		}
	}
	return -1
}

// UniformLocation names a uniform of a linked program.
type UniformLocation struct {
	prog *Program
	name string
	typ  UniformType
}

func (l *UniformLocation) Name() string { return l.name }
