// Package shader provides OpenGL shader program compilation and uniform upload.
package shader

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/xgl/internal/engine/errs"
	"github.com/Faultbox/xgl/internal/engine/gpu"
	"github.com/Faultbox/xgl/internal/engine/resource"
	"github.com/Faultbox/xgl/internal/logger"
)

// Shader is a linked vertex+fragment program. An empty Shader has no program
// and every method is a no-op until Create succeeds.
type Shader struct {
	dev     gpu.Device
	program uint32
	refs    resource.RefCount

	// locations caches uniform lookups for program.
	locations map[string]int32
}

// New returns an empty shader owned by the caller.
func New(dev gpu.Device) *Shader {
	return &Shader{dev: dev, refs: resource.NewRefCount()}
}

// Compile is a shortcut for New followed by Create.
func Compile(dev gpu.Device, vertexSrc, fragmentSrc string) (*Shader, error) {
	s := New(dev)
	if err := s.Create(vertexSrc, fragmentSrc); err != nil {
		return nil, err
	}
	return s, nil
}

// Create compiles both stages and links them. On failure the previous
// program, if any, is kept.
func (s *Shader) Create(vertexSrc, fragmentSrc string) error {
	vertShader, err := s.compileShader(vertexSrc, gpu.VertexShader, "vertex")
	if err != nil {
		return err
	}
	defer s.dev.DeleteShader(vertShader)

	fragShader, err := s.compileShader(fragmentSrc, gpu.FragmentShader, "fragment")
	if err != nil {
		return err
	}
	defer s.dev.DeleteShader(fragShader)

	program := s.dev.CreateProgram()
	if program == 0 {
		return fmt.Errorf("creating program object: %w", errs.ErrResourceCreation)
	}
	s.dev.AttachShader(program, vertShader)
	s.dev.AttachShader(program, fragShader)

	if ok, log := s.dev.LinkProgram(program); !ok {
		s.dev.DeleteProgram(program)
		return fmt.Errorf("link: %s: %w", log, errs.ErrResourceCreation)
	}

	if s.program != 0 {
		s.dev.DeleteProgram(s.program)
	}
	s.program = program
	s.locations = make(map[string]int32)

	logger.Named("shader").Debug("program linked", zap.Uint32("program", program))
	return nil
}

// compileShader compiles a single shader of the given stage.
func (s *Shader) compileShader(source string, stage gpu.Enum, name string) (uint32, error) {
	id := s.dev.CreateShader(stage)
	if id == 0 {
		return 0, fmt.Errorf("creating %s shader object: %w", name, errs.ErrResourceCreation)
	}

	if ok, log := s.dev.CompileShader(id, source); !ok {
		s.dev.DeleteShader(id)
		return 0, fmt.Errorf("%s shader: %s: %w", name, log, errs.ErrResourceCreation)
	}

	return id, nil
}

// Load reads both stages from files and calls Create.
func (s *Shader) Load(vertexPath, fragmentPath string) error {
	vertexSrc, err := os.ReadFile(vertexPath)
	if err != nil {
		return fmt.Errorf("reading vertex shader: %w", err)
	}
	fragmentSrc, err := os.ReadFile(fragmentPath)
	if err != nil {
		return fmt.Errorf("reading fragment shader: %w", err)
	}
	return s.Create(string(vertexSrc), string(fragmentSrc))
}

// Use makes the program current.
func (s *Shader) Use() {
	if s.program != 0 {
		s.dev.UseProgram(s.program)
	}
}

// Program returns the program handle, 0 when none was linked.
func (s *Shader) Program() uint32 {
	return s.program
}

// Location returns the uniform location for name, or -1 if the program
// does not declare it.
func (s *Shader) Location(name string) int32 {
	if s.program == 0 {
		return -1
	}
	if loc, ok := s.locations[name]; ok {
		return loc
	}
	loc := s.dev.UniformLocation(s.program, name)
	s.locations[name] = loc
	return loc
}

// Uniform setters write to the program made current by Use. Names the
// program does not declare are skipped.

func (s *Shader) SetInt(name string, v int32) {
	if loc := s.Location(name); loc >= 0 {
		s.dev.Uniform1i(loc, v)
	}
}

func (s *Shader) SetFloat(name string, v float32) {
	if loc := s.Location(name); loc >= 0 {
		s.dev.Uniform1f(loc, v)
	}
}

func (s *Shader) SetVec3(name string, v [3]float32) {
	if loc := s.Location(name); loc >= 0 {
		s.dev.Uniform3f(loc, v)
	}
}

func (s *Shader) SetVec4(name string, v [4]float32) {
	if loc := s.Location(name); loc >= 0 {
		s.dev.Uniform4f(loc, v)
	}
}

func (s *Shader) SetMat4(name string, m [16]float32) {
	if loc := s.Location(name); loc >= 0 {
		s.dev.UniformMatrix4(loc, m)
	}
}

// Retain adds an owner.
func (s *Shader) Retain() {
	s.refs.Retain()
}

// Release drops an owner and deletes the program after the last one.
func (s *Shader) Release() {
	if s.refs.Release() {
		s.Destroy()
	}
}

// Destroy deletes the program regardless of owners.
func (s *Shader) Destroy() {
	if s.program != 0 {
		s.dev.DeleteProgram(s.program)
		s.program = 0
		s.locations = nil
	}
}
