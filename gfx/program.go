package gfx

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Program represents an OpenGL program.
type Program struct {
	ProgramID uint32
	Shaders   []*Shader
}

// NewProgram creates a new Program
func NewProgram() (*Program, error) {
	prog := gl.CreateProgram()
	if prog == 0 {
		return nil, fmt.Errorf("no programs available")
	}
	return &Program{
		ProgramID: prog,
		Shaders:   []*Shader{},
	}, nil
}

// AttachShader attaches a shader from source to a program, defering
// compilation so that calls can be chained together and finished with a call
// to Link()
func (p *Program) AttachShader(cfg *ShaderConfig) error {
	shader, err := NewShader(cfg)
	if err != nil {
		return err
	}
	p.Shaders = append(p.Shaders, shader)
	gl.AttachShader(p.ProgramID, shader.ShaderID)

	return nil
}

// Link links the program and retrieves all uniform and attribute locations.
func (p *Program) Link() error {
	gl.LinkProgram(p.ProgramID)

	var status int32
	gl.GetProgramiv(p.ProgramID, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		return fmt.Errorf("failed to link program")
	}

	for _, sh := range p.Shaders {
		for uname := range sh.UniformLocations {
			uloc := gl.GetUniformLocation(p.ProgramID, gl.Str(uname+"\x00"))
			if uloc < 0 {
				return fmt.Errorf("location of uniform '%s' not found", uname)
			}
			sh.UniformLocations[uname] = uloc
		}
		for aname := range sh.AttributeLocations {
			aloc := gl.GetAttribLocation(p.ProgramID, gl.Str(aname+"\x00"))
			if aloc < 0 {
				return fmt.Errorf("location of attribute '%s' not found", aname)
			}
			sh.AttributeLocations[aname] = aloc
		}
	}

	return nil
}
