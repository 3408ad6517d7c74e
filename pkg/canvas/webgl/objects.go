package webgl

// object is a host-side WebGL object. The value is whatever the invoker
// returned for it and is passed back unchanged.
type object struct {
	value any
}

// Valid reports whether the handle refers to a host object.
func (o object) Valid() bool {
	return o.value != nil
}

// Shader is a handle to a host WebGLShader.
type Shader struct{ object }

// Program is a handle to a host WebGLProgram.
type Program struct{ object }

// Buffer is a handle to a host WebGLBuffer.
type Buffer struct{ object }

// UniformLocation is a handle to a host WebGLUniformLocation.
type UniformLocation struct{ object }
