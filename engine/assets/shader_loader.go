// Package assets holds the GLSL sources the engine ships with.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed shaders/*
var shaders embed.FS

// Shader file names.
const (
	UIVertex     = "ui.vert"
	UIFragment   = "ui.frag"
	TextVertex   = "text.vert"
	TextFragment = "text.frag"
)

// LoadShader reads a GLSL file from the embedded shader directory.
func LoadShader(name string) (string, error) {
	sub, err := fs.Sub(shaders, "shaders")
	if err != nil {
		return "", err
	}
	return LoadShaderFS(sub, name)
}

// LoadShaderFS reads a GLSL file from fsys, for hosts that override the
// built-in shaders.
func LoadShaderFS(fsys fs.FS, name string) (string, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", name, err)
	}
	return string(b), nil
}

// Pair loads a vertex and fragment shader together.
func Pair(vert, frag string) (vs, fsrc string, err error) {
	if vs, err = LoadShader(vert); err != nil {
		return "", "", err
	}
	if fsrc, err = LoadShader(frag); err != nil {
		return "", "", err
	}
	return vs, fsrc, nil
}
