package model

import (
	"github.com/arthur-debert/dictus/pkg/link"
	"github.com/arthur-debert/dictus/pkg/richtext"
)

// Env carries the collaborators shared by every entity of one parsing run
type Env struct {
	Registry *link.Registry
	Renderer richtext.Renderer
}

func (e Env) render(text string) (string, error) {
	if e.Renderer == nil {
		return text, nil
	}
	return e.Renderer.Render(text)
}
