// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package templates compiles the embedded pongo2 templates for outgoing
// emails and the server-rendered password reset pages.
package templates

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path"

	"github.com/flosch/pongo2/v6"
)

//go:embed emails/* pages/*
var files embed.FS

// Template names.
const (
	ConfirmationEmailText  = "emails/confirmation.txt"
	ConfirmationEmailHTML  = "emails/confirmation.html"
	PasswordResetEmailText = "emails/password_reset.txt"
	WelcomeEmailText       = "emails/welcome.txt"

	PasswordResetConfirmPage  = "pages/password_reset_confirm.html"
	PasswordResetCompletePage = "pages/password_reset_complete.html"
)

// Data is the variable set passed to a template.
type Data = pongo2.Context

// Renderer holds every compiled template. It is safe for concurrent use.
type Renderer struct {
	templates map[string]*pongo2.Template
}

// New compiles all embedded templates.
func New() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*pongo2.Template)}

	err := fs.WalkDir(files, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		raw, err := files.ReadFile(name)
		if err != nil {
			return err
		}
		tpl, err := pongo2.FromBytes(raw)
		if err != nil {
			return fmt.Errorf("error compiling template %s: %w", path.Base(name), err)
		}
		r.templates[name] = tpl
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

// Has reports whether a template called name exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// Render executes the template called name.
func (r *Renderer) Render(name string, data Data) (string, error) {
	tpl, ok := r.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown template %q", name)
	}
	return tpl.Execute(data)
}

// Write executes the template called name into w.
func (r *Renderer) Write(w io.Writer, name string, data Data) error {
	tpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	return tpl.ExecuteWriter(data, w)
}
