package main

import (
	"io"
	"os"
	"time"

	pdfreport "github.com/alnah/go-pdfreport"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer

	// Renderer replaces the Chrome renderer when set; tests inject a fake.
	Renderer pdfreport.Renderer
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}
