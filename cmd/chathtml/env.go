package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/go-chathtml"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time and asset loading.
type Environment struct {
	Now         func() time.Time
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
	AssetLoader chathtml.AssetLoader // nil = config or embedded assets
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}
