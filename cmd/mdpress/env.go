package main

import (
	"context"
	"io"
	"os"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer
	Ctx    context.Context // nil = context.Background()
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Context returns the environment's base context.
func (e *Environment) Context() context.Context {
	if e.Ctx != nil {
		return e.Ctx
	}
	return context.Background()
}
