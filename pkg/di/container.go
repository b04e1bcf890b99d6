// Package di provides dependency injection container
package di

import (
	"github.com/ssargent/swmmout/pkg/api" //nolint:depguard
	"github.com/ssargent/swmmout/pkg/output"
)

// Container holds all the dependencies for the application
type Container struct {
	serverFactory api.ServerFactory
	opener        output.Opener
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		serverFactory: api.NewServerFactory(),
	}
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}

// GetOpener returns the results file opener, nil for the default
func (c *Container) GetOpener() output.Opener {
	return c.opener
}

// SetOpener overrides how results files are opened (for testing)
func (c *Container) SetOpener(opener output.Opener) {
	c.opener = opener
}
