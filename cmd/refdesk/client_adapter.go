package main

import (
	"context"

	"refdesk/internal/app"
	"refdesk/internal/client"
	"refdesk/internal/store"
	"refdesk/internal/types"
)

type clientFactory func() (commandClient, error)

type commandClient interface {
	EnsureDaemon(ctx context.Context) error
	EnsureDaemonVersion(ctx context.Context, expectedVersion string, restart bool) error
	Health(ctx context.Context) (*client.HealthResponse, error)
	ShutdownDaemon(ctx context.Context) error
	ListDocuments(ctx context.Context, collection types.Collection, scope types.Scope) ([]store.Document, error)
	CreateDocument(ctx context.Context, collection types.Collection, fields store.Document) (store.Document, error)
	DeleteDocument(ctx context.Context, collection types.Collection, id string) error
	RunUI(defaultScope types.Scope) error
}

type daemonClientAdapter struct {
	client *client.Client
}

func newDaemonClient() (commandClient, error) {
	c, err := client.New()
	if err != nil {
		return nil, err
	}
	return &daemonClientAdapter{client: c}, nil
}

func (c *daemonClientAdapter) EnsureDaemon(ctx context.Context) error {
	return c.client.EnsureDaemon(ctx)
}

func (c *daemonClientAdapter) EnsureDaemonVersion(ctx context.Context, expectedVersion string, restart bool) error {
	return c.client.EnsureDaemonVersion(ctx, expectedVersion, restart)
}

func (c *daemonClientAdapter) Health(ctx context.Context) (*client.HealthResponse, error) {
	return c.client.Health(ctx)
}

func (c *daemonClientAdapter) ShutdownDaemon(ctx context.Context) error {
	return c.client.ShutdownDaemon(ctx)
}

func (c *daemonClientAdapter) ListDocuments(ctx context.Context, collection types.Collection, scope types.Scope) ([]store.Document, error) {
	return c.client.ListDocuments(ctx, collection, scope)
}

func (c *daemonClientAdapter) CreateDocument(ctx context.Context, collection types.Collection, fields store.Document) (store.Document, error) {
	return c.client.CreateDocument(ctx, collection, fields)
}

func (c *daemonClientAdapter) DeleteDocument(ctx context.Context, collection types.Collection, id string) error {
	return c.client.DeleteDocument(ctx, collection, id)
}

func (c *daemonClientAdapter) RunUI(defaultScope types.Scope) error {
	return app.Run(c.client, defaultScope)
}
