package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"refdesk/internal/store"
	"refdesk/internal/types"
)

func collectionPath(collection types.Collection) string {
	return "/v1/" + string(collection)
}

func (c *Client) Identity(ctx context.Context) (string, error) {
	var resp IdentityResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/identity", nil, true, &resp); err != nil {
		return "", err
	}
	return resp.PrincipalID, nil
}

func (c *Client) ListDocuments(ctx context.Context, collection types.Collection, scope types.Scope) ([]store.Document, error) {
	var resp SnapshotResponse
	path := collectionPath(collection) + "?scope=" + url.QueryEscape(string(scope))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, true, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *Client) CreateDocument(ctx context.Context, collection types.Collection, fields store.Document) (store.Document, error) {
	if len(fields) == 0 {
		return nil, errors.New("document fields are required")
	}
	var doc store.Document
	if err := c.doJSON(ctx, http.MethodPost, collectionPath(collection), fields, true, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *Client) SetDocument(ctx context.Context, collection types.Collection, id string, fields store.Document) (store.Document, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("document id is required")
	}
	var doc store.Document
	path := collectionPath(collection) + "/" + url.PathEscape(id)
	if err := c.doJSON(ctx, http.MethodPut, path, fields, true, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *Client) UpdateDocument(ctx context.Context, collection types.Collection, id string, fields store.Document) (store.Document, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("document id is required")
	}
	var doc store.Document
	path := collectionPath(collection) + "/" + url.PathEscape(id)
	if err := c.doJSON(ctx, http.MethodPatch, path, fields, true, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *Client) DeleteDocument(ctx context.Context, collection types.Collection, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("document id is required")
	}
	path := collectionPath(collection) + "/" + url.PathEscape(id)
	return c.doJSON(ctx, http.MethodDelete, path, nil, true, nil)
}

func (c *Client) GetKeymap(ctx context.Context) (*types.Keymap, error) {
	var keymap types.Keymap
	if err := c.doJSON(ctx, http.MethodGet, "/v1/keymap", nil, true, &keymap); err != nil {
		return nil, err
	}
	return &keymap, nil
}

func (c *Client) SaveKeymap(ctx context.Context, keymap *types.Keymap) error {
	if keymap == nil {
		return errors.New("keymap is required")
	}
	return c.doJSON(ctx, http.MethodPut, "/v1/keymap", keymap, true, nil)
}
