package variantform

import (
	"context"
	"errors"
	"fmt"

	"storefront-admin/models"
)

// ErrNotAuthenticated means no bearer token is available for the submission.
// Callers send the admin back to login; the attempt is not retried.
var ErrNotAuthenticated = errors.New("not authenticated")

// TokenSource yields the storefront API bearer token for one submission.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// ProductWriter is the part of the storefront API a submission needs.
type ProductWriter interface {
	CreateProduct(ctx context.Context, token string, p *Payload) (*models.Product, error)
	UpdateProduct(ctx context.Context, token, productID string, p *Payload) (*models.Product, error)
}

type Submitter struct {
	API ProductWriter
}

// Submit sends a snapshot of the tree to the API: POST for a new product, PUT
// for an edited one. It never mutates the tree and never retries.
func (s *Submitter) Submit(ctx context.Context, tokens TokenSource, t Tree) (*models.Product, error) {
	token, err := tokens.Token(ctx)
	if err != nil {
		if errors.Is(err, ErrNotAuthenticated) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read session token: %w", err)
	}
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	payload, err := t.Serialize()
	if err != nil {
		return nil, err
	}

	if t.Mode == ModeEdit {
		return s.API.UpdateProduct(ctx, token, t.ProductID, payload)
	}
	return s.API.CreateProduct(ctx, token, payload)
}
