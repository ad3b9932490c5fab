// Package service holds one thin wrapper per backend resource. Each call maps
// to exactly one HTTP request and returns the decoded envelope or the
// adapter's error untouched.
package service

import (
	"context"
	"net/url"

	"github.com/eaglebank/console/shared/models"
)

// Requester is the slice of the API client the services need.
type Requester interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
}

func get[T any](ctx context.Context, api Requester, path string, query url.Values) (*models.Envelope[T], error) {
	var env models.Envelope[T]
	if err := api.Get(ctx, path, query, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

func post[T any](ctx context.Context, api Requester, path string, body any) (*models.Envelope[T], error) {
	var env models.Envelope[T]
	if err := api.Post(ctx, path, body, &env); err != nil {
		return nil, err
	}
	return &env, nil
}
