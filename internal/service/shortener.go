package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MikhailRaia/shortlink/internal/codec"
	"github.com/MikhailRaia/shortlink/internal/model"
	"github.com/MikhailRaia/shortlink/internal/storage"
)

var (
	// ErrForbidden is returned when the caller fails the master secret check.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidRequest is returned for requests that cannot become a record.
	ErrInvalidRequest = errors.New("invalid request")
)

// Authenticator decides whether a caller-supplied master secret is accepted.
type Authenticator interface {
	Allow(provided *string) bool
}

// IDGenerator mints slugs and owner secrets.
type IDGenerator interface {
	Slug() (string, error)
	OwnerSecret() (string, error)
}

// Shortener creates records and resolves slugs to their targets.
type Shortener struct {
	store storage.Store
	auth  Authenticator
	ids   IDGenerator
}

// NewShortener constructs a Shortener over the given store.
func NewShortener(store storage.Store, auth Authenticator, ids IDGenerator) *Shortener {
	return &Shortener{
		store: store,
		auth:  auth,
		ids:   ids,
	}
}

// Create authenticates req, mints a slug and owner secret, and stores the
// record. Nothing is written when authentication fails.
func (s *Shortener) Create(ctx context.Context, req model.CreateRequest) (model.CreateResponse, error) {
	if !s.auth.Allow(req.MasterSecret) {
		return model.CreateResponse{}, ErrForbidden
	}

	if req.Target == "" {
		return model.CreateResponse{}, fmt.Errorf("%w: target is empty", ErrInvalidRequest)
	}

	slug, err := s.ids.Slug()
	if err != nil {
		return model.CreateResponse{}, err
	}

	ownerSecret, err := s.ids.OwnerSecret()
	if err != nil {
		return model.CreateResponse{}, fmt.Errorf("failed to generate owner secret: %w", err)
	}

	value, err := codec.Encode(model.Record{
		OwnerSecret: ownerSecret,
		Target:      req.Target,
	})
	if err != nil {
		return model.CreateResponse{}, err
	}

	if err := s.store.Put(ctx, slug, value); err != nil {
		return model.CreateResponse{}, fmt.Errorf("error saving record: %w", err)
	}

	return model.CreateResponse{
		Slug:        slug,
		OwnerSecret: ownerSecret,
	}, nil
}

// Resolve returns the target stored under slug. A missing slug yields
// storage.ErrNotFound; an undecodable record yields codec.ErrCorruptRecord.
func (s *Shortener) Resolve(ctx context.Context, slug string) (string, error) {
	value, err := s.store.Get(ctx, slug)
	if err != nil {
		return "", err
	}

	record, err := codec.Decode(value)
	if err != nil {
		return "", fmt.Errorf("error decoding record %q: %w", slug, err)
	}

	return record.Target, nil
}

// Ping checks that the underlying store is usable.
func (s *Shortener) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
