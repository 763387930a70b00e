package handler

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/MikhailRaia/shortlink/internal/model"
	"github.com/MikhailRaia/shortlink/internal/proto"
	"github.com/MikhailRaia/shortlink/internal/service"
	"github.com/MikhailRaia/shortlink/internal/storage"
)

// ShortlinkGRPCServer exposes create and resolve over gRPC.
type ShortlinkGRPCServer struct {
	shortener Shortener
}

func NewShortlinkGRPCServer(shortener Shortener) *ShortlinkGRPCServer {
	return &ShortlinkGRPCServer{
		shortener: shortener,
	}
}

func (s *ShortlinkGRPCServer) Create(ctx context.Context, req *proto.CreateRequest) (*proto.CreateResponse, error) {
	if req.Target == "" {
		return nil, status.Error(codes.InvalidArgument, "target is required")
	}

	resp, err := s.shortener.Create(ctx, model.CreateRequest{
		MasterSecret: req.MasterSecret,
		Target:       req.Target,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			return nil, status.Error(codes.PermissionDenied, "forbidden")
		case errors.Is(err, service.ErrInvalidRequest):
			return nil, status.Error(codes.InvalidArgument, "invalid request")
		default:
			log.Error().Err(err).Msg("Failed to create record")
			return nil, status.Error(codes.Internal, "internal error")
		}
	}

	return &proto.CreateResponse{
		Slug:        resp.Slug,
		OwnerSecret: resp.OwnerSecret,
	}, nil
}

func (s *ShortlinkGRPCServer) Resolve(ctx context.Context, req *proto.ResolveRequest) (*proto.ResolveResponse, error) {
	if req.Slug == "" {
		return nil, status.Error(codes.InvalidArgument, "slug is required")
	}

	target, err := s.shortener.Resolve(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, status.Error(codes.NotFound, "slug not found")
		}

		log.Error().Err(err).Str("slug", req.Slug).Msg("Failed to resolve slug")
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &proto.ResolveResponse{Target: target}, nil
}
