// Package proto describes the Shortlink gRPC service. Messages are plain Go
// structs carried by JSONCodec rather than protobuf.
package proto

import (
	"context"

	"google.golang.org/grpc"
)

const (
	ServiceName = "shortlink.Shortlink"

	CreateMethod  = "/shortlink.Shortlink/Create"
	ResolveMethod = "/shortlink.Shortlink/Resolve"
)

type CreateRequest struct {
	MasterSecret *string `json:"master_secret,omitempty"`
	Target       string  `json:"target"`
}

type CreateResponse struct {
	Slug        string `json:"slug"`
	OwnerSecret string `json:"owner_secret"`
}

type ResolveRequest struct {
	Slug string `json:"slug"`
}

type ResolveResponse struct {
	Target string `json:"target"`
}

// ShortlinkServer is the server API for the Shortlink service.
type ShortlinkServer interface {
	Create(context.Context, *CreateRequest) (*CreateResponse, error)
	Resolve(context.Context, *ResolveRequest) (*ResolveResponse, error)
}

// RegisterShortlinkServer registers srv on s. The server must be created
// with grpc.ForceServerCodec(JSONCodec{}).
func RegisterShortlinkServer(s grpc.ServiceRegistrar, srv ShortlinkServer) {
	s.RegisterService(&shortlinkServiceDesc, srv)
}

func createHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ShortlinkServer).Create(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CreateMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ShortlinkServer).Create(ctx, req.(*CreateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func resolveHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ResolveRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ShortlinkServer).Resolve(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ResolveMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ShortlinkServer).Resolve(ctx, req.(*ResolveRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var shortlinkServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ShortlinkServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Create",
			Handler:    createHandler,
		},
		{
			MethodName: "Resolve",
			Handler:    resolveHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shortlink.json",
}

// ShortlinkClient is the client API for the Shortlink service.
type ShortlinkClient interface {
	Create(ctx context.Context, in *CreateRequest, opts ...grpc.CallOption) (*CreateResponse, error)
	Resolve(ctx context.Context, in *ResolveRequest, opts ...grpc.CallOption) (*ResolveResponse, error)
}

type shortlinkClient struct {
	cc grpc.ClientConnInterface
}

// NewShortlinkClient returns a client that always speaks JSONCodec.
func NewShortlinkClient(cc grpc.ClientConnInterface) ShortlinkClient {
	return &shortlinkClient{cc: cc}
}

func (c *shortlinkClient) Create(ctx context.Context, in *CreateRequest, opts ...grpc.CallOption) (*CreateResponse, error) {
	out := new(CreateResponse)
	if err := c.cc.Invoke(ctx, CreateMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *shortlinkClient) Resolve(ctx context.Context, in *ResolveRequest, opts ...grpc.CallOption) (*ResolveResponse, error) {
	out := new(ResolveResponse)
	if err := c.cc.Invoke(ctx, ResolveMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.ForceCodec(JSONCodec{})}, opts...)
}
