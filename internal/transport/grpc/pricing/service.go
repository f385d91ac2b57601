package pricing

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "pricing.v1.PricingService"

// Full method names.
const (
	MethodPreviewPrice          = "/" + ServiceName + "/PreviewPrice"
	MethodValidatePromo         = "/" + ServiceName + "/ValidatePromo"
	MethodListPlanOptions       = "/" + ServiceName + "/ListPlanOptions"
	MethodLockQuote             = "/" + ServiceName + "/LockQuote"
	MethodGetQuote              = "/" + ServiceName + "/GetQuote"
	MethodConsumeQuote          = "/" + ServiceName + "/ConsumeQuote"
	MethodDetectPaymentProvider = "/" + ServiceName + "/DetectPaymentProvider"
)

// PricingServiceServer is the server API of pricing.v1.PricingService.
type PricingServiceServer interface {
	PreviewPrice(context.Context, *PriceRequest) (*PriceReply, error)
	ValidatePromo(context.Context, *ValidatePromoRequest) (*ValidatePromoReply, error)
	ListPlanOptions(context.Context, *ListPlanOptionsRequest) (*ListPlanOptionsReply, error)
	LockQuote(context.Context, *PriceRequest) (*QuoteReply, error)
	GetQuote(context.Context, *GetQuoteRequest) (*QuoteReply, error)
	ConsumeQuote(context.Context, *ConsumeQuoteRequest) (*QuoteReply, error)
	DetectPaymentProvider(context.Context, *DetectPaymentProviderRequest) (*DetectPaymentProviderReply, error)
}

// RegisterPricingServiceServer registers srv on s.
func RegisterPricingServiceServer(s grpc.ServiceRegistrar, srv PricingServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc describes pricing.v1.PricingService. Messages are JSON encoded, see CodecName.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PricingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "PreviewPrice", Handler: unary(MethodPreviewPrice, PricingServiceServer.PreviewPrice)},
		{MethodName: "ValidatePromo", Handler: unary(MethodValidatePromo, PricingServiceServer.ValidatePromo)},
		{MethodName: "ListPlanOptions", Handler: unary(MethodListPlanOptions, PricingServiceServer.ListPlanOptions)},
		{MethodName: "LockQuote", Handler: unary(MethodLockQuote, PricingServiceServer.LockQuote)},
		{MethodName: "GetQuote", Handler: unary(MethodGetQuote, PricingServiceServer.GetQuote)},
		{MethodName: "ConsumeQuote", Handler: unary(MethodConsumeQuote, PricingServiceServer.ConsumeQuote)},
		{MethodName: "DetectPaymentProvider", Handler: unary(MethodDetectPaymentProvider, PricingServiceServer.DetectPaymentProvider)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pricing/v1/pricing.proto",
}

// unary adapts a typed server method to a grpc.MethodDesc handler, running interceptors.
func unary[Req any, Reply any](
	fullMethod string,
	call func(PricingServiceServer, context.Context, *Req) (*Reply, error),
) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PricingServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(PricingServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// PricingServiceClient is the client API of pricing.v1.PricingService.
type PricingServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewPricingServiceClient creates a client over cc. Every call is sent with the JSON codec.
func NewPricingServiceClient(cc grpc.ClientConnInterface) *PricingServiceClient {
	return &PricingServiceClient{cc: cc}
}

func invoke[Reply any](ctx context.Context, cc grpc.ClientConnInterface, method string, in interface{}, opts []grpc.CallOption) (*Reply, error) {
	out := new(Reply)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PricingServiceClient) PreviewPrice(ctx context.Context, in *PriceRequest, opts ...grpc.CallOption) (*PriceReply, error) {
	return invoke[PriceReply](ctx, c.cc, MethodPreviewPrice, in, opts)
}

func (c *PricingServiceClient) ValidatePromo(ctx context.Context, in *ValidatePromoRequest, opts ...grpc.CallOption) (*ValidatePromoReply, error) {
	return invoke[ValidatePromoReply](ctx, c.cc, MethodValidatePromo, in, opts)
}

func (c *PricingServiceClient) ListPlanOptions(ctx context.Context, in *ListPlanOptionsRequest, opts ...grpc.CallOption) (*ListPlanOptionsReply, error) {
	return invoke[ListPlanOptionsReply](ctx, c.cc, MethodListPlanOptions, in, opts)
}

func (c *PricingServiceClient) LockQuote(ctx context.Context, in *PriceRequest, opts ...grpc.CallOption) (*QuoteReply, error) {
	return invoke[QuoteReply](ctx, c.cc, MethodLockQuote, in, opts)
}

func (c *PricingServiceClient) GetQuote(ctx context.Context, in *GetQuoteRequest, opts ...grpc.CallOption) (*QuoteReply, error) {
	return invoke[QuoteReply](ctx, c.cc, MethodGetQuote, in, opts)
}

func (c *PricingServiceClient) ConsumeQuote(ctx context.Context, in *ConsumeQuoteRequest, opts ...grpc.CallOption) (*QuoteReply, error) {
	return invoke[QuoteReply](ctx, c.cc, MethodConsumeQuote, in, opts)
}

func (c *PricingServiceClient) DetectPaymentProvider(ctx context.Context, in *DetectPaymentProviderRequest, opts ...grpc.CallOption) (*DetectPaymentProviderReply, error) {
	return invoke[DetectPaymentProviderReply](ctx, c.cc, MethodDetectPaymentProvider, in, opts)
}
