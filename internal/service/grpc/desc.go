package grpcsvc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName — полное имя gRPC-сервиса витрины.
const ServiceName = "storefront.v1.Storefront"

// ProtoFile — путь proto-файла с описанием сервиса.
const ProtoFile = "storefront/v1/storefront.proto"

// Имена методов сервиса.
const (
	MethodListProducts  = "ListProducts"
	MethodGetProduct    = "GetProduct"
	MethodCreateProduct = "CreateProduct"
	MethodEditProduct   = "EditProduct"
	MethodDeleteProduct = "DeleteProduct"
	MethodListOrders    = "ListOrders"
	MethodGetOrder      = "GetOrder"
	MethodCreateOrder   = "CreateOrder"
	MethodEditOrder     = "EditOrder"
	MethodDeleteOrder   = "DeleteOrder"
)

// StorefrontServer — серверная сторона сервиса. Запросы и ответы передаются как
// google.protobuf.Struct с теми же JSON-формами, что и в HTTP API.
type StorefrontServer interface {
	ListProducts(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetProduct(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateProduct(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EditProduct(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteProduct(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListOrders(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetOrder(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateOrder(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EditOrder(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteOrder(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(StorefrontServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// ServiceDesc описывает сервис для grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StorefrontServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: MethodListProducts, Handler: unaryHandler(MethodListProducts, StorefrontServer.ListProducts)},
		{MethodName: MethodGetProduct, Handler: unaryHandler(MethodGetProduct, StorefrontServer.GetProduct)},
		{MethodName: MethodCreateProduct, Handler: unaryHandler(MethodCreateProduct, StorefrontServer.CreateProduct)},
		{MethodName: MethodEditProduct, Handler: unaryHandler(MethodEditProduct, StorefrontServer.EditProduct)},
		{MethodName: MethodDeleteProduct, Handler: unaryHandler(MethodDeleteProduct, StorefrontServer.DeleteProduct)},
		{MethodName: MethodListOrders, Handler: unaryHandler(MethodListOrders, StorefrontServer.ListOrders)},
		{MethodName: MethodGetOrder, Handler: unaryHandler(MethodGetOrder, StorefrontServer.GetOrder)},
		{MethodName: MethodCreateOrder, Handler: unaryHandler(MethodCreateOrder, StorefrontServer.CreateOrder)},
		{MethodName: MethodEditOrder, Handler: unaryHandler(MethodEditOrder, StorefrontServer.EditOrder)},
		{MethodName: MethodDeleteOrder, Handler: unaryHandler(MethodDeleteOrder, StorefrontServer.DeleteOrder)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: ProtoFile,
}

// RegisterStorefrontServer регистрирует реализацию сервиса.
func RegisterStorefrontServer(registrar grpc.ServiceRegistrar, srv StorefrontServer) {
	registrar.RegisterService(&ServiceDesc, srv)
}

func unaryHandler(method string, call unaryMethod) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	fullMethod := FullMethod(method)
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(StorefrontServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(StorefrontServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// FullMethod возвращает путь метода в формате /package.Service/Method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// Client вызывает методы сервиса по имени.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call выполняет унарный вызов method с телом in.
func (c *Client) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
