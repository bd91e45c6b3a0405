package grpcsvc_test

import (
	"context"
	"net"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/catalog"
	grpcsvc "github.com/vladislavdragonenkov/storefront/internal/service/grpc"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

const bufSize = 1024 * 1024

func newTestServer(t *testing.T, products catalog.ProductService, orders catalog.OrderService) *grpcsvc.Client {
	t.Helper()

	listener := bufconn.Listen(bufSize)
	logger := loggerForTests()
	service := grpcsvc.NewStorefrontService(products, orders, logger)

	server := grpc.NewServer()
	grpcsvc.RegisterStorefrontServer(server, service)

	go func() {
		if err := server.Serve(listener); err != nil {
			logger.WithError(err).Error("grpc serve failed")
		}
	}()

	dialer := func(context.Context, string) (net.Conn, error) {
		return listener.Dial()
	}

	//nolint:staticcheck // grpc.Dial is required for bufconn testing
	conn, err := grpc.Dial("bufnet", grpc.WithContextDialer(dialer), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		server.Stop()
	})
	return grpcsvc.NewClient(conn)
}

func newMemoryServer(t *testing.T) *grpcsvc.Client {
	t.Helper()
	deps := catalog.Deps{Logger: loggerForTests()}
	products := catalog.NewProductStore(memory.NewProductRepository(), deps)
	orders := catalog.NewOrderStore(memory.NewOrderRepository(), products, deps)
	return newTestServer(t, products, orders)
}

func loggerForTests() *logrus.Entry {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: false, DisableTimestamp: true})
	logger.SetLevel(logrus.DebugLevel)
	return logger.WithField("component", "test")
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

func TestStorefrontService_OrderFlow(t *testing.T) {
	client := newMemoryServer(t)
	ctx := context.Background()

	product, err := client.Call(ctx, grpcsvc.MethodCreateProduct, mustStruct(t, map[string]any{
		"name":       "Poster",
		"priceMinor": 1500,
		"tags":       []any{"art"},
	}))
	require.NoError(t, err)
	productID := product.AsMap()["id"].(string)
	require.NotEmpty(t, productID)
	require.Equal(t, "USD", product.AsMap()["currency"])

	order, err := client.Call(ctx, grpcsvc.MethodCreateOrder, mustStruct(t, map[string]any{
		"buyerEmail": "a@b.com",
		"products":   []any{productID},
	}))
	require.NoError(t, err)
	orderMap := order.AsMap()
	require.Equal(t, "CREATED", orderMap["status"])
	orderID := orderMap["id"].(string)
	resolved := orderMap["products"].([]any)
	require.Len(t, resolved, 1)
	require.Equal(t, productID, resolved[0].(map[string]any)["id"])

	edited, err := client.Call(ctx, grpcsvc.MethodEditOrder, mustStruct(t, map[string]any{
		"id":     orderID,
		"status": "COMPLETED",
	}))
	require.NoError(t, err)
	require.Equal(t, "COMPLETED", edited.AsMap()["status"])

	deleted, err := client.Call(ctx, grpcsvc.MethodDeleteProduct, mustStruct(t, map[string]any{"id": productID}))
	require.NoError(t, err)
	require.Equal(t, true, deleted.AsMap()["deleted"])

	got, err := client.Call(ctx, grpcsvc.MethodGetOrder, mustStruct(t, map[string]any{"id": orderID}))
	require.NoError(t, err)
	require.Equal(t, []any{nil}, got.AsMap()["products"])

	list, err := client.Call(ctx, grpcsvc.MethodListOrders, mustStruct(t, map[string]any{
		"status": "COMPLETED",
		"limit":  1,
	}))
	require.NoError(t, err)
	items := list.AsMap()["items"].([]any)
	require.Len(t, items, 1)
	require.Equal(t, []any{productID}, items[0].(map[string]any)["products"])
}

func TestStorefrontService_ListProducts(t *testing.T) {
	client := newMemoryServer(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		_, err := client.Call(ctx, grpcsvc.MethodCreateProduct, mustStruct(t, map[string]any{"name": name}))
		require.NoError(t, err)
	}

	page, err := client.Call(ctx, grpcsvc.MethodListProducts, mustStruct(t, map[string]any{"offset": 1, "limit": 5}))
	require.NoError(t, err)
	require.Len(t, page.AsMap()["items"].([]any), 2)

	empty, err := client.Call(ctx, grpcsvc.MethodListProducts, &structpb.Struct{})
	require.NoError(t, err)
	require.Len(t, empty.AsMap()["items"].([]any), 3)
}

func TestStorefrontService_ErrorCodes(t *testing.T) {
	client := newMemoryServer(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		method string
		req    map[string]any
		code   codes.Code
	}{
		{"missing id", grpcsvc.MethodGetProduct, map[string]any{}, codes.InvalidArgument},
		{"unknown product", grpcsvc.MethodGetProduct, map[string]any{"id": "nope"}, codes.NotFound},
		{"unknown order", grpcsvc.MethodEditOrder, map[string]any{"id": "nope", "status": "PENDING"}, codes.NotFound},
		{"invalid status", grpcsvc.MethodCreateOrder, map[string]any{"buyerEmail": "a@b.com", "status": "SHIPPED"}, codes.InvalidArgument},
		{"missing email", grpcsvc.MethodCreateOrder, map[string]any{}, codes.InvalidArgument},
		{"negative limit", grpcsvc.MethodListOrders, map[string]any{"limit": -1}, codes.InvalidArgument},
		{"fractional offset", grpcsvc.MethodListProducts, map[string]any{"offset": 1.5}, codes.InvalidArgument},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := client.Call(ctx, tc.method, mustStruct(t, tc.req))
			require.Error(t, err)
			require.Equal(t, tc.code, status.Code(err))
		})
	}
}

type unavailableOrders struct {
	catalog.OrderService
}

func (unavailableOrders) Get(context.Context, string) (domain.OrderView, error) {
	return domain.OrderView{}, domain.ErrStoreUnavailable
}

func TestStorefrontService_StoreUnavailable(t *testing.T) {
	client := newTestServer(t, nil, unavailableOrders{})

	_, err := client.Call(context.Background(), grpcsvc.MethodGetOrder, mustStruct(t, map[string]any{"id": "o1"}))
	require.Equal(t, codes.Unavailable, status.Code(err))
}

func TestServiceDescMethods(t *testing.T) {
	require.Equal(t, grpcsvc.ServiceName, grpcsvc.ServiceDesc.ServiceName)
	require.Len(t, grpcsvc.ServiceDesc.Methods, 10)
	require.Equal(t, "/storefront.v1.Storefront/GetOrder", grpcsvc.FullMethod(grpcsvc.MethodGetOrder))
}
