// Package grpcsvc реализует gRPC API витрины поверх хранилищ товаров и заказов.
package grpcsvc

import (
	"context"

	log "github.com/sirupsen/logrus"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/vladislavdragonenkov/storefront/internal/service/catalog"
	"github.com/vladislavdragonenkov/storefront/internal/transport/dto"
)

// StorefrontService реализует StorefrontServer.
type StorefrontService struct {
	products catalog.ProductService
	orders   catalog.OrderService
	logger   *log.Entry
}

// NewStorefrontService конструирует сервис с зависимостями.
func NewStorefrontService(products catalog.ProductService, orders catalog.OrderService, logger *log.Entry) *StorefrontService {
	if logger == nil {
		logger = log.New().WithField("component", "storefront-grpc")
	}
	return &StorefrontService{
		products: products,
		orders:   orders,
		logger:   logger,
	}
}

func (s *StorefrontService) ListProducts(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req dto.ListRequest
	if err := decodeStruct(in, &req); err != nil {
		return nil, toStatus(s.logger, MethodListProducts, err)
	}
	products, err := s.products.List(ctx, req.ProductFilter())
	if err != nil {
		return nil, toStatus(s.logger, MethodListProducts, err)
	}
	return s.reply(MethodListProducts, dto.Items[dto.Product]{Items: dto.FromProducts(products)})
}

func (s *StorefrontService) GetProduct(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, err := decodeID(in)
	if err != nil {
		return nil, toStatus(s.logger, MethodGetProduct, err)
	}
	product, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, toStatus(s.logger, MethodGetProduct, err)
	}
	return s.reply(MethodGetProduct, dto.FromProduct(product))
}

func (s *StorefrontService) CreateProduct(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req dto.ProductRequest
	if err := decodeStruct(in, &req); err != nil {
		return nil, toStatus(s.logger, MethodCreateProduct, err)
	}
	product, err := s.products.Create(ctx, req.Input())
	if err != nil {
		return nil, toStatus(s.logger, MethodCreateProduct, err)
	}
	return s.reply(MethodCreateProduct, dto.FromProduct(product))
}

func (s *StorefrontService) EditProduct(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, err := decodeID(in)
	if err != nil {
		return nil, toStatus(s.logger, MethodEditProduct, err)
	}
	var req dto.ProductRequest
	if err := decodeStruct(in, &req); err != nil {
		return nil, toStatus(s.logger, MethodEditProduct, err)
	}
	product, err := s.products.Edit(ctx, id, req.Changes())
	if err != nil {
		return nil, toStatus(s.logger, MethodEditProduct, err)
	}
	return s.reply(MethodEditProduct, dto.FromProduct(product))
}

func (s *StorefrontService) DeleteProduct(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, err := decodeID(in)
	if err != nil {
		return nil, toStatus(s.logger, MethodDeleteProduct, err)
	}
	if err := s.products.Destroy(ctx, id); err != nil {
		return nil, toStatus(s.logger, MethodDeleteProduct, err)
	}
	return s.reply(MethodDeleteProduct, dto.Deleted{Deleted: true})
}

func (s *StorefrontService) ListOrders(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req dto.ListRequest
	if err := decodeStruct(in, &req); err != nil {
		return nil, toStatus(s.logger, MethodListOrders, err)
	}
	filter, err := req.OrderFilter()
	if err != nil {
		return nil, toStatus(s.logger, MethodListOrders, err)
	}
	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, toStatus(s.logger, MethodListOrders, err)
	}
	return s.reply(MethodListOrders, dto.Items[dto.Order]{Items: dto.FromOrders(orders)})
}

func (s *StorefrontService) GetOrder(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, err := decodeID(in)
	if err != nil {
		return nil, toStatus(s.logger, MethodGetOrder, err)
	}
	view, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, toStatus(s.logger, MethodGetOrder, err)
	}
	return s.reply(MethodGetOrder, dto.FromOrderView(view))
}

func (s *StorefrontService) CreateOrder(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req dto.OrderRequest
	if err := decodeStruct(in, &req); err != nil {
		return nil, toStatus(s.logger, MethodCreateOrder, err)
	}
	view, err := s.orders.Create(ctx, req.Input())
	if err != nil {
		return nil, toStatus(s.logger, MethodCreateOrder, err)
	}
	return s.reply(MethodCreateOrder, dto.FromOrderView(view))
}

func (s *StorefrontService) EditOrder(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, err := decodeID(in)
	if err != nil {
		return nil, toStatus(s.logger, MethodEditOrder, err)
	}
	var req dto.OrderRequest
	if err := decodeStruct(in, &req); err != nil {
		return nil, toStatus(s.logger, MethodEditOrder, err)
	}
	view, err := s.orders.Edit(ctx, id, req.Changes())
	if err != nil {
		return nil, toStatus(s.logger, MethodEditOrder, err)
	}
	return s.reply(MethodEditOrder, dto.FromOrderView(view))
}

func (s *StorefrontService) DeleteOrder(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, err := decodeID(in)
	if err != nil {
		return nil, toStatus(s.logger, MethodDeleteOrder, err)
	}
	if err := s.orders.Destroy(ctx, id); err != nil {
		return nil, toStatus(s.logger, MethodDeleteOrder, err)
	}
	return s.reply(MethodDeleteOrder, dto.Deleted{Deleted: true})
}

func (s *StorefrontService) reply(method string, v any) (*structpb.Struct, error) {
	out, err := encodeStruct(v)
	if err != nil {
		return nil, toStatus(s.logger, method, err)
	}
	return out, nil
}

var _ StorefrontServer = (*StorefrontService)(nil)
