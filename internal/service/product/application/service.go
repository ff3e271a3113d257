package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"shopcart/internal/pkg/logger"
	"shopcart/internal/service/product/domain"
)

// ProductService 负责商品查询和目录初始化
type ProductService struct {
	repo   domain.ProductRepository
	cache  domain.ProductCache
	locker domain.Locker
	tracer trace.Tracer
	group  singleflight.Group
}

func NewProductService(repo domain.ProductRepository, cache domain.ProductCache, locker domain.Locker, tracer trace.Tracer) *ProductService {
	return &ProductService{
		repo:   repo,
		cache:  cache,
		locker: locker,
		tracer: tracer,
	}
}

// FindAll 返回全部商品
func (s *ProductService) FindAll(ctx context.Context) ([]domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.FindAll")
	defer span.End()

	products, err := s.repo.FindAll(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("product.count", len(products)))
	return products, nil
}

// FindOne 先查缓存，未命中时回源数据库。并发的同 id 未命中只回源一次
func (s *ProductService) FindOne(ctx context.Context, id string) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.FindOne")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", id))

	// 1. 查缓存，缓存故障只降级不报错
	if p, ok, err := s.cache.Get(ctx, id); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("product_id", id).Msg("product cache read failed")
	} else if ok {
		span.AddEvent("cache hit")
		return p, nil
	}

	// 2. 回源
	v, err, shared := s.group.Do(id, func() (any, error) {
		p, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, p); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Str("product_id", id).Msg("product cache write failed")
		}
		return p, nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrProductNotFound) {
			span.RecordError(err)
		}
		return nil, err
	}
	span.SetAttributes(attribute.Bool("singleflight.shared", shared))

	p := *v.(*domain.Product)
	return &p, nil
}

// SeedCatalog 在商品表为空时写入默认目录，返回写入的条数。
// 多个实例同时启动时由分布式锁保证只有一个实例写入。
func (s *ProductService) SeedCatalog(ctx context.Context) (int, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.SeedCatalog")
	defer span.End()

	// 1. 获取锁
	if err := s.locker.Lock(ctx); err != nil {
		span.RecordError(err)
		return 0, errors.Wrap(err, "acquire catalog lock")
	}
	defer func() {
		if err := s.locker.Unlock(); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Msg("release catalog lock failed")
		}
	}()

	// 2. 已有数据则跳过
	count, err := s.repo.Count(ctx)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	if count > 0 {
		span.AddEvent("catalog already seeded")
		return 0, nil
	}

	// 3. 写入默认目录
	catalog := domain.DefaultCatalog()
	for i := range catalog {
		catalog[i].ID = uuid.NewString()
	}
	if err := s.repo.CreateBatch(ctx, catalog); err != nil {
		span.RecordError(err)
		return 0, err
	}

	logger.Ctx(ctx).Info().Int("count", len(catalog)).Msg("product catalog seeded")
	return len(catalog), nil
}
