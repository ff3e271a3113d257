// cmd/shop-service/main.go
package main

import (
	"context"
	"time"

	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"

	"shopcart/internal/pkg/bootstrap"
	"shopcart/internal/pkg/config"
	"shopcart/internal/pkg/database"
	"shopcart/internal/pkg/mq"
	"shopcart/internal/pkg/redis"
	cartapp "shopcart/internal/service/cart/application"
	"shopcart/internal/service/cart/domain/port"
	cartinfra "shopcart/internal/service/cart/infrastructure"
	"shopcart/internal/service/cart/infrastructure/adapter"
	cartif "shopcart/internal/service/cart/interfaces"
	productapp "shopcart/internal/service/product/application"
	productdomain "shopcart/internal/service/product/domain"
	productinfra "shopcart/internal/service/product/infrastructure"
	productif "shopcart/internal/service/product/interfaces"
	promoapp "shopcart/internal/service/promotion/application"
	promoif "shopcart/internal/service/promotion/interfaces"
	userapp "shopcart/internal/service/user/application"
	userinfra "shopcart/internal/service/user/infrastructure"
	userif "shopcart/internal/service/user/interfaces"
	"shopcart/internal/zookeeper"
)

const (
	serviceName     = "shop-service"
	catalogLockName = "catalog-seed"
	seedTimeout     = 30 * time.Second
)

// main 是应用的组装根：加载配置，组装依赖，然后交给 bootstrap 运行
func main() {
	if _, err := bootstrap.Init(); err != nil {
		zlog.Fatal().Err(err).Msg("failed to initialize")
	}
	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName:      serviceName,
		RegisterHandlers: registerHandlers,
	})
}

func registerHandlers(appCtx bootstrap.AppCtx) error {
	cfg := appCtx.Config

	// 1. 数据库
	db, err := database.Open(cfg.Infra.Database)
	if err != nil {
		return err
	}
	appCtx.OnShutdown("database", func(context.Context) error { return database.Close(db) })
	if err := database.Migrate(db,
		&productinfra.ProductModel{},
		&userinfra.UserModel{},
		&cartinfra.CartModel{},
		&cartinfra.CartItemModel{},
	); err != nil {
		return err
	}

	// 2. 可选中间件，未配置时使用进程内实现
	cache, err := newProductCache(appCtx)
	if err != nil {
		return err
	}
	locker, err := newCatalogLocker(appCtx)
	if err != nil {
		return err
	}
	publisher := newCartEventPublisher(appCtx)

	// 3. 应用服务
	productSvc := productapp.NewProductService(productinfra.NewGormProductRepository(db), cache, locker, appCtx.Tracer)
	promotionSvc := promoapp.NewPromotionService(appCtx.Tracer, appCtx.Metrics)
	userRepo := userinfra.NewGormUserRepository(db)
	cartSvc := cartapp.NewCartService(
		cartinfra.NewGormCartRepository(db),
		adapter.NewProductAdapter(productSvc),
		adapter.NewCustomerAdapter(userRepo),
		promotionSvc,
		publisher,
		appCtx.Tracer,
	)
	userSvc := userapp.NewUserService(userRepo, cartSvc, appCtx.Tracer)

	// 4. 初始目录
	if cfg.App.SeedCatalog {
		ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
		defer cancel()
		if _, err := productSvc.SeedCatalog(ctx); err != nil {
			return errors.Wrap(err, "seed catalog")
		}
	}

	// 5. 路由
	productif.NewProductHandler(productSvc).RegisterRoutes(appCtx.Mux)
	userif.NewUserHandler(userSvc).RegisterRoutes(appCtx.Mux)
	cartif.NewCartHandler(cartSvc).RegisterRoutes(appCtx.Mux)
	promoif.NewPromotionHandler(promotionSvc).RegisterRoutes(appCtx.Mux)
	return nil
}

func newProductCache(appCtx bootstrap.AppCtx) (productdomain.ProductCache, error) {
	redisCfg := appCtx.Config.Infra.Redis
	addrs := config.SplitList(redisCfg.Addrs)
	if len(addrs) == 0 {
		return productinfra.NewMemoryProductCache(redisCfg.TTL), nil
	}
	client, err := redis.NewClient(addrs)
	if err != nil {
		return nil, err
	}
	appCtx.OnShutdown("redis", func(context.Context) error { return client.Close() })
	return productinfra.NewRedisProductCache(client, redisCfg.TTL), nil
}

func newCatalogLocker(appCtx bootstrap.AppCtx) (productdomain.Locker, error) {
	zkCfg := appCtx.Config.Infra.Zookeeper
	servers := config.SplitList(zkCfg.Servers)
	if len(servers) == 0 {
		return productinfra.NewLocalLock(), nil
	}
	conn, err := zookeeper.Connect(servers, zkCfg.SessionTimeout)
	if err != nil {
		return nil, err
	}
	appCtx.OnShutdown("zookeeper", func(context.Context) error {
		conn.Close()
		return nil
	})
	return zookeeper.NewDistributedLock(conn, catalogLockName)
}

func newCartEventPublisher(appCtx bootstrap.AppCtx) port.EventPublisher {
	kafkaCfg := appCtx.Config.Infra.Kafka
	brokers := config.SplitList(kafkaCfg.Brokers)
	if len(brokers) == 0 {
		return cartinfra.NoopEventPublisher{}
	}
	writer := mq.NewKafkaWriter(brokers, kafkaCfg.CartTopic)
	appCtx.OnShutdown("kafka writer", func(context.Context) error { return writer.Close() })
	return cartinfra.NewCartEventProducer(writer)
}
