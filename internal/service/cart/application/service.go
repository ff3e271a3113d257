package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"shopcart/internal/pkg/logger"
	"shopcart/internal/pkg/tracing"
	"shopcart/internal/service/cart/domain"
	"shopcart/internal/service/cart/domain/port"
	promodomain "shopcart/internal/service/promotion/domain"
)

// CartService 是购物车用例的应用服务
type CartService struct {
	repo      domain.CartRepository
	products  port.ProductFinder
	customers port.CustomerFinder
	pricing   port.PriceCalculator
	events    port.EventPublisher
	tracer    trace.Tracer
}

func NewCartService(
	repo domain.CartRepository,
	products port.ProductFinder,
	customers port.CustomerFinder,
	pricing port.PriceCalculator,
	events port.EventPublisher,
	tracer trace.Tracer,
) *CartService {
	return &CartService{
		repo:      repo,
		products:  products,
		customers: customers,
		pricing:   pricing,
		events:    events,
		tracer:    tracer,
	}
}

// AddItem 把商品加入购物车。cartID 为空时新建购物车；同一商品已在车内时累加数量。
func (s *CartService) AddItem(ctx context.Context, req *AddItemRequest, cartID string) (*domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.AddItem")
	defer span.End()
	span.SetAttributes(
		attribute.String("cart.id", cartID),
		attribute.String("product.id", req.ProductID),
		attribute.Int("item.quantity", req.Quantity),
	)

	// 1. 指定了购物车则必须存在
	var cart *domain.Cart
	if cartID != "" {
		found, err := s.repo.FindByID(ctx, cartID)
		if err != nil {
			return nil, s.fail(span, err)
		}
		cart = found
	}

	// 2. 商品必须存在，先于建车检查，避免留下空车
	product, err := s.products.FindProduct(ctx, req.ProductID)
	if err != nil {
		return nil, s.fail(span, err)
	}

	// 3. 新建购物车
	if cart == nil {
		cart = &domain.Cart{ID: uuid.NewString()}
		if err := s.repo.Create(ctx, cart); err != nil {
			return nil, s.fail(span, err)
		}
		span.AddEvent("cart created", trace.WithAttributes(attribute.String("cart.id", cart.ID)))
	}

	// 4. 累加或新增行
	item := cart.FindItemByProduct(product.ID)
	if item != nil {
		if err := item.AddQuantity(req.Quantity); err != nil {
			return nil, s.fail(span, err)
		}
	} else {
		item = &domain.CartItem{
			ID:       uuid.NewString(),
			CartID:   cart.ID,
			Product:  *product,
			Quantity: req.Quantity,
		}
	}
	if err := s.repo.SaveItem(ctx, item); err != nil {
		return nil, s.fail(span, err)
	}

	// 5. 发布事件，失败不影响主流程
	s.publish(ctx, &domain.CartEvent{
		Type:      domain.EventItemAdded,
		CartID:    cart.ID,
		ItemID:    item.ID,
		ProductID: product.ID,
		Quantity:  req.Quantity,
	})

	return s.repo.FindByID(ctx, cart.ID)
}

// RemoveItem 删除购物车中的一行，行必须属于该购物车
func (s *CartService) RemoveItem(ctx context.Context, cartID, itemID string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.RemoveItem")
	defer span.End()
	span.SetAttributes(attribute.String("cart.id", cartID), attribute.String("cart.item_id", itemID))

	item, err := s.repo.FindItem(ctx, cartID, itemID)
	if err != nil {
		return "", s.fail(span, err)
	}
	if err := s.repo.DeleteItem(ctx, item.ID); err != nil {
		return "", s.fail(span, err)
	}

	s.publish(ctx, &domain.CartEvent{
		Type:      domain.EventItemRemoved,
		CartID:    cartID,
		ItemID:    itemID,
		ProductID: item.Product.ID,
		Quantity:  item.Quantity,
	})
	return fmt.Sprintf("Item %s removed from cart %s.", itemID, cartID), nil
}

func (s *CartService) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.GetCart")
	defer span.End()

	cart, err := s.repo.FindByID(ctx, cartID)
	if err != nil {
		return nil, s.fail(span, err)
	}
	return cart, nil
}

// GetAllCarts 返回所有购物车，一个都没有时返回 ErrNoCarts
func (s *CartService) GetAllCarts(ctx context.Context) ([]domain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.GetAllCarts")
	defer span.End()

	carts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.fail(span, err)
	}
	if len(carts) == 0 {
		return nil, domain.ErrNoCarts
	}
	return carts, nil
}

// GetCartTotal 计算购物车对指定用户的最优价格。购物车未归属该用户时先改归属。
func (s *CartService) GetCartTotal(ctx context.Context, cartID, userID string) (promodomain.PriceBreakdown, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.GetCartTotal")
	defer span.End()
	span.SetAttributes(attribute.String("cart.id", cartID), attribute.String("user.id", userID))

	// 1. 加载购物车和用户
	cart, err := s.repo.FindByID(ctx, cartID)
	if err != nil {
		return promodomain.PriceBreakdown{}, s.fail(span, err)
	}
	customer, err := s.customers.FindCustomer(ctx, userID)
	if err != nil {
		return promodomain.PriceBreakdown{}, s.fail(span, err)
	}

	// 2. 归属到当前用户
	if cart.UserID != customer.ID {
		if err := s.repo.AssignUser(ctx, cart.ID, customer.ID); err != nil {
			return promodomain.PriceBreakdown{}, s.fail(span, err)
		}
		span.AddEvent("cart assigned to user")
	}

	// 3. 计价
	return s.pricing.CalculateBestPrice(ctx, customer.Tier, cart.LineItems()), nil
}

// CreateForUser 为新注册的用户创建一个空购物车
func (s *CartService) CreateForUser(ctx context.Context, userID string) error {
	ctx, span := s.tracer.Start(ctx, "CartService.CreateForUser")
	defer span.End()

	cart := &domain.Cart{ID: uuid.NewString(), UserID: userID}
	if err := s.repo.Create(ctx, cart); err != nil {
		return s.fail(span, err)
	}
	return nil
}

func (s *CartService) publish(ctx context.Context, event *domain.CartEvent) {
	event.EventID = uuid.NewString()
	event.TraceID = tracing.GetTraceIDFromContext(ctx)
	event.OccurredAt = time.Now().UTC()
	if err := s.events.Publish(ctx, event); err != nil {
		logger.Ctx(ctx).Error().Err(err).
			Str("event_type", event.Type).
			Str("cart_id", event.CartID).
			Msg("failed to publish cart event")
	}
}

// fail 记录非业务类错误到 span 后原样返回
func (s *CartService) fail(span trace.Span, err error) error {
	if !isNotFound(err) {
		span.RecordError(err)
	}
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrCartNotFound) ||
		errors.Is(err, domain.ErrCartItemNotFound) ||
		errors.Is(err, domain.ErrNoCarts)
}
