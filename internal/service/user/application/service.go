package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"shopcart/internal/pkg/logger"
	promodomain "shopcart/internal/service/promotion/domain"
	"shopcart/internal/service/user/domain"
)

type UserService struct {
	repo   domain.UserRepository
	carts  domain.CartCreator
	tracer trace.Tracer
}

func NewUserService(repo domain.UserRepository, carts domain.CartCreator, tracer trace.Tracer) *UserService {
	return &UserService{repo: repo, carts: carts, tracer: tracer}
}

// Create 保存用户并为其创建一个空购物车，返回重新读取的用户
func (s *UserService) Create(ctx context.Context, req *CreateUserRequest) (*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Create")
	defer span.End()

	tier, ok := promodomain.ParseUserTier(req.Type)
	if !ok {
		tier = promodomain.TierCommon
	}
	user := &domain.User{ID: uuid.NewString(), Name: req.Name, Tier: tier}
	span.SetAttributes(attribute.String("user.id", user.ID), attribute.String("user.tier", tier.String()))

	// 1. 保存用户
	if err := s.repo.Create(ctx, user); err != nil {
		span.RecordError(err)
		return nil, err
	}

	// 2. 开购物车
	if err := s.carts.CreateForUser(ctx, user.ID); err != nil {
		span.RecordError(err)
		return nil, errors.Wrapf(err, "create cart for user %s", user.ID)
	}

	logger.Ctx(ctx).Info().Str("user_id", user.ID).Str("tier", tier.String()).Msg("user created")
	return s.FindOne(ctx, user.ID)
}

func (s *UserService) FindOne(ctx context.Context, id string) (*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.FindOne")
	defer span.End()

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			span.RecordError(err)
		}
		return nil, err
	}
	return user, nil
}
