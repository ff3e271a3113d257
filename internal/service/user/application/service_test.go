package application

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	promodomain "shopcart/internal/service/promotion/domain"
	"shopcart/internal/service/user/domain"
)

type memRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func (r *memRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = *u
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

type recordingCarts struct {
	owners []string
	err    error
}

func (c *recordingCarts) CreateForUser(_ context.Context, userID string) error {
	if c.err != nil {
		return c.err
	}
	c.owners = append(c.owners, userID)
	return nil
}

func newService(carts domain.CartCreator) *UserService {
	return NewUserService(&memRepo{users: map[string]domain.User{}}, carts, noop.NewTracerProvider().Tracer("test"))
}

func TestUserService_Create(t *testing.T) {
	carts := &recordingCarts{}
	svc := newService(carts)

	user, err := svc.Create(context.Background(), &CreateUserRequest{Name: "Ana", Type: "VIP"})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, promodomain.TierVIP, user.Tier)
	assert.Equal(t, []string{user.ID}, carts.owners)

	found, err := svc.FindOne(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, found)
}

func TestUserService_Create_CartFailure(t *testing.T) {
	svc := newService(&recordingCarts{err: errors.New("db locked")})

	_, err := svc.Create(context.Background(), &CreateUserRequest{Type: "COMMON"})
	assert.ErrorContains(t, err, "create cart for user")
}

func TestUserService_FindOne_NotFound(t *testing.T) {
	svc := newService(&recordingCarts{})

	_, err := svc.FindOne(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
