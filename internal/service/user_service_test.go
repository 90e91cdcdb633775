package service

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bandoxanh-be/internal/entity"
	"bandoxanh-be/internal/repository/contract"
	"bandoxanh-be/internal/repository/specification"
	"bandoxanh-be/internal/repository/unitofwork"
)

type fakeUserRepo struct {
	contract.UserRepository
	users map[uuid.UUID]*entity.User
}

func (f *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	if id, ok := specId(specs); ok {
		return f.users[id], nil
	}
	return nil, nil
}

type fakeFollowRepo struct {
	contract.FollowRepository
	follows      map[uuid.UUID]*entity.Follow
	beforeCreate func(*entity.Follow) error
}

func specFollowPair(specs []specification.Specification) (follower, followee uuid.UUID) {
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByFollower:
			follower = v.FollowerId
		case specification.ByFollowee:
			followee = v.FolloweeId
		}
	}
	return
}

func (f *fakeFollowRepo) Create(ctx context.Context, follow *entity.Follow) error {
	if f.beforeCreate != nil {
		if err := f.beforeCreate(follow); err != nil {
			return err
		}
	}
	f.follows[follow.Id] = follow
	return nil
}

func (f *fakeFollowRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.follows, id)
	return nil
}

func (f *fakeFollowRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Follow, error) {
	follower, followee := specFollowPair(specs)
	for _, fl := range f.follows {
		if fl.FollowerId == follower && fl.FolloweeId == followee {
			return fl, nil
		}
	}
	return nil, nil
}

func (f *fakeFollowRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	follower, followee := specFollowPair(specs)
	var n int64
	for _, fl := range f.follows {
		if follower != uuid.Nil && fl.FollowerId != follower {
			continue
		}
		if followee != uuid.Nil && fl.FolloweeId != followee {
			continue
		}
		n++
	}
	return n, nil
}

type followUow struct {
	unitofwork.UnitOfWork
	users   *fakeUserRepo
	follows *fakeFollowRepo
}

func (f *followUow) UserRepository() contract.UserRepository     { return f.users }
func (f *followUow) FollowRepository() contract.FollowRepository { return f.follows }

type followUowFactory struct {
	uow *followUow
}

func (f *followUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newFollowFixture(users ...*entity.User) (*userService, *followUow) {
	repo := &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
	for _, u := range users {
		repo.users[u.Id] = u
	}
	uow := &followUow{
		users:   repo,
		follows: &fakeFollowRepo{follows: map[uuid.UUID]*entity.Follow{}},
	}
	svc := &userService{uowFactory: &followUowFactory{uow: uow}}
	return svc, uow
}

func TestToggleFollow_SelfFollowRejected(t *testing.T) {
	me := &entity.User{Id: uuid.New(), FullName: "Minh"}
	svc, _ := newFollowFixture(me)

	_, err := svc.ToggleFollow(context.Background(), me.Id, me.Id)
	require.Error(t, err)

	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
}

func TestToggleFollow_UnknownFollowee(t *testing.T) {
	me := &entity.User{Id: uuid.New()}
	svc, _ := newFollowFixture(me)

	_, err := svc.ToggleFollow(context.Background(), me.Id, uuid.New())
	require.Error(t, err)

	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusNotFound, fiberErr.Code)
}

func TestToggleFollow_ConvergesOnRepeat(t *testing.T) {
	me := &entity.User{Id: uuid.New(), FullName: "Minh"}
	them := &entity.User{Id: uuid.New(), FullName: "Lan"}
	svc, uow := newFollowFixture(me, them)

	res, err := svc.ToggleFollow(context.Background(), me.Id, them.Id)
	require.NoError(t, err)
	assert.True(t, res.Following)
	assert.Equal(t, int64(1), res.FollowerCount)

	// Second call removes the edge again.
	res, err = svc.ToggleFollow(context.Background(), me.Id, them.Id)
	require.NoError(t, err)
	assert.False(t, res.Following)
	assert.Zero(t, res.FollowerCount)
	assert.Empty(t, uow.follows.follows)
}

func TestToggleFollow_ConcurrentDuplicateKeyConverges(t *testing.T) {
	me := &entity.User{Id: uuid.New(), FullName: "Minh"}
	them := &entity.User{Id: uuid.New(), FullName: "Lan"}
	svc, uow := newFollowFixture(me, them)

	// A racing request creates the edge between the existence check and the
	// insert; the loser sees a unique-index violation.
	uow.follows.beforeCreate = func(fl *entity.Follow) error {
		uow.follows.beforeCreate = nil
		winner := &entity.Follow{Id: uuid.New(), FollowerId: fl.FollowerId, FolloweeId: fl.FolloweeId}
		uow.follows.follows[winner.Id] = winner
		return gorm.ErrDuplicatedKey
	}

	res, err := svc.ToggleFollow(context.Background(), me.Id, them.Id)
	require.NoError(t, err)
	assert.True(t, res.Following)
	assert.Equal(t, int64(1), res.FollowerCount)
	assert.Len(t, uow.follows.follows, 1)
}

func TestUnfollow_IdempotentAndRemovesEdge(t *testing.T) {
	me := &entity.User{Id: uuid.New(), FullName: "Minh"}
	them := &entity.User{Id: uuid.New(), FullName: "Lan"}
	svc, uow := newFollowFixture(me, them)

	_, err := svc.ToggleFollow(context.Background(), me.Id, them.Id)
	require.NoError(t, err)

	res, err := svc.Unfollow(context.Background(), me.Id, them.Id)
	require.NoError(t, err)
	assert.False(t, res.Following)
	assert.Zero(t, res.FollowerCount)
	assert.Empty(t, uow.follows.follows)

	// Unfollowing again is a no-op, not an error.
	res, err = svc.Unfollow(context.Background(), me.Id, them.Id)
	require.NoError(t, err)
	assert.False(t, res.Following)
}

func TestToggleFollow_DirectionalEdges(t *testing.T) {
	a := &entity.User{Id: uuid.New(), FullName: "An"}
	b := &entity.User{Id: uuid.New(), FullName: "Bình"}
	svc, _ := newFollowFixture(a, b)

	// A follows B, then B follows A back. Both edges exist independently.
	_, err := svc.ToggleFollow(context.Background(), a.Id, b.Id)
	require.NoError(t, err)
	res, err := svc.ToggleFollow(context.Background(), b.Id, a.Id)
	require.NoError(t, err)
	assert.True(t, res.Following)
	assert.Equal(t, int64(1), res.FollowerCount)
}
