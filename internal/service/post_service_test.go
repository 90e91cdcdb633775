package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bandoxanh-be/internal/entity"
	"bandoxanh-be/internal/repository/contract"
	"bandoxanh-be/internal/repository/specification"
	"bandoxanh-be/internal/repository/unitofwork"
)

// In-memory repositories backing the feed service tests. Specs are
// interpreted by type switch; only the filters the service actually uses
// are implemented.

func specPostId(specs []specification.Specification) (uuid.UUID, bool) {
	for _, s := range specs {
		if p, ok := s.(specification.ByPost); ok {
			return p.PostId, true
		}
	}
	return uuid.Nil, false
}

func specUserId(specs []specification.Specification) (uuid.UUID, bool) {
	for _, s := range specs {
		if u, ok := s.(specification.ByUser); ok {
			return u.UserId, true
		}
	}
	return uuid.Nil, false
}

func specId(specs []specification.Specification) (uuid.UUID, bool) {
	for _, s := range specs {
		if i, ok := s.(specification.ByID); ok {
			return i.ID, true
		}
	}
	return uuid.Nil, false
}

type fakePostRepo struct {
	contract.PostRepository
	posts      map[uuid.UUID]*entity.Post
	likesCount map[uuid.UUID]int64
}

func (f *fakePostRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Post, error) {
	if id, ok := specId(specs); ok {
		return f.posts[id], nil
	}
	return nil, nil
}

func (f *fakePostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) SetLikesCount(ctx context.Context, id uuid.UUID, count int64) error {
	f.likesCount[id] = count
	return nil
}

type fakeLikeRepo struct {
	contract.LikeRepository
	likes        map[uuid.UUID]*entity.Like
	beforeCreate func(*entity.Like) error
}

func (f *fakeLikeRepo) Create(ctx context.Context, like *entity.Like) error {
	if f.beforeCreate != nil {
		if err := f.beforeCreate(like); err != nil {
			return err
		}
	}
	f.likes[like.Id] = like
	return nil
}

func (f *fakeLikeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.likes, id)
	return nil
}

func (f *fakeLikeRepo) DeleteByPost(ctx context.Context, postId uuid.UUID) error {
	for id, l := range f.likes {
		if l.PostId == postId {
			delete(f.likes, id)
		}
	}
	return nil
}

func (f *fakeLikeRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Like, error) {
	postId, _ := specPostId(specs)
	userId, _ := specUserId(specs)
	for _, l := range f.likes {
		if l.PostId == postId && l.UserId == userId {
			return l, nil
		}
	}
	return nil, nil
}

func (f *fakeLikeRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	postId, _ := specPostId(specs)
	var n int64
	for _, l := range f.likes {
		if l.PostId == postId {
			n++
		}
	}
	return n, nil
}

type fakeReactionRepo struct {
	contract.ReactionRepository
	reactions    map[uuid.UUID]*entity.Reaction
	beforeCreate func(*entity.Reaction) error
}

func (f *fakeReactionRepo) Create(ctx context.Context, r *entity.Reaction) error {
	if f.beforeCreate != nil {
		if err := f.beforeCreate(r); err != nil {
			return err
		}
	}
	f.reactions[r.Id] = r
	return nil
}

func (f *fakeReactionRepo) Update(ctx context.Context, r *entity.Reaction) error {
	f.reactions[r.Id] = r
	return nil
}

func (f *fakeReactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.reactions, id)
	return nil
}

func (f *fakeReactionRepo) DeleteByPost(ctx context.Context, postId uuid.UUID) error {
	for id, r := range f.reactions {
		if r.PostId == postId {
			delete(f.reactions, id)
		}
	}
	return nil
}

func (f *fakeReactionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Reaction, error) {
	postId, _ := specPostId(specs)
	userId, _ := specUserId(specs)
	for _, r := range f.reactions {
		if r.PostId == postId && r.UserId == userId {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeReactionRepo) CountByType(ctx context.Context, postId uuid.UUID) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, r := range f.reactions {
		if r.PostId == postId {
			counts[string(r.Type)]++
		}
	}
	return counts, nil
}

type fakeCommentRepo struct {
	contract.CommentRepository
	comments map[uuid.UUID]*entity.Comment
}

func (f *fakeCommentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Comment, error) {
	if id, ok := specId(specs); ok {
		return f.comments[id], nil
	}
	return nil, nil
}

func (f *fakeCommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentRepo) DeleteByPost(ctx context.Context, postId uuid.UUID) error {
	for id, c := range f.comments {
		if c.PostId == postId {
			delete(f.comments, id)
		}
	}
	return nil
}

type fakePollRepo struct {
	contract.PollRepository
	polls            map[uuid.UUID]*entity.Poll
	options          map[uuid.UUID]*entity.PollOption
	votes            map[uuid.UUID]*entity.PollVote
	beforeCreateVote func(*entity.PollVote) error
}

func (f *fakePollRepo) DeleteByPost(ctx context.Context, postId uuid.UUID) error {
	for id, p := range f.polls {
		if p.PostId != postId {
			continue
		}
		for optId, opt := range f.options {
			if opt.PollId != p.Id {
				continue
			}
			for voteId, v := range f.votes {
				if v.OptionId == optId {
					delete(f.votes, voteId)
				}
			}
			delete(f.options, optId)
		}
		delete(f.polls, id)
	}
	return nil
}

func (f *fakePollRepo) FindById(ctx context.Context, id uuid.UUID) (*entity.Poll, error) {
	return f.polls[id], nil
}

func (f *fakePollRepo) FindOption(ctx context.Context, specs ...specification.Specification) (*entity.PollOption, error) {
	if id, ok := specId(specs); ok {
		return f.options[id], nil
	}
	return nil, nil
}

func (f *fakePollRepo) CreateVote(ctx context.Context, vote *entity.PollVote) error {
	if f.beforeCreateVote != nil {
		if err := f.beforeCreateVote(vote); err != nil {
			return err
		}
	}
	f.votes[vote.Id] = vote
	return nil
}

func (f *fakePollRepo) DeleteVote(ctx context.Context, id uuid.UUID) error {
	delete(f.votes, id)
	return nil
}

func (f *fakePollRepo) FindVoteByPoll(ctx context.Context, pollId, userId uuid.UUID) (*entity.PollVote, error) {
	for _, v := range f.votes {
		opt := f.options[v.OptionId]
		if opt != nil && opt.PollId == pollId && v.UserId == userId {
			return v, nil
		}
	}
	return nil, nil
}

func (f *fakePollRepo) CountVotes(ctx context.Context, pollId uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64)
	for _, v := range f.votes {
		opt := f.options[v.OptionId]
		if opt != nil && opt.PollId == pollId {
			counts[v.OptionId]++
		}
	}
	return counts, nil
}

type feedUow struct {
	unitofwork.UnitOfWork
	posts     *fakePostRepo
	likes     *fakeLikeRepo
	reactions *fakeReactionRepo
	polls     *fakePollRepo
	comments  *fakeCommentRepo
}

func (f *feedUow) Begin(ctx context.Context) error { return nil }
func (f *feedUow) Commit() error                   { return nil }
func (f *feedUow) Rollback() error                 { return nil }

func (f *feedUow) PostRepository() contract.PostRepository         { return f.posts }
func (f *feedUow) LikeRepository() contract.LikeRepository         { return f.likes }
func (f *feedUow) ReactionRepository() contract.ReactionRepository { return f.reactions }
func (f *feedUow) PollRepository() contract.PollRepository         { return f.polls }
func (f *feedUow) CommentRepository() contract.CommentRepository   { return f.comments }

type feedUowFactory struct {
	uow *feedUow
}

func (f *feedUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newFeedFixture(post *entity.Post) (*postService, *feedUow) {
	uow := &feedUow{
		posts:     &fakePostRepo{posts: map[uuid.UUID]*entity.Post{post.Id: post}, likesCount: map[uuid.UUID]int64{}},
		likes:     &fakeLikeRepo{likes: map[uuid.UUID]*entity.Like{}},
		reactions: &fakeReactionRepo{reactions: map[uuid.UUID]*entity.Reaction{}},
		polls:     &fakePollRepo{polls: map[uuid.UUID]*entity.Poll{}, options: map[uuid.UUID]*entity.PollOption{}, votes: map[uuid.UUID]*entity.PollVote{}},
		comments:  &fakeCommentRepo{comments: map[uuid.UUID]*entity.Comment{}},
	}
	svc := &postService{uowFactory: &feedUowFactory{uow: uow}}
	return svc, uow
}

func TestToggleLike_DoubleToggleRestoresCount(t *testing.T) {
	post := &entity.Post{Id: uuid.New(), UserId: uuid.New(), CreatedAt: time.Now()}
	svc, uow := newFeedFixture(post)

	// Another user already liked the post.
	other := &entity.Like{Id: uuid.New(), PostId: post.Id, UserId: uuid.New()}
	uow.likes.likes[other.Id] = other

	userId := uuid.New()

	res, err := svc.ToggleLike(context.Background(), userId, post.Id)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, int64(2), res.LikesCount)

	res, err = svc.ToggleLike(context.Background(), userId, post.Id)
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Equal(t, int64(1), res.LikesCount)
	assert.Equal(t, int64(1), uow.posts.likesCount[post.Id])
}

func TestToggleLike_ConcurrentDuplicateKeyConverges(t *testing.T) {
	post := &entity.Post{Id: uuid.New(), UserId: uuid.New()}
	svc, uow := newFeedFixture(post)
	userId := uuid.New()

	// A racing request creates the edge between the existence check and the
	// insert; the loser sees a unique-index violation.
	uow.likes.beforeCreate = func(l *entity.Like) error {
		uow.likes.beforeCreate = nil
		winner := &entity.Like{Id: uuid.New(), PostId: l.PostId, UserId: l.UserId}
		uow.likes.likes[winner.Id] = winner
		return gorm.ErrDuplicatedKey
	}

	res, err := svc.ToggleLike(context.Background(), userId, post.Id)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, int64(1), res.LikesCount)
	assert.Equal(t, int64(1), uow.posts.likesCount[post.Id])
}

func TestToggleReaction_ConcurrentDuplicateKeyConverges(t *testing.T) {
	post := &entity.Post{Id: uuid.New(), UserId: uuid.New()}
	svc, uow := newFeedFixture(post)
	userId := uuid.New()

	uow.reactions.beforeCreate = func(r *entity.Reaction) error {
		uow.reactions.beforeCreate = nil
		winner := &entity.Reaction{Id: uuid.New(), PostId: r.PostId, UserId: r.UserId, Type: r.Type}
		uow.reactions.reactions[winner.Id] = winner
		return gorm.ErrDuplicatedKey
	}

	res, err := svc.ToggleReaction(context.Background(), userId, post.Id, "green_heart")
	require.NoError(t, err)
	assert.Equal(t, "green_heart", res.Reaction)
	assert.Equal(t, int64(1), res.Counts["green_heart"])
}

func TestVotePoll_ConcurrentDuplicateKeyConverges(t *testing.T) {
	post := &entity.Post{Id: uuid.New(), UserId: uuid.New()}
	svc, uow := newFeedFixture(post)
	userId := uuid.New()

	poll := &entity.Poll{Id: uuid.New(), PostId: post.Id, Question: "Tái chế gì hôm nay?"}
	opt := &entity.PollOption{Id: uuid.New(), PollId: poll.Id, Label: "Giấy"}
	poll.Options = []*entity.PollOption{opt}
	uow.polls.polls[poll.Id] = poll
	uow.polls.options[opt.Id] = opt

	uow.polls.beforeCreateVote = func(v *entity.PollVote) error {
		uow.polls.beforeCreateVote = nil
		winner := &entity.PollVote{Id: uuid.New(), OptionId: v.OptionId, UserId: v.UserId}
		uow.polls.votes[winner.Id] = winner
		return gorm.ErrDuplicatedKey
	}

	res, err := svc.VotePoll(context.Background(), userId, opt.Id)
	require.NoError(t, err)
	require.NotNil(t, res.VotedOptionId)
	assert.Equal(t, opt.Id, *res.VotedOptionId)
	require.Len(t, res.Results, 1)
	assert.Equal(t, int64(1), res.Results[0].Votes)
}

func TestToggleLike_UnknownPost(t *testing.T) {
	post := &entity.Post{Id: uuid.New(), UserId: uuid.New()}
	svc, _ := newFeedFixture(post)

	_, err := svc.ToggleLike(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
}

func TestToggleReaction_CreateRemoveSwitch(t *testing.T) {
	post := &entity.Post{Id: uuid.New(), UserId: uuid.New()}
	svc, _ := newFeedFixture(post)
	userId := uuid.New()

	res, err := svc.ToggleReaction(context.Background(), userId, post.Id, "green_heart")
	require.NoError(t, err)
	assert.Equal(t, "green_heart", res.Reaction)
	assert.Equal(t, int64(1), res.Counts["green_heart"])

	// Different type switches in place, never two rows per user.
	res, err = svc.ToggleReaction(context.Background(), userId, post.Id, "seedling")
	require.NoError(t, err)
	assert.Equal(t, "seedling", res.Reaction)
	assert.Equal(t, int64(1), res.Counts["seedling"])
	assert.Zero(t, res.Counts["green_heart"])

	// Same type removes.
	res, err = svc.ToggleReaction(context.Background(), userId, post.Id, "seedling")
	require.NoError(t, err)
	assert.Empty(t, res.Reaction)
	assert.Zero(t, res.Counts["seedling"])
}

func TestVotePoll_SingleChoiceToggleAndMove(t *testing.T) {
	post := &entity.Post{Id: uuid.New(), UserId: uuid.New()}
	svc, uow := newFeedFixture(post)
	userId := uuid.New()

	poll := &entity.Poll{Id: uuid.New(), PostId: post.Id, Question: "Loại rác nào khó phân loại nhất?"}
	optA := &entity.PollOption{Id: uuid.New(), PollId: poll.Id, Label: "Nhựa"}
	optB := &entity.PollOption{Id: uuid.New(), PollId: poll.Id, Label: "Pin"}
	poll.Options = []*entity.PollOption{optA, optB}
	uow.polls.polls[poll.Id] = poll
	uow.polls.options[optA.Id] = optA
	uow.polls.options[optB.Id] = optB

	res, err := svc.VotePoll(context.Background(), userId, optA.Id)
	require.NoError(t, err)
	require.NotNil(t, res.VotedOptionId)
	assert.Equal(t, optA.Id, *res.VotedOptionId)

	// Moving the vote keeps one vote total.
	res, err = svc.VotePoll(context.Background(), userId, optB.Id)
	require.NoError(t, err)
	require.NotNil(t, res.VotedOptionId)
	assert.Equal(t, optB.Id, *res.VotedOptionId)
	for _, r := range res.Results {
		switch r.OptionId {
		case optA.Id:
			assert.Zero(t, r.Votes)
		case optB.Id:
			assert.Equal(t, int64(1), r.Votes)
		}
	}

	// Voting the same option again retracts it; zero-vote options still listed.
	res, err = svc.VotePoll(context.Background(), userId, optB.Id)
	require.NoError(t, err)
	assert.Nil(t, res.VotedOptionId)
	assert.Len(t, res.Results, 2)
	for _, r := range res.Results {
		assert.Zero(t, r.Votes)
	}
}

func TestGetReactions_IncludesViewerState(t *testing.T) {
	post := &entity.Post{Id: uuid.New(), UserId: uuid.New()}
	svc, uow := newFeedFixture(post)
	viewer := uuid.New()

	mine := &entity.Reaction{Id: uuid.New(), PostId: post.Id, UserId: viewer, Type: "seedling"}
	other := &entity.Reaction{Id: uuid.New(), PostId: post.Id, UserId: uuid.New(), Type: "seedling"}
	uow.reactions.reactions[mine.Id] = mine
	uow.reactions.reactions[other.Id] = other

	res, err := svc.GetReactions(context.Background(), &viewer, post.Id)
	require.NoError(t, err)
	assert.Equal(t, "seedling", res.Reaction)
	assert.Equal(t, int64(2), res.Counts["seedling"])

	// Anonymous view gets the counters without a personal reaction.
	res, err = svc.GetReactions(context.Background(), nil, post.Id)
	require.NoError(t, err)
	assert.Empty(t, res.Reaction)
	assert.Equal(t, int64(2), res.Counts["seedling"])
}

func TestDeleteComment_AuthorOrAdminOnly(t *testing.T) {
	post := &entity.Post{Id: uuid.New(), UserId: uuid.New()}
	svc, uow := newFeedFixture(post)

	author := uuid.New()
	comment := &entity.Comment{Id: uuid.New(), PostId: post.Id, UserId: author, Content: "Hay quá!"}
	uow.comments.comments[comment.Id] = comment

	err := svc.DeleteComment(context.Background(), uuid.New(), entity.UserRoleUser, comment.Id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")

	require.NoError(t, svc.DeleteComment(context.Background(), author, entity.UserRoleUser, comment.Id))
	assert.Empty(t, uow.comments.comments)

	// A deleted comment is gone; deleting again is a 404.
	err = svc.DeleteComment(context.Background(), author, entity.UserRoleAdmin, comment.Id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDeletePost_OwnerOrAdminOnly(t *testing.T) {
	owner := uuid.New()
	post := &entity.Post{Id: uuid.New(), UserId: owner}
	svc, uow := newFeedFixture(post)

	err := svc.DeletePost(context.Background(), uuid.New(), entity.UserRoleUser, post.Id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")

	require.NoError(t, svc.DeletePost(context.Background(), owner, entity.UserRoleUser, post.Id))
	assert.Empty(t, uow.posts.posts)
}

func TestDeletePost_AdminCanDeleteAnyPost(t *testing.T) {
	post := &entity.Post{Id: uuid.New(), UserId: uuid.New()}
	svc, uow := newFeedFixture(post)

	like := &entity.Like{Id: uuid.New(), PostId: post.Id, UserId: uuid.New()}
	uow.likes.likes[like.Id] = like
	reaction := &entity.Reaction{Id: uuid.New(), PostId: post.Id, UserId: uuid.New(), Type: "seedling"}
	uow.reactions.reactions[reaction.Id] = reaction
	comment := &entity.Comment{Id: uuid.New(), PostId: post.Id, UserId: uuid.New(), Content: "Tuyệt vời"}
	uow.comments.comments[comment.Id] = comment

	poll := &entity.Poll{Id: uuid.New(), PostId: post.Id, Question: "Bạn chọn gì?"}
	opt := &entity.PollOption{Id: uuid.New(), PollId: poll.Id, Label: "Thủy tinh"}
	poll.Options = []*entity.PollOption{opt}
	vote := &entity.PollVote{Id: uuid.New(), OptionId: opt.Id, UserId: uuid.New()}
	uow.polls.polls[poll.Id] = poll
	uow.polls.options[opt.Id] = opt
	uow.polls.votes[vote.Id] = vote

	require.NoError(t, svc.DeletePost(context.Background(), uuid.New(), entity.UserRoleAdmin, post.Id))

	// Nothing hanging off the post survives the cascade.
	assert.Empty(t, uow.posts.posts)
	assert.Empty(t, uow.likes.likes)
	assert.Empty(t, uow.reactions.reactions)
	assert.Empty(t, uow.comments.comments)
	assert.Empty(t, uow.polls.polls)
	assert.Empty(t, uow.polls.options)
	assert.Empty(t, uow.polls.votes)
}
