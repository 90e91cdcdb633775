package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bandoxanh-be/internal/dto"
	"bandoxanh-be/internal/entity"
	"bandoxanh-be/internal/repository/specification"
	"bandoxanh-be/internal/repository/unitofwork"
	"bandoxanh-be/pkg/events"
	pktNats "bandoxanh-be/pkg/nats"
)

// isDuplicateKey reports a unique-index violation. Concurrent double
// requests race past the existence check on toggle edges; the losing insert
// fails with this while the edge already holds the requested state.
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

type IPostService interface {
	GetFeed(ctx context.Context, viewerId *uuid.UUID, page, limit int) (*dto.FeedResponse, error)
	GetPost(ctx context.Context, viewerId *uuid.UUID, postId uuid.UUID) (*dto.PostResponse, error)
	CreatePost(ctx context.Context, userId uuid.UUID, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	DeletePost(ctx context.Context, userId uuid.UUID, role entity.UserRole, postId uuid.UUID) error
	ToggleLike(ctx context.Context, userId, postId uuid.UUID) (*dto.LikeResponse, error)
	ToggleReaction(ctx context.Context, userId, postId uuid.UUID, reactionType string) (*dto.ReactionResponse, error)
	GetReactions(ctx context.Context, viewerId *uuid.UUID, postId uuid.UUID) (*dto.ReactionResponse, error)
	AddComment(ctx context.Context, userId, postId uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, postId uuid.UUID) ([]*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, userId uuid.UUID, role entity.UserRole, commentId uuid.UUID) error
	VotePoll(ctx context.Context, userId, optionId uuid.UUID) (*dto.VoteResponse, error)
}

type postService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewPostService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher) IPostService {
	return &postService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (s *postService) GetFeed(ctx context.Context, viewerId *uuid.UUID, page, limit int) (*dto.FeedResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.PostRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	posts, err := uow.PostRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.PostResponse, 0, len(posts))
	for _, post := range posts {
		res, err := s.buildPostResponse(ctx, uow, viewerId, post)
		if err != nil {
			return nil, err
		}
		responses = append(responses, res)
	}

	return &dto.FeedResponse{
		Posts: responses,
		Page:  page,
		Limit: limit,
		Total: total,
	}, nil
}

func (s *postService) GetPost(ctx context.Context, viewerId *uuid.UUID, postId uuid.UUID) (*dto.PostResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: postId})
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "post not found")
	}

	return s.buildPostResponse(ctx, uow, viewerId, post)
}

func (s *postService) CreatePost(ctx context.Context, userId uuid.UUID, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	post := &entity.Post{
		Id:        uuid.New(),
		UserId:    userId,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		CreatedAt: time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.PostRepository().Create(ctx, post); err != nil {
		return nil, err
	}

	if req.Poll != nil {
		poll := &entity.Poll{
			Id:        uuid.New(),
			PostId:    post.Id,
			Question:  req.Poll.Question,
			CreatedAt: time.Now(),
		}
		for _, label := range req.Poll.Options {
			poll.Options = append(poll.Options, &entity.PollOption{
				Id:     uuid.New(),
				PollId: poll.Id,
				Label:  label,
			})
		}
		if err := uow.PollRepository().Create(ctx, poll); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return s.buildPostResponse(ctx, uow, &userId, post)
}

// DeletePost removes the post together with its comments, likes, reactions
// and poll in a single transaction. Only the author or an admin may delete.
func (s *postService) DeletePost(ctx context.Context, userId uuid.UUID, role entity.UserRole, postId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: postId})
	if err != nil {
		return err
	}
	if post == nil {
		return fiber.NewError(fiber.StatusNotFound, "post not found")
	}
	if post.UserId != userId && role != entity.UserRoleAdmin {
		return fiber.NewError(fiber.StatusForbidden, "not allowed to delete this post")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.CommentRepository().DeleteByPost(ctx, postId); err != nil {
		return err
	}
	if err := uow.LikeRepository().DeleteByPost(ctx, postId); err != nil {
		return err
	}
	if err := uow.ReactionRepository().DeleteByPost(ctx, postId); err != nil {
		return err
	}
	if err := uow.PollRepository().DeleteByPost(ctx, postId); err != nil {
		return err
	}
	if err := uow.PostRepository().Delete(ctx, postId); err != nil {
		return err
	}

	return uow.Commit()
}

// ToggleLike flips the like edge for (post, user). The denormalized counter
// is recomputed from the edges inside the same transaction, so a double
// toggle restores the exact original count.
func (s *postService) ToggleLike(ctx context.Context, userId, postId uuid.UUID) (*dto.LikeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: postId})
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "post not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	existing, err := uow.LikeRepository().FindOne(ctx,
		specification.ByPost{PostId: postId},
		specification.ByUser{UserId: userId},
	)
	if err != nil {
		return nil, err
	}

	liked := false
	if existing != nil {
		if err := uow.LikeRepository().Delete(ctx, existing.Id); err != nil {
			return nil, err
		}
	} else {
		like := &entity.Like{
			Id:        uuid.New(),
			PostId:    postId,
			UserId:    userId,
			CreatedAt: time.Now(),
		}
		if err := uow.LikeRepository().Create(ctx, like); err != nil && !isDuplicateKey(err) {
			return nil, err
		}
		liked = true
	}

	count, err := uow.LikeRepository().Count(ctx, specification.ByPost{PostId: postId})
	if err != nil {
		return nil, err
	}
	if err := uow.PostRepository().SetLikesCount(ctx, postId, count); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.LikeResponse{Liked: liked, LikesCount: count}, nil
}

// ToggleReaction applies single-choice semantics: no reaction creates one,
// the same type removes it, a different type switches in place.
func (s *postService) ToggleReaction(ctx context.Context, userId, postId uuid.UUID, reactionType string) (*dto.ReactionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: postId})
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "post not found")
	}

	existing, err := uow.ReactionRepository().FindOne(ctx,
		specification.ByPost{PostId: postId},
		specification.ByUser{UserId: userId},
	)
	if err != nil {
		return nil, err
	}

	current := ""
	notify := false
	switch {
	case existing == nil:
		reaction := &entity.Reaction{
			Id:        uuid.New(),
			PostId:    postId,
			UserId:    userId,
			Type:      entity.ReactionType(reactionType),
			CreatedAt: time.Now(),
		}
		if err := uow.ReactionRepository().Create(ctx, reaction); err != nil {
			// A concurrent double-request already created the edge.
			if !isDuplicateKey(err) {
				return nil, err
			}
			current = reactionType
			break
		}
		current = reactionType
		notify = true

	case string(existing.Type) == reactionType:
		if err := uow.ReactionRepository().Delete(ctx, existing.Id); err != nil {
			return nil, err
		}

	default:
		now := time.Now()
		existing.Type = entity.ReactionType(reactionType)
		existing.UpdatedAt = &now
		if err := uow.ReactionRepository().Update(ctx, existing); err != nil {
			return nil, err
		}
		current = reactionType
		notify = true
	}

	// Reacting to your own post never notifies.
	if notify && post.UserId != userId && s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewReactionAdded(postId, post.UserId, userId, reactionType)); err != nil {
			fmt.Printf("[WARN] Failed to publish REACTION_ADDED event: %v\n", err)
		}
	}

	counts, err := uow.ReactionRepository().CountByType(ctx, postId)
	if err != nil {
		return nil, err
	}

	return &dto.ReactionResponse{Reaction: current, Counts: counts}, nil
}

// GetReactions returns the grouped counters plus the viewer's own reaction.
func (s *postService) GetReactions(ctx context.Context, viewerId *uuid.UUID, postId uuid.UUID) (*dto.ReactionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: postId})
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "post not found")
	}

	counts, err := uow.ReactionRepository().CountByType(ctx, postId)
	if err != nil {
		return nil, err
	}

	current := ""
	if viewerId != nil {
		reaction, err := uow.ReactionRepository().FindOne(ctx,
			specification.ByPost{PostId: postId},
			specification.ByUser{UserId: *viewerId},
		)
		if err != nil {
			return nil, err
		}
		if reaction != nil {
			current = string(reaction.Type)
		}
	}

	return &dto.ReactionResponse{Reaction: current, Counts: counts}, nil
}

func (s *postService) AddComment(ctx context.Context, userId, postId uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: postId})
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "post not found")
	}

	comment := &entity.Comment{
		Id:        uuid.New(),
		PostId:    postId,
		UserId:    userId,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}
	if err := uow.CommentRepository().Create(ctx, comment); err != nil {
		return nil, err
	}

	author, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}

	return toCommentResponse(comment, author), nil
}

func (s *postService) ListComments(ctx context.Context, postId uuid.UUID) ([]*dto.CommentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	comments, err := uow.CommentRepository().FindAll(ctx,
		specification.ByPost{PostId: postId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	authorIds := make([]uuid.UUID, 0, len(comments))
	for _, c := range comments {
		authorIds = append(authorIds, c.UserId)
	}
	authors := make(map[uuid.UUID]*entity.User)
	if len(authorIds) > 0 {
		users, err := uow.UserRepository().FindAll(ctx, specification.ByIDs{IDs: authorIds})
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			authors[u.Id] = u
		}
	}

	responses := make([]*dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		responses = append(responses, toCommentResponse(c, authors[c.UserId]))
	}
	return responses, nil
}

// DeleteComment removes a single comment. Only its author or an admin may
// delete it.
func (s *postService) DeleteComment(ctx context.Context, userId uuid.UUID, role entity.UserRole, commentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	comment, err := uow.CommentRepository().FindOne(ctx, specification.ByID{ID: commentId})
	if err != nil {
		return err
	}
	if comment == nil {
		return fiber.NewError(fiber.StatusNotFound, "comment not found")
	}
	if comment.UserId != userId && role != entity.UserRoleAdmin {
		return fiber.NewError(fiber.StatusForbidden, "not allowed to delete this comment")
	}

	return uow.CommentRepository().Delete(ctx, commentId)
}

// VotePoll is single-choice per poll: voting the same option again removes
// the vote, voting a different option moves it.
func (s *postService) VotePoll(ctx context.Context, userId, optionId uuid.UUID) (*dto.VoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	option, err := uow.PollRepository().FindOption(ctx, specification.ByID{ID: optionId})
	if err != nil {
		return nil, err
	}
	if option == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "poll option not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	existing, err := uow.PollRepository().FindVoteByPoll(ctx, option.PollId, userId)
	if err != nil {
		return nil, err
	}

	var votedOptionId *uuid.UUID
	switch {
	case existing == nil:
		vote := &entity.PollVote{
			Id:        uuid.New(),
			OptionId:  optionId,
			UserId:    userId,
			CreatedAt: time.Now(),
		}
		if err := uow.PollRepository().CreateVote(ctx, vote); err != nil && !isDuplicateKey(err) {
			return nil, err
		}
		votedOptionId = &optionId

	case existing.OptionId == optionId:
		if err := uow.PollRepository().DeleteVote(ctx, existing.Id); err != nil {
			return nil, err
		}

	default:
		if err := uow.PollRepository().DeleteVote(ctx, existing.Id); err != nil {
			return nil, err
		}
		vote := &entity.PollVote{
			Id:        uuid.New(),
			OptionId:  optionId,
			UserId:    userId,
			CreatedAt: time.Now(),
		}
		if err := uow.PollRepository().CreateVote(ctx, vote); err != nil && !isDuplicateKey(err) {
			return nil, err
		}
		votedOptionId = &optionId
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	results, err := s.pollResults(ctx, uow, option.PollId)
	if err != nil {
		return nil, err
	}

	return &dto.VoteResponse{VotedOptionId: votedOptionId, Results: results}, nil
}

// pollResults reads options via the poll so zero-vote options still appear.
func (s *postService) pollResults(ctx context.Context, uow unitofwork.UnitOfWork, pollId uuid.UUID) ([]dto.PollResult, error) {
	counts, err := uow.PollRepository().CountVotes(ctx, pollId)
	if err != nil {
		return nil, err
	}

	poll, err := uow.PollRepository().FindById(ctx, pollId)
	if err != nil {
		return nil, err
	}
	if poll == nil {
		return nil, nil
	}

	results := make([]dto.PollResult, 0, len(poll.Options))
	for _, opt := range poll.Options {
		results = append(results, dto.PollResult{
			OptionId: opt.Id,
			Label:    opt.Label,
			Votes:    counts[opt.Id],
		})
	}
	return results, nil
}

func toCommentResponse(c *entity.Comment, author *entity.User) *dto.CommentResponse {
	res := &dto.CommentResponse{
		Id:        c.Id,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
	if author != nil {
		res.Author = &dto.UserSummary{
			Id:        author.Id,
			FullName:  author.FullName,
			AvatarURL: author.AvatarURL,
		}
	}
	return res
}

func (s *postService) buildPostResponse(ctx context.Context, uow unitofwork.UnitOfWork, viewerId *uuid.UUID, post *entity.Post) (*dto.PostResponse, error) {
	res := &dto.PostResponse{
		Id:        post.Id,
		Content:   post.Content,
		ImageURL:  post.ImageURL,
		CreatedAt: post.CreatedAt,
	}

	author, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: post.UserId})
	if err != nil {
		return nil, err
	}
	if author != nil {
		res.Author = &dto.UserSummary{
			Id:        author.Id,
			FullName:  author.FullName,
			AvatarURL: author.AvatarURL,
		}
	}

	if res.LikesCount, err = uow.LikeRepository().Count(ctx, specification.ByPost{PostId: post.Id}); err != nil {
		return nil, err
	}
	if res.CommentCount, err = uow.CommentRepository().Count(ctx, specification.ByPost{PostId: post.Id}); err != nil {
		return nil, err
	}
	if res.Reactions, err = uow.ReactionRepository().CountByType(ctx, post.Id); err != nil {
		return nil, err
	}

	if viewerId != nil {
		like, err := uow.LikeRepository().FindOne(ctx,
			specification.ByPost{PostId: post.Id},
			specification.ByUser{UserId: *viewerId},
		)
		if err != nil {
			return nil, err
		}
		res.Liked = like != nil

		reaction, err := uow.ReactionRepository().FindOne(ctx,
			specification.ByPost{PostId: post.Id},
			specification.ByUser{UserId: *viewerId},
		)
		if err != nil {
			return nil, err
		}
		if reaction != nil {
			res.Reaction = string(reaction.Type)
		}
	}

	poll, err := uow.PollRepository().FindByPost(ctx, post.Id)
	if err != nil {
		return nil, err
	}
	if poll != nil {
		counts, err := uow.PollRepository().CountVotes(ctx, poll.Id)
		if err != nil {
			return nil, err
		}
		pollRes := &dto.PollResponse{
			Id:       poll.Id,
			Question: poll.Question,
		}
		for _, opt := range poll.Options {
			pollRes.Results = append(pollRes.Results, dto.PollResult{
				OptionId: opt.Id,
				Label:    opt.Label,
				Votes:    counts[opt.Id],
			})
		}
		if viewerId != nil {
			vote, err := uow.PollRepository().FindVoteByPoll(ctx, poll.Id, *viewerId)
			if err != nil {
				return nil, err
			}
			if vote != nil {
				pollRes.VotedOptionId = &vote.OptionId
			}
		}
		res.Poll = pollRes
	}

	return res, nil
}
