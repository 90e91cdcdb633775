package implementation

import (
	"context"
	"errors"

	"bandoxanh-be/internal/entity"
	"bandoxanh-be/internal/mapper"
	"bandoxanh-be/internal/model"
	"bandoxanh-be/internal/repository/contract"
	"bandoxanh-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PollRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PostMapper
}

func NewPollRepository(db *gorm.DB) contract.PollRepository {
	return &PollRepositoryImpl{
		db:     db,
		mapper: mapper.NewPostMapper(),
	}
}

func (r *PollRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PollRepositoryImpl) Create(ctx context.Context, poll *entity.Poll) error {
	m := r.mapper.PollToModel(poll)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*poll = *r.mapper.PollToEntity(m)
	return nil
}

func (r *PollRepositoryImpl) DeleteByPost(ctx context.Context, postId uuid.UUID) error {
	var poll model.Poll
	err := r.db.WithContext(ctx).Where("post_id = ?", postId).First(&poll).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	// Votes hang off options, options off the poll.
	optionIds := r.db.Model(&model.PollOption{}).Select("id").Where("poll_id = ?", poll.Id)
	if err := r.db.WithContext(ctx).Where("option_id IN (?)", optionIds).Delete(&model.PollVote{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Where("poll_id = ?", poll.Id).Delete(&model.PollOption{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&model.Poll{}, poll.Id).Error
}

func (r *PollRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Poll, error) {
	var m model.Poll
	err := r.db.WithContext(ctx).Preload("Options").First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PollToEntity(&m), nil
}

func (r *PollRepositoryImpl) FindByPost(ctx context.Context, postId uuid.UUID) (*entity.Poll, error) {
	var m model.Poll
	err := r.db.WithContext(ctx).Preload("Options").Where("post_id = ?", postId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PollToEntity(&m), nil
}

func (r *PollRepositoryImpl) FindOption(ctx context.Context, specs ...specification.Specification) (*entity.PollOption, error) {
	var m model.PollOption
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity.PollOption{Id: m.Id, PollId: m.PollId, Label: m.Label}, nil
}

func (r *PollRepositoryImpl) CreateVote(ctx context.Context, vote *entity.PollVote) error {
	m := r.mapper.PollVoteToModel(vote)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*vote = *r.mapper.PollVoteToEntity(m)
	return nil
}

func (r *PollRepositoryImpl) DeleteVote(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PollVote{}).Error
}

func (r *PollRepositoryImpl) FindVote(ctx context.Context, specs ...specification.Specification) (*entity.PollVote, error) {
	var m model.PollVote
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PollVoteToEntity(&m), nil
}

// FindVoteByPoll returns the user's vote on any option of the poll.
func (r *PollRepositoryImpl) FindVoteByPoll(ctx context.Context, pollId, userId uuid.UUID) (*entity.PollVote, error) {
	var m model.PollVote
	err := r.db.WithContext(ctx).
		Joins("JOIN poll_options ON poll_options.id = poll_votes.option_id").
		Where("poll_options.poll_id = ? AND poll_votes.user_id = ?", pollId, userId).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PollVoteToEntity(&m), nil
}

func (r *PollRepositoryImpl) CountVotes(ctx context.Context, pollId uuid.UUID) (map[uuid.UUID]int64, error) {
	var rows []struct {
		OptionId uuid.UUID
		Count    int64
	}
	err := r.db.WithContext(ctx).Model(&model.PollVote{}).
		Select("option_id, COUNT(*) as count").
		Joins("JOIN poll_options ON poll_options.id = poll_votes.option_id").
		Where("poll_options.poll_id = ?", pollId).
		Group("option_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.OptionId] = row.Count
	}
	return counts, nil
}
