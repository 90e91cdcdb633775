package mapper

import (
	"bandoxanh-be/internal/entity"
	"bandoxanh-be/internal/model"
)

type PostMapper struct{}

func NewPostMapper() *PostMapper {
	return &PostMapper{}
}

func (m *PostMapper) ToEntity(p *model.Post) *entity.Post {
	if p == nil {
		return nil
	}
	return &entity.Post{
		Id:         p.Id,
		UserId:     p.UserId,
		Content:    p.Content,
		ImageURL:   p.ImageURL,
		LikesCount: p.LikesCount,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (m *PostMapper) ToModel(p *entity.Post) *model.Post {
	if p == nil {
		return nil
	}
	return &model.Post{
		Id:         p.Id,
		UserId:     p.UserId,
		Content:    p.Content,
		ImageURL:   p.ImageURL,
		LikesCount: p.LikesCount,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (m *PostMapper) ToEntities(models []*model.Post) []*entity.Post {
	entities := make([]*entity.Post, 0, len(models))
	for _, p := range models {
		entities = append(entities, m.ToEntity(p))
	}
	return entities
}

func (m *PostMapper) CommentToEntity(c *model.Comment) *entity.Comment {
	if c == nil {
		return nil
	}
	return &entity.Comment{
		Id:        c.Id,
		PostId:    c.PostId,
		UserId:    c.UserId,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func (m *PostMapper) CommentToModel(c *entity.Comment) *model.Comment {
	if c == nil {
		return nil
	}
	return &model.Comment{
		Id:        c.Id,
		PostId:    c.PostId,
		UserId:    c.UserId,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func (m *PostMapper) CommentsToEntities(models []*model.Comment) []*entity.Comment {
	entities := make([]*entity.Comment, 0, len(models))
	for _, c := range models {
		entities = append(entities, m.CommentToEntity(c))
	}
	return entities
}

func (m *PostMapper) LikeToEntity(l *model.Like) *entity.Like {
	if l == nil {
		return nil
	}
	return &entity.Like{
		Id:        l.Id,
		PostId:    l.PostId,
		UserId:    l.UserId,
		CreatedAt: l.CreatedAt,
	}
}

func (m *PostMapper) LikeToModel(l *entity.Like) *model.Like {
	if l == nil {
		return nil
	}
	return &model.Like{
		Id:        l.Id,
		PostId:    l.PostId,
		UserId:    l.UserId,
		CreatedAt: l.CreatedAt,
	}
}

func (m *PostMapper) ReactionToEntity(r *model.Reaction) *entity.Reaction {
	if r == nil {
		return nil
	}
	return &entity.Reaction{
		Id:        r.Id,
		PostId:    r.PostId,
		UserId:    r.UserId,
		Type:      entity.ReactionType(r.Type),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (m *PostMapper) ReactionToModel(r *entity.Reaction) *model.Reaction {
	if r == nil {
		return nil
	}
	return &model.Reaction{
		Id:        r.Id,
		PostId:    r.PostId,
		UserId:    r.UserId,
		Type:      string(r.Type),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (m *PostMapper) PollToEntity(p *model.Poll) *entity.Poll {
	if p == nil {
		return nil
	}
	options := make([]*entity.PollOption, 0, len(p.Options))
	for _, o := range p.Options {
		options = append(options, &entity.PollOption{Id: o.Id, PollId: o.PollId, Label: o.Label})
	}
	return &entity.Poll{
		Id:        p.Id,
		PostId:    p.PostId,
		Question:  p.Question,
		CreatedAt: p.CreatedAt,
		Options:   options,
	}
}

func (m *PostMapper) PollToModel(p *entity.Poll) *model.Poll {
	if p == nil {
		return nil
	}
	options := make([]*model.PollOption, 0, len(p.Options))
	for _, o := range p.Options {
		options = append(options, &model.PollOption{Id: o.Id, PollId: o.PollId, Label: o.Label})
	}
	return &model.Poll{
		Id:        p.Id,
		PostId:    p.PostId,
		Question:  p.Question,
		CreatedAt: p.CreatedAt,
		Options:   options,
	}
}

func (m *PostMapper) PollVoteToEntity(v *model.PollVote) *entity.PollVote {
	if v == nil {
		return nil
	}
	return &entity.PollVote{
		Id:        v.Id,
		OptionId:  v.OptionId,
		UserId:    v.UserId,
		CreatedAt: v.CreatedAt,
	}
}

func (m *PostMapper) PollVoteToModel(v *entity.PollVote) *model.PollVote {
	if v == nil {
		return nil
	}
	return &model.PollVote{
		Id:        v.Id,
		OptionId:  v.OptionId,
		UserId:    v.UserId,
		CreatedAt: v.CreatedAt,
	}
}
