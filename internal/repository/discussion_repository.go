package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type DiscussionRepository struct {
	DB *gorm.DB
}

func NewDiscussionRepository(db *gorm.DB) *DiscussionRepository {
	return &DiscussionRepository{DB: db}
}

func (r *DiscussionRepository) CreatePost(post *model.DiscussionPost) error {
	return r.DB.Create(post).Error
}

func (r *DiscussionRepository) UpdatePost(post *model.DiscussionPost) error {
	return r.DB.Save(post).Error
}

func (r *DiscussionRepository) DeletePost(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.DiscussionComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.DiscussionPost{}, id).Error
	})
}

func (r *DiscussionRepository) FindPostByID(id uint) (*model.DiscussionPost, error) {
	var post model.DiscussionPost
	if err := r.DB.Preload("Comments").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *DiscussionRepository) ListPostsByCourse(courseID uint, page, limit int) ([]model.DiscussionPost, int64, error) {
	var posts []model.DiscussionPost
	var total int64
	q := r.DB.Model(&model.DiscussionPost{}).Where("course_id = ?", courseID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("is_pinned DESC, created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *DiscussionRepository) CreateComment(comment *model.DiscussionComment) error {
	return r.DB.Create(comment).Error
}

func (r *DiscussionRepository) FindCommentByID(id uint) (*model.DiscussionComment, error) {
	var comment model.DiscussionComment
	if err := r.DB.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *DiscussionRepository) DeleteComment(id uint) error {
	return r.DB.Delete(&model.DiscussionComment{}, id).Error
}
