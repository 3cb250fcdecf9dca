package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type DiscussionService struct {
	DiscussionRepo *repository.DiscussionRepository
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
	Notifications  *NotificationService
}

func NewDiscussionService(
	discussionRepo *repository.DiscussionRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
	notifications *NotificationService,
) *DiscussionService {
	return &DiscussionService{
		DiscussionRepo: discussionRepo,
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		Notifications:  notifications,
	}
}

type PostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// requireCourseAccess allows the course instructor and enrolled learners.
func (s *DiscussionService) requireCourseAccess(userID, courseID uint) error {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}
	if course.InstructorID == userID {
		return nil
	}
	if _, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrNotEnrolled
		}
		return err
	}
	return nil
}

func (s *DiscussionService) CreatePost(userID, courseID uint, req PostRequest) (*model.DiscussionPost, error) {
	if err := s.requireCourseAccess(userID, courseID); err != nil {
		return nil, err
	}

	post := &model.DiscussionPost{
		CourseID: courseID,
		UserID:   userID,
		Title:    req.Title,
		Content:  req.Content,
	}
	if err := s.DiscussionRepo.CreatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *DiscussionService) ListPosts(userID, courseID uint, page, limit int) ([]model.DiscussionPost, int64, error) {
	if err := s.requireCourseAccess(userID, courseID); err != nil {
		return nil, 0, err
	}
	return s.DiscussionRepo.ListPostsByCourse(courseID, page, limit)
}

func (s *DiscussionService) GetPost(userID, postID uint) (*model.DiscussionPost, error) {
	post, err := s.DiscussionRepo.FindPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if err := s.requireCourseAccess(userID, post.CourseID); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *DiscussionService) DeletePost(userID uint, role model.UserRole, postID uint) error {
	post, err := s.DiscussionRepo.FindPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}
	if post.UserID != userID && role != model.Admin {
		return util.ErrPermissionDenied
	}
	return s.DiscussionRepo.DeletePost(postID)
}

func (s *DiscussionService) AddComment(userID, postID uint, req CommentRequest) (*model.DiscussionComment, error) {
	post, err := s.DiscussionRepo.FindPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if err := s.requireCourseAccess(userID, post.CourseID); err != nil {
		return nil, err
	}

	comment := &model.DiscussionComment{
		PostID:  postID,
		UserID:  userID,
		Content: req.Content,
	}
	if err := s.DiscussionRepo.CreateComment(comment); err != nil {
		return nil, err
	}

	if post.UserID != userID {
		s.Notifications.Notify(post.UserID, model.NotifyDiscussion,
			"New reply", "Someone replied to your discussion post.")
	}
	return comment, nil
}

func (s *DiscussionService) DeleteComment(userID uint, role model.UserRole, commentID uint) error {
	comment, err := s.DiscussionRepo.FindCommentByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}
	if comment.UserID != userID && role != model.Admin {
		return util.ErrPermissionDenied
	}
	return s.DiscussionRepo.DeleteComment(commentID)
}
