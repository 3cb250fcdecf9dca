package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo  *repository.CourseRepository
	LessonRepo  *repository.LessonRepository
	QuizRepo    *repository.QuizRepository
	AttemptRepo *repository.AttemptRepository
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	lessonRepo *repository.LessonRepository,
	quizRepo *repository.QuizRepository,
	attemptRepo *repository.AttemptRepository,
) *CourseService {
	return &CourseService{
		CourseRepo:  courseRepo,
		LessonRepo:  lessonRepo,
		QuizRepo:    quizRepo,
		AttemptRepo: attemptRepo,
	}
}

type CourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	IsPublished bool   `json:"isPublished"`
}

type LessonRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}

type QuizRequest struct {
	Title            string `json:"title" binding:"required"`
	Description      string `json:"description"`
	PassingScore     int    `json:"passingScore"`
	TimeLimitMinutes int    `json:"timeLimitMinutes"`
	AttemptsAllowed  int    `json:"attemptsAllowed"`
	RandomizeOrder   bool   `json:"randomizeOrder"`
	ShowAnswers      bool   `json:"showAnswers"`
	ShowResults      bool   `json:"showResults"`
	IsPublished      bool   `json:"isPublished"`
}

type QuestionOptionRequest struct {
	OptionText string `json:"optionText" binding:"required"`
	IsCorrect  bool   `json:"isCorrect"`
	Order      int    `json:"order"`
}

type QuestionRequest struct {
	QuestionText  string                  `json:"questionText" binding:"required"`
	QuestionType  model.QuestionType      `json:"questionType" binding:"required"`
	Points        int                     `json:"points"`
	CorrectAnswer string                  `json:"correctAnswer"`
	Explanation   string                  `json:"explanation"`
	Order         int                     `json:"order"`
	Options       []QuestionOptionRequest `json:"options"`
}

func (s *CourseService) CreateCourse(instructorID uint, req CourseRequest) (*model.Course, error) {
	course := &model.Course{
		InstructorID: instructorID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		IsPublished:  req.IsPublished,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) UpdateCourse(instructorID, courseID uint, req CourseRequest) (*model.Course, error) {
	course, err := s.ownedCourse(instructorID, courseID)
	if err != nil {
		return nil, err
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Category = req.Category
	course.IsPublished = req.IsPublished

	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) DeleteCourse(instructorID, courseID uint) error {
	if _, err := s.ownedCourse(instructorID, courseID); err != nil {
		return err
	}
	return s.CourseRepo.Delete(courseID)
}

func (s *CourseService) ListPublished(page, limit int) ([]model.Course, int64, error) {
	return s.CourseRepo.ListPublished(page, limit)
}

func (s *CourseService) ListByInstructor(instructorID uint, page, limit int) ([]model.Course, int64, error) {
	return s.CourseRepo.ListByInstructor(instructorID, page, limit)
}

func (s *CourseService) GetCourse(courseID uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByIDWithContent(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	// Learners only see published quizzes. Instructors manage their quizzes
	// through the authoring endpoints, which load without this filter.
	quizzes, err := s.QuizRepo.ListPublishedByCourse(courseID)
	if err != nil {
		return nil, err
	}
	course.Quizzes = quizzes
	return course, nil
}

func (s *CourseService) AddLesson(instructorID, courseID uint, req LessonRequest) (*model.Lesson, error) {
	if _, err := s.ownedCourse(instructorID, courseID); err != nil {
		return nil, err
	}

	lesson := &model.Lesson{
		CourseID: courseID,
		Title:    req.Title,
		Content:  req.Content,
		Order:    req.Order,
	}
	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *CourseService) UpdateLesson(instructorID, lessonID uint, req LessonRequest) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	if _, err := s.ownedCourse(instructorID, lesson.CourseID); err != nil {
		return nil, err
	}

	lesson.Title = req.Title
	lesson.Content = req.Content
	lesson.Order = req.Order

	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *CourseService) DeleteLesson(instructorID, lessonID uint) error {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrLessonNotFound
		}
		return err
	}
	if _, err := s.ownedCourse(instructorID, lesson.CourseID); err != nil {
		return err
	}
	return s.LessonRepo.Delete(lessonID)
}

func (s *CourseService) AddQuiz(instructorID, courseID uint, req QuizRequest) (*model.Quiz, error) {
	if _, err := s.ownedCourse(instructorID, courseID); err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		CourseID:         courseID,
		Title:            req.Title,
		Description:      req.Description,
		PassingScore:     req.PassingScore,
		TimeLimitMinutes: req.TimeLimitMinutes,
		AttemptsAllowed:  req.AttemptsAllowed,
		RandomizeOrder:   req.RandomizeOrder,
		ShowAnswers:      req.ShowAnswers,
		ShowResults:      req.ShowResults,
		IsPublished:      req.IsPublished,
	}
	if quiz.PassingScore <= 0 {
		quiz.PassingScore = 70
	}
	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *CourseService) UpdateQuiz(instructorID, quizID uint, req QuizRequest) (*model.Quiz, error) {
	quiz, err := s.ownedQuiz(instructorID, quizID)
	if err != nil {
		return nil, err
	}

	quiz.Title = req.Title
	quiz.Description = req.Description
	quiz.PassingScore = req.PassingScore
	quiz.TimeLimitMinutes = req.TimeLimitMinutes
	quiz.AttemptsAllowed = req.AttemptsAllowed
	quiz.RandomizeOrder = req.RandomizeOrder
	quiz.ShowAnswers = req.ShowAnswers
	quiz.ShowResults = req.ShowResults
	quiz.IsPublished = req.IsPublished

	if err := s.QuizRepo.Update(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *CourseService) AddQuestion(instructorID, quizID uint, req QuestionRequest) (*model.Question, error) {
	if _, err := s.ownedQuiz(instructorID, quizID); err != nil {
		return nil, err
	}

	question := &model.Question{
		QuizID:        quizID,
		QuestionText:  req.QuestionText,
		QuestionType:  req.QuestionType,
		Points:        req.Points,
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
		Order:         req.Order,
	}
	if question.Points <= 0 {
		question.Points = 1
	}
	for _, opt := range req.Options {
		question.Options = append(question.Options, model.QuestionOption{
			OptionText: opt.OptionText,
			IsCorrect:  opt.IsCorrect,
			Order:      opt.Order,
		})
	}
	if err := s.QuizRepo.CreateQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

// UpdateQuestion rejects edits once any learner has attempted the quiz.
// Attempts grade from their snapshot either way, but a silently drifting
// question bank still misleads anyone reviewing old results.
func (s *CourseService) UpdateQuestion(instructorID, questionID uint, req QuestionRequest) (*model.Question, error) {
	question, err := s.QuizRepo.FindQuestionByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if _, err := s.ownedQuiz(instructorID, question.QuizID); err != nil {
		return nil, err
	}

	attempted, err := s.AttemptRepo.HasAttemptsForQuiz(question.QuizID)
	if err != nil {
		return nil, err
	}
	if attempted {
		return nil, util.ErrQuestionHasAttempts
	}

	question.QuestionText = req.QuestionText
	question.QuestionType = req.QuestionType
	question.CorrectAnswer = req.CorrectAnswer
	question.Explanation = req.Explanation
	question.Order = req.Order
	if req.Points > 0 {
		question.Points = req.Points
	}

	if err := s.QuizRepo.UpdateQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *CourseService) DeleteQuestion(instructorID, questionID uint) error {
	question, err := s.QuizRepo.FindQuestionByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuizNotFound
		}
		return err
	}
	if _, err := s.ownedQuiz(instructorID, question.QuizID); err != nil {
		return err
	}

	attempted, err := s.AttemptRepo.HasAttemptsForQuiz(question.QuizID)
	if err != nil {
		return err
	}
	if attempted {
		return util.ErrQuestionHasAttempts
	}

	return s.QuizRepo.DeleteQuestion(questionID)
}

func (s *CourseService) ownedCourse(instructorID, courseID uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if course.InstructorID != instructorID {
		return nil, util.ErrPermissionDenied
	}
	return course, nil
}

func (s *CourseService) ownedQuiz(instructorID, quizID uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if _, err := s.ownedCourse(instructorID, quiz.CourseID); err != nil {
		return nil, err
	}
	return quiz, nil
}
