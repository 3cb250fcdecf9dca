package util

import "errors"

var (
	// not found
	ErrUserNotFound        = errors.New("user not found")
	ErrCourseNotFound      = errors.New("course not found")
	ErrLessonNotFound      = errors.New("lesson not found")
	ErrQuizNotFound        = errors.New("quiz not found")
	ErrAttemptNotFound     = errors.New("attempt not found")
	ErrEnrollmentNotFound  = errors.New("enrollment not found")
	ErrCertificateNotFound = errors.New("certificate not found")

	// forbidden
	ErrPermissionDenied   = errors.New("permission denied")
	ErrNotEnrolled        = errors.New("not enrolled in this course")
	ErrMaxAttemptsReached = errors.New("max attempts reached")

	// conflict
	ErrAttemptAlreadySubmitted = errors.New("attempt already submitted")
	ErrAlreadyEnrolled         = errors.New("already enrolled in this course")
	ErrCertificateExists       = errors.New("certificate already issued")
	ErrQuestionHasAttempts     = errors.New("question has recorded attempts and cannot be modified")
	ErrEmailRegistered         = errors.New("email already registered")

	// bad request
	ErrQuizMismatch = errors.New("attempt does not belong to this quiz")
)
