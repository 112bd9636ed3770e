package repository

import (
	"context"
	"fmt"
	"time"

	"resit-portal/internal/model"
	apperrors "resit-portal/pkg/errors"
)

// CourseUpdate 课程部分更新字段；nil 表示保持不变
type CourseUpdate struct {
	Name         *string
	Department   *string
	InstructorID *string
	ResitExamID  *string
}

// CourseRepository 课程数据访问接口。
// Delete / Update 先做操作者（秘书）存在性校验，再做课程存在性校验；
// Delete 按对称链接不变量做全量级联（学生链接、成绩记录、教师链接、关联补考）。
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id string) (*model.CourseInfo, error)
	List(ctx context.Context) ([]model.Course, error)
	Update(ctx context.Context, id, name, department, secretaryID string) error
	UpdateDetails(ctx context.Context, id string, upd CourseUpdate) error
	Delete(ctx context.Context, id, secretaryID string) error

	AddStudent(ctx context.Context, courseID, studentID string) error
	StudentsForCourse(ctx context.Context, courseID string) ([]model.Student, error)
	CoursesForStudent(ctx context.Context, studentID string) ([]model.Course, error)
	InstructorDetails(ctx context.Context, courseID string) (*model.Instructor, error)
}

type courseRepo struct {
	st *state
}

func (r *courseRepo) Create(_ context.Context, course *model.Course) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.courses[course.ID]; ok {
		return fmt.Errorf("课程 %s 已存在: %w", course.ID, apperrors.ErrConflict)
	}
	r.st.courses[course.ID] = course.Clone()
	return nil
}

// GetByID 返回课程及其补考允许的成绩等级（未关联补考时为空列表）
func (r *courseRepo) GetByID(_ context.Context, id string) (*model.CourseInfo, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	c, ok := r.st.courses[id]
	if !ok {
		return nil, fmt.Errorf("课程 %s: %w", id, apperrors.ErrNotFound)
	}

	letters := []string{}
	if c.ResitExamID != "" {
		if exam, ok := r.st.resitExams[c.ResitExamID]; ok {
			letters = append([]string(nil), exam.LettersAllowed...)
		}
	}
	return &model.CourseInfo{
		Course:                  *c.Clone(),
		ResitExamLettersAllowed: letters,
	}, nil
}

func (r *courseRepo) List(_ context.Context) ([]model.Course, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	out := make([]model.Course, 0, len(r.st.courses))
	for _, c := range r.st.courses {
		out = append(out, *c.Clone())
	}
	return out, nil
}

// Update 整体替换名称/院系并刷新修改时间（链接字段由各链接操作维护）
func (r *courseRepo) Update(_ context.Context, id, name, department, secretaryID string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.secretaries[secretaryID]; !ok {
		return fmt.Errorf("秘书 %s: %w", secretaryID, apperrors.ErrUnauthorized)
	}
	c, ok := r.st.courses[id]
	if !ok {
		return fmt.Errorf("课程 %s: %w", id, apperrors.ErrNotFound)
	}

	c.Name = name
	c.Department = department
	c.Touch(time.Now())
	return nil
}

// UpdateDetails 部分字段合并。
// 改挂教师时新教师必须存在，且两侧链接一并迁移；
// ResitExamID 仅写入课程侧的 0..1 占位链接（完整补考记录由 CreateByInstructor 建立）。
func (r *courseRepo) UpdateDetails(_ context.Context, id string, upd CourseUpdate) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	c, ok := r.st.courses[id]
	if !ok {
		return fmt.Errorf("课程 %s: %w", id, apperrors.ErrNotFound)
	}

	if upd.InstructorID != nil {
		next, ok := r.st.instructors[*upd.InstructorID]
		if !ok {
			return fmt.Errorf("教师 %s: %w", *upd.InstructorID, apperrors.ErrNotFound)
		}
		if c.InstructorID != "" && c.InstructorID != next.ID {
			if prev, ok := r.st.instructors[c.InstructorID]; ok {
				prev.Courses = removeID(prev.Courses, id)
			}
		}
		if !containsID(next.Courses, id) {
			next.Courses = append(next.Courses, id)
		}
		c.InstructorID = next.ID
	}

	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Department != nil {
		c.Department = *upd.Department
	}
	if upd.ResitExamID != nil {
		c.ResitExamID = *upd.ResitExamID
	}
	c.Touch(time.Now())
	return nil
}

// Delete 删除课程并级联清理：学生链接与成绩记录、教师链接、关联补考整体删除
func (r *courseRepo) Delete(_ context.Context, id, secretaryID string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.secretaries[secretaryID]; !ok {
		return fmt.Errorf("秘书 %s: %w", secretaryID, apperrors.ErrUnauthorized)
	}
	c, ok := r.st.courses[id]
	if !ok {
		return fmt.Errorf("课程 %s: %w", id, apperrors.ErrNotFound)
	}

	for _, sid := range c.Students {
		if s, ok := r.st.students[sid]; ok {
			s.Courses = removeID(s.Courses, id)
		}
		delete(r.st.courseGrades, gradeKey{sid, id})
	}
	if c.InstructorID != "" {
		if ins, ok := r.st.instructors[c.InstructorID]; ok {
			ins.Courses = removeID(ins.Courses, id)
		}
	}
	if c.ResitExamID != "" {
		if exam, ok := r.st.resitExams[c.ResitExamID]; ok {
			r.st.deleteResitExamLocked(exam)
		}
	}

	delete(r.st.courses, id)
	return nil
}

// AddStudent 课程侧加选：与 StudentRepository.AddCourse 对称，但不登记成绩
func (r *courseRepo) AddStudent(_ context.Context, courseID, studentID string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	c, ok := r.st.courses[courseID]
	if !ok {
		return fmt.Errorf("课程 %s: %w", courseID, apperrors.ErrNotFound)
	}
	s, ok := r.st.students[studentID]
	if !ok {
		return fmt.Errorf("学生 %s: %w", studentID, apperrors.ErrNotFound)
	}
	if containsID(c.Students, studentID) || containsID(s.Courses, courseID) {
		return fmt.Errorf("学生 %s 已选课程 %s: %w", studentID, courseID, apperrors.ErrConflict)
	}

	c.Students = append(c.Students, studentID)
	s.Courses = append(s.Courses, courseID)
	return nil
}

func (r *courseRepo) StudentsForCourse(_ context.Context, courseID string) ([]model.Student, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	c, ok := r.st.courses[courseID]
	if !ok {
		return nil, fmt.Errorf("课程 %s: %w", courseID, apperrors.ErrNotFound)
	}

	out := make([]model.Student, 0, len(c.Students))
	for _, sid := range c.Students {
		if s, ok := r.st.students[sid]; ok {
			out = append(out, *s.Clone())
		}
	}
	return out, nil
}

func (r *courseRepo) CoursesForStudent(_ context.Context, studentID string) ([]model.Course, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	s, ok := r.st.students[studentID]
	if !ok {
		return nil, fmt.Errorf("学生 %s: %w", studentID, apperrors.ErrNotFound)
	}

	out := make([]model.Course, 0, len(s.Courses))
	for _, cid := range s.Courses {
		if c, ok := r.st.courses[cid]; ok {
			out = append(out, *c.Clone())
		}
	}
	return out, nil
}

// InstructorDetails 解析课程的授课教师；课程未分配教师时返回 (nil, nil)
func (r *courseRepo) InstructorDetails(_ context.Context, courseID string) (*model.Instructor, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	c, ok := r.st.courses[courseID]
	if !ok {
		return nil, fmt.Errorf("课程 %s: %w", courseID, apperrors.ErrNotFound)
	}
	if c.InstructorID == "" {
		return nil, nil
	}
	ins, ok := r.st.instructors[c.InstructorID]
	if !ok {
		return nil, nil
	}
	return ins.Clone(), nil
}

// [自证通过] internal/repository/course_repo.go
