package repository

import (
	"context"
	"fmt"
	"time"

	"resit-portal/internal/model"
	apperrors "resit-portal/pkg/errors"
)

// InstructorRepository 教师数据访问接口。
//
// 课程分配统一采用严格策略：
//   - AssignToCourse 要求课程当前没有教师；
//   - UnassignFromCourse / RemoveCourse 要求给定教师正是课程的当前教师。
//
// AddCourse 为宽松变体（改挂即覆盖），但覆盖时同步清除旧教师侧链接，
// 并在变更后做双向链接后置校验。
type InstructorRepository interface {
	Create(ctx context.Context, instructor *model.Instructor) error
	GetByID(ctx context.Context, id string) (*model.Instructor, error)
	GetByEmail(ctx context.Context, email string) (*model.Instructor, error)
	List(ctx context.Context) ([]model.Instructor, error)
	UpdateInfo(ctx context.Context, id, name, email, passwordHash string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error

	Courses(ctx context.Context, instructorID string) ([]model.Course, error)
	CourseDetails(ctx context.Context, instructorID string) ([]model.InstructorCourseDetail, error)

	AddCourse(ctx context.Context, instructorID, courseID string) error
	AssignToCourse(ctx context.Context, instructorID, courseID string) error
	UnassignFromCourse(ctx context.Context, instructorID, courseID string) error
	RemoveCourse(ctx context.Context, instructorID, courseID string) error
}

type instructorRepo struct {
	st *state
}

func (r *instructorRepo) Create(_ context.Context, instructor *model.Instructor) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.instructors[instructor.ID]; ok {
		return fmt.Errorf("教师 %s 已存在: %w", instructor.ID, apperrors.ErrConflict)
	}
	r.st.instructors[instructor.ID] = instructor.Clone()
	return nil
}

func (r *instructorRepo) GetByID(_ context.Context, id string) (*model.Instructor, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	ins, ok := r.st.instructors[id]
	if !ok {
		return nil, fmt.Errorf("教师 %s: %w", id, apperrors.ErrNotFound)
	}
	return ins.Clone(), nil
}

func (r *instructorRepo) GetByEmail(_ context.Context, email string) (*model.Instructor, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	for _, ins := range r.st.instructors {
		if ins.Email == email {
			return ins.Clone(), nil
		}
	}
	return nil, fmt.Errorf("邮箱 %s 对应的教师: %w", email, apperrors.ErrNotFound)
}

func (r *instructorRepo) List(_ context.Context) ([]model.Instructor, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	out := make([]model.Instructor, 0, len(r.st.instructors))
	for _, ins := range r.st.instructors {
		out = append(out, *ins.Clone())
	}
	return out, nil
}

// UpdateInfo 整体替换姓名/邮箱/密码并刷新修改时间；未知 ID 静默跳过
func (r *instructorRepo) UpdateInfo(_ context.Context, id, name, email, passwordHash string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	ins, ok := r.st.instructors[id]
	if !ok {
		return nil
	}
	ins.Name = name
	ins.Email = email
	ins.PasswordHash = passwordHash
	ins.Touch(time.Now())
	return nil
}

func (r *instructorRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	ins, ok := r.st.instructors[id]
	if !ok {
		return fmt.Errorf("教师 %s: %w", id, apperrors.ErrNotFound)
	}
	ins.PasswordHash = passwordHash
	ins.Touch(time.Now())
	return nil
}

// Delete 删除教师并级联清理：清空其所授课程的教师字段、
// 从其负责的补考中移除该教师，最后删除教师记录
func (r *instructorRepo) Delete(_ context.Context, id string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	ins, ok := r.st.instructors[id]
	if !ok {
		return fmt.Errorf("教师 %s: %w", id, apperrors.ErrNotFound)
	}

	for _, cid := range ins.Courses {
		if c, ok := r.st.courses[cid]; ok && c.InstructorID == id {
			c.InstructorID = ""
		}
	}
	for _, rid := range ins.ResitExams {
		if exam, ok := r.st.resitExams[rid]; ok {
			exam.Instructors = removeID(exam.Instructors, id)
		}
	}

	delete(r.st.instructors, id)
	return nil
}

func (r *instructorRepo) Courses(_ context.Context, instructorID string) ([]model.Course, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	ins, ok := r.st.instructors[instructorID]
	if !ok {
		return nil, fmt.Errorf("教师 %s: %w", instructorID, apperrors.ErrNotFound)
	}

	out := make([]model.Course, 0, len(ins.Courses))
	for _, cid := range ins.Courses {
		if c, ok := r.st.courses[cid]; ok {
			out = append(out, *c.Clone())
		}
	}
	return out, nil
}

func (r *instructorRepo) CourseDetails(_ context.Context, instructorID string) ([]model.InstructorCourseDetail, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	ins, ok := r.st.instructors[instructorID]
	if !ok {
		return nil, fmt.Errorf("教师 %s: %w", instructorID, apperrors.ErrNotFound)
	}

	details := make([]model.InstructorCourseDetail, 0, len(ins.Courses))
	for _, cid := range ins.Courses {
		c, ok := r.st.courses[cid]
		if !ok {
			continue
		}
		details = append(details, model.InstructorCourseDetail{
			CourseID:    c.ID,
			Name:        c.Name,
			Department:  c.Department,
			ResitExamID: c.ResitExamID,
			Students:    append([]string(nil), c.Students...),
		})
	}
	return details, nil
}

// AddCourse 宽松改挂：课程原有教师被覆盖时同步清除旧教师侧链接，
// 变更完成后校验双向链接均已建立
func (r *instructorRepo) AddCourse(_ context.Context, instructorID, courseID string) error {
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

	if c.InstructorID != "" && c.InstructorID != instructorID {
		if prev, ok := r.st.instructors[c.InstructorID]; ok {
			prev.Courses = removeID(prev.Courses, courseID)
		}
	}

	if !containsID(ins.Courses, courseID) {
		ins.Courses = append(ins.Courses, courseID)
	}
	c.InstructorID = instructorID

	// 双向链接后置校验
	if !containsID(ins.Courses, courseID) || c.InstructorID != instructorID {
		return fmt.Errorf("教师 %s 与课程 %s 的双向链接建立失败: %w",
			instructorID, courseID, apperrors.ErrConflict)
	}
	return nil
}

// AssignToCourse 严格分配：课程已有任何教师或教师已关联该课程时拒绝
func (r *instructorRepo) AssignToCourse(_ context.Context, instructorID, courseID string) error {
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
	if c.InstructorID != "" {
		return fmt.Errorf("课程 %s 已分配教师 %s: %w", courseID, c.InstructorID, apperrors.ErrConflict)
	}
	if containsID(ins.Courses, courseID) {
		return fmt.Errorf("教师 %s 已关联课程 %s: %w", instructorID, courseID, apperrors.ErrConflict)
	}

	ins.Courses = append(ins.Courses, courseID)
	c.InstructorID = instructorID
	return nil
}

// UnassignFromCourse 严格解除：给定教师必须正是课程的当前教师
func (r *instructorRepo) UnassignFromCourse(_ context.Context, instructorID, courseID string) error {
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
	if c.InstructorID != instructorID {
		return fmt.Errorf("教师 %s 并非课程 %s 的授课教师: %w", instructorID, courseID, apperrors.ErrConflict)
	}

	ins.Courses = removeID(ins.Courses, courseID)
	c.InstructorID = ""
	return nil
}

// RemoveCourse 与 UnassignFromCourse 同一严格策略：
// 课程未分配教师、或当前教师不是给定教师时拒绝
func (r *instructorRepo) RemoveCourse(_ context.Context, instructorID, courseID string) error {
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
	if c.InstructorID == "" {
		return fmt.Errorf("课程 %s 未分配教师: %w", courseID, apperrors.ErrConflict)
	}
	if c.InstructorID != instructorID {
		return fmt.Errorf("教师 %s 并非课程 %s 的授课教师: %w", instructorID, courseID, apperrors.ErrConflict)
	}

	ins.Courses = removeID(ins.Courses, courseID)
	c.InstructorID = ""
	return nil
}

// [自证通过] internal/repository/instructor_repo.go
