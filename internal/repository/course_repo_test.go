package repository

import (
	"context"
	"errors"
	"testing"

	apperrors "resit-portal/pkg/errors"
)

// ── 课程详情的派生字段 ──

func TestCourseGetByID_DerivedLetters(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedInstructor(t, repo, "ins-001", "李老师")
	seedCourse(t, repo, "crs-001", "数据结构", "re-001")

	// 占位链接已设置但补考记录尚未创建：派生列表为空
	info, err := repo.Course.GetByID(ctx, "crs-001")
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if len(info.ResitExamLettersAllowed) != 0 {
		t.Errorf("补考未创建时派生等级列表应为空，实际=%v", info.ResitExamLettersAllowed)
	}

	seedResitExam(t, repo, "re-001", "crs-001", "ins-001", []string{"FF", "DD"})
	info, _ = repo.Course.GetByID(ctx, "crs-001")
	if len(info.ResitExamLettersAllowed) != 2 {
		t.Errorf("期望派生等级列表 [FF DD]，实际=%v", info.ResitExamLettersAllowed)
	}
}

// ── 删除课程的授权与级联 ──

func TestCourseDelete_ChecksSecretaryThenExistence(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedCourse(t, repo, "crs-001", "数据结构", "")

	if err := repo.Course.Delete(ctx, "crs-001", "ghost"); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("未知秘书期望 ErrUnauthorized，实际: %v", err)
	}
	if err := repo.Course.Delete(ctx, "ghost", "sec-001"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("未知课程期望 ErrNotFound，实际: %v", err)
	}
}

func TestCourseDelete_FullCascade(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedStudent(t, repo, "stu-001", "张三")
	seedInstructor(t, repo, "ins-001", "李老师")
	seedCourse(t, repo, "crs-001", "数据结构", "re-001")
	if err := repo.Student.AddCourse(ctx, "stu-001", "crs-001", 40, "FF"); err != nil {
		t.Fatalf("选课失败: %v", err)
	}
	seedResitExam(t, repo, "re-001", "crs-001", "ins-001", []string{"FF"})
	if err := repo.Student.AddResitExam(ctx, "stu-001", "re-001"); err != nil {
		t.Fatalf("报名补考失败: %v", err)
	}

	if err := repo.Course.Delete(ctx, "crs-001", "sec-001"); err != nil {
		t.Fatalf("删除课程应成功: %v", err)
	}

	s, _ := repo.Student.GetByID(ctx, "stu-001")
	if len(s.Courses) != 0 || len(s.ResitExams) != 0 {
		t.Errorf("学生的课程与补考链接都应清空，实际 courses=%v resits=%v", s.Courses, s.ResitExams)
	}
	ins, _ := repo.Instructor.GetByID(ctx, "ins-001")
	if contains(ins.Courses, "crs-001") || contains(ins.ResitExams, "re-001") {
		t.Error("教师的课程与补考链接都应清空")
	}
	if _, err := repo.ResitExam.GetByID(ctx, "re-001"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Error("课程关联的补考应一并删除")
	}
	if _, err := repo.Student.CourseGrade(ctx, "stu-001", "crs-001"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Error("课程成绩记录应删除")
	}
}

// ── 部分更新 ──

func TestCourseUpdateDetails_InstructorMustResolve(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedCourse(t, repo, "crs-001", "数据结构", "")

	ghost := "ghost"
	err := repo.Course.UpdateDetails(ctx, "crs-001", CourseUpdate{InstructorID: &ghost})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("未知教师期望 ErrNotFound，实际: %v", err)
	}
}

func TestCourseUpdateDetails_MovesInstructorLink(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedInstructor(t, repo, "ins-001", "李老师")
	seedInstructor(t, repo, "ins-002", "王老师")
	seedCourse(t, repo, "crs-001", "数据结构", "")
	if err := repo.Instructor.AssignToCourse(ctx, "ins-001", "crs-001"); err != nil {
		t.Fatalf("分配失败: %v", err)
	}

	next := "ins-002"
	newName := "高级数据结构"
	if err := repo.Course.UpdateDetails(ctx, "crs-001", CourseUpdate{Name: &newName, InstructorID: &next}); err != nil {
		t.Fatalf("UpdateDetails 应成功: %v", err)
	}

	info, _ := repo.Course.GetByID(ctx, "crs-001")
	if info.Name != "高级数据结构" || info.InstructorID != "ins-002" {
		t.Errorf("部分更新结果不符: name=%s instructor=%s", info.Name, info.InstructorID)
	}
	prev, _ := repo.Instructor.GetByID(ctx, "ins-001")
	if contains(prev.Courses, "crs-001") {
		t.Error("旧教师侧链接应随改挂清除")
	}
	if info.UpdatedAt == nil {
		t.Error("UpdatedAt 应已刷新")
	}
}

func TestCourseUpdate_AuthThenExistence(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedCourse(t, repo, "crs-001", "数据结构", "")

	if err := repo.Course.Update(ctx, "crs-001", "x", "y", "ghost"); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("未知秘书期望 ErrUnauthorized，实际: %v", err)
	}
	if err := repo.Course.Update(ctx, "crs-001", "算法设计", "软件学院", "sec-001"); err != nil {
		t.Fatalf("更新应成功: %v", err)
	}
	info, _ := repo.Course.GetByID(ctx, "crs-001")
	if info.Name != "算法设计" || info.Department != "软件学院" {
		t.Errorf("整体替换结果不符: %+v", info.Course)
	}
}

// ── 课程侧加选与投影 ──

func TestCourseAddStudent_Idempotency(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedStudent(t, repo, "stu-001", "张三")
	seedCourse(t, repo, "crs-001", "数据结构", "")

	if err := repo.Course.AddStudent(ctx, "crs-001", "stu-001"); err != nil {
		t.Fatalf("首次加选应成功: %v", err)
	}
	if err := repo.Course.AddStudent(ctx, "crs-001", "stu-001"); !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("重复加选期望 ErrConflict，实际: %v", err)
	}
}

func TestCourseProjections(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedStudent(t, repo, "stu-001", "张三")
	seedInstructor(t, repo, "ins-001", "李老师")
	seedCourse(t, repo, "crs-001", "数据结构", "")
	if err := repo.Course.AddStudent(ctx, "crs-001", "stu-001"); err != nil {
		t.Fatalf("加选失败: %v", err)
	}
	if err := repo.Instructor.AssignToCourse(ctx, "ins-001", "crs-001"); err != nil {
		t.Fatalf("分配失败: %v", err)
	}

	students, err := repo.Course.StudentsForCourse(ctx, "crs-001")
	if err != nil || len(students) != 1 || students[0].ID != "stu-001" {
		t.Errorf("StudentsForCourse 结果不符: %v, err=%v", students, err)
	}
	courses, err := repo.Course.CoursesForStudent(ctx, "stu-001")
	if err != nil || len(courses) != 1 || courses[0].ID != "crs-001" {
		t.Errorf("CoursesForStudent 结果不符: %v, err=%v", courses, err)
	}

	ins, err := repo.Course.InstructorDetails(ctx, "crs-001")
	if err != nil || ins == nil || ins.ID != "ins-001" {
		t.Errorf("InstructorDetails 结果不符: %v, err=%v", ins, err)
	}
}

func TestCourseInstructorDetails_NoInstructor(t *testing.T) {
	repo := newTestRepo(t)
	seedCourse(t, repo, "crs-001", "数据结构", "")

	ins, err := repo.Course.InstructorDetails(context.Background(), "crs-001")
	if err != nil {
		t.Fatalf("未分配教师不应报错: %v", err)
	}
	if ins != nil {
		t.Error("未分配教师时应返回空结果")
	}
}
