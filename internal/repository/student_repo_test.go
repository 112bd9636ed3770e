package repository

import (
	"context"
	"errors"
	"testing"

	apperrors "resit-portal/pkg/errors"
)

// ── 选课与对称链接 ──

func TestStudentAddCourse_SymmetricLink(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedStudent(t, repo, "stu-001", "张三")
	seedCourse(t, repo, "crs-001", "数据结构", "")

	if err := repo.Student.AddCourse(ctx, "stu-001", "crs-001", 45, "FF"); err != nil {
		t.Fatalf("AddCourse 应成功: %v", err)
	}

	s, _ := repo.Student.GetByID(ctx, "stu-001")
	if !contains(s.Courses, "crs-001") {
		t.Error("学生侧应包含课程链接")
	}
	info, _ := repo.Course.GetByID(ctx, "crs-001")
	if !contains(info.Students, "stu-001") {
		t.Error("课程侧应包含学生链接")
	}

	g, err := repo.Student.CourseGrade(ctx, "stu-001", "crs-001")
	if err != nil {
		t.Fatalf("成绩记录应已登记: %v", err)
	}
	if g.Grade != 45 || g.GradeLetter != "FF" {
		t.Errorf("期望成绩 45/FF，实际=%v/%s", g.Grade, g.GradeLetter)
	}
}

func TestStudentAddCourse_DuplicateRejected(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedStudent(t, repo, "stu-001", "张三")
	seedCourse(t, repo, "crs-001", "数据结构", "")

	if err := repo.Student.AddCourse(ctx, "stu-001", "crs-001", 45, "FF"); err != nil {
		t.Fatalf("首次选课应成功: %v", err)
	}
	err := repo.Student.AddCourse(ctx, "stu-001", "crs-001", 45, "FF")
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("重复选课期望 ErrConflict，实际: %v", err)
	}
}

func TestStudentAddCourse_UnknownEntities(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedStudent(t, repo, "stu-001", "张三")

	if err := repo.Student.AddCourse(ctx, "stu-001", "ghost", 45, "FF"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("未知课程期望 ErrNotFound，实际: %v", err)
	}
	seedCourse(t, repo, "crs-001", "数据结构", "")
	if err := repo.Student.AddCourse(ctx, "ghost", "crs-001", 45, "FF"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("未知学生期望 ErrNotFound，实际: %v", err)
	}
}

// ── 退课级联 ──

func TestStudentRemoveFromCourse_CascadesToResitExam(t *testing.T) {
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

	if err := repo.Student.RemoveFromCourse(ctx, "stu-001", "crs-001"); err != nil {
		t.Fatalf("退课应成功: %v", err)
	}

	s, _ := repo.Student.GetByID(ctx, "stu-001")
	if len(s.Courses) != 0 || len(s.ResitExams) != 0 {
		t.Errorf("退课后学生的课程与补考链接都应清空，实际 courses=%v resits=%v", s.Courses, s.ResitExams)
	}
	exam, _ := repo.ResitExam.GetByID(ctx, "re-001")
	if contains(exam.Students, "stu-001") {
		t.Error("课程关联补考的学生集合应同步移除该生")
	}
	if _, err := repo.Student.CourseGrade(ctx, "stu-001", "crs-001"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Error("退课后课程成绩记录应删除")
	}
}

func TestStudentRemoveFromCourse_MissingEntity(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedStudent(t, repo, "stu-001", "张三")

	if err := repo.Student.RemoveFromCourse(ctx, "stu-001", "ghost"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("未知课程期望 ErrNotFound，实际: %v", err)
	}
}

// 解除不存在的链接是幂等空操作
func TestStudentRemoveFromCourse_UnlinkedIsNoop(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedStudent(t, repo, "stu-001", "张三")
	seedCourse(t, repo, "crs-001", "数据结构", "")

	if err := repo.Student.RemoveFromCourse(ctx, "stu-001", "crs-001"); err != nil {
		t.Errorf("解除未建立的链接应为空操作，实际: %v", err)
	}
}

// ── 删除学生的级联 ──

func TestStudentDelete_CascadesEverywhere(t *testing.T) {
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

	if err := repo.Student.Delete(ctx, "stu-001", "sec-001"); err != nil {
		t.Fatalf("删除学生应成功: %v", err)
	}

	if _, err := repo.Student.GetByID(ctx, "stu-001"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Error("学生记录应已删除")
	}
	info, _ := repo.Course.GetByID(ctx, "crs-001")
	if contains(info.Students, "stu-001") {
		t.Error("课程学生集合不应残留该生")
	}
	exam, _ := repo.ResitExam.GetByID(ctx, "re-001")
	if contains(exam.Students, "stu-001") {
		t.Error("补考学生集合不应残留该生")
	}
	if _, err := repo.ResitExam.StudentResult(ctx, "stu-001", "re-001"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Error("补考成绩记录不应残留")
	}
}

func TestStudentDelete_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.Student.Delete(context.Background(), "ghost", "sec-001")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("期望 ErrNotFound，实际: %v", err)
	}
}

// ── 信息更新 ──

func TestStudentUpdateInfo(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedStudent(t, repo, "stu-001", "张三")

	if err := repo.Student.UpdateInfo(ctx, "stu-001", "张三丰", "new@stu.uni.edu", "hash", "sec-001"); err != nil {
		t.Fatalf("UpdateInfo 应成功: %v", err)
	}
	s, _ := repo.Student.GetByID(ctx, "stu-001")
	if s.Name != "张三丰" || s.Email != "new@stu.uni.edu" {
		t.Errorf("字段未整体替换: name=%s email=%s", s.Name, s.Email)
	}
	if s.UpdatedAt == nil {
		t.Error("UpdatedAt 应已刷新")
	}
}

func TestStudentUpdateInfo_UnknownIDSilentNoop(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.Student.UpdateInfo(context.Background(), "ghost", "x", "y", "z", "sec-001"); err != nil {
		t.Errorf("未知 ID 应静默跳过，实际: %v", err)
	}
}

// ── 成绩单视图 ──

func TestStudentCourseDetails(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedStudent(t, repo, "stu-001", "张三")
	seedInstructor(t, repo, "ins-001", "李老师")
	seedCourse(t, repo, "crs-001", "数据结构", "re-001")
	if err := repo.Student.AddCourse(ctx, "stu-001", "crs-001", 40, "FF"); err != nil {
		t.Fatalf("选课失败: %v", err)
	}
	seedResitExam(t, repo, "re-001", "crs-001", "ins-001", []string{"FF", "DD"})
	if err := repo.Student.AddResitExam(ctx, "stu-001", "re-001"); err != nil {
		t.Fatalf("报名补考失败: %v", err)
	}
	if err := repo.ResitExam.UpdateStudentResult(ctx, "stu-001", "re-001", 65, "DD"); err != nil {
		t.Fatalf("录入补考成绩失败: %v", err)
	}

	details, err := repo.Student.CourseDetails(ctx, "stu-001")
	if err != nil {
		t.Fatalf("CourseDetails 应成功: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("期望 1 条记录，实际=%d", len(details))
	}
	d := details[0]
	if d.CourseName != "数据结构" || d.GradeLetter != "FF" {
		t.Errorf("课程成绩平铺字段不符: %+v", d)
	}
	if d.ResitResult == nil || d.ResitResult.GradeLetter != "DD" {
		t.Errorf("补考成绩应并入视图: %+v", d.ResitResult)
	}
}

func TestStudentCourseDetails_UnknownStudentEmptyResult(t *testing.T) {
	repo := newTestRepo(t)

	details, err := repo.Student.CourseDetails(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("未知学生不应报错，实际: %v", err)
	}
	if len(details) != 0 {
		t.Errorf("未知学生应返回空结果，实际=%d 条", len(details))
	}
}

// contains 测试侧的小工具（与实现内部的 containsID 解耦）
func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
