package repository

import (
	"context"
	"errors"
	"testing"

	apperrors "resit-portal/pkg/errors"
)

// 端到端：从建课、分配、选课到补考全流程
func TestFullResitFlow(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seedInstructor(t, repo, "i1", "李老师")
	seedInstructor(t, repo, "i2", "王老师")
	seedStudent(t, repo, "s1", "张三")
	seedCourse(t, repo, "c1", "数据结构", "r1")

	// 分配授课教师，第二次分配被一课一师规则拒绝
	if err := repo.Instructor.AssignToCourse(ctx, "i1", "c1"); err != nil {
		t.Fatalf("分配教师应成功: %v", err)
	}
	if err := repo.Instructor.AssignToCourse(ctx, "i2", "c1"); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("二次分配期望 ErrConflict，实际: %v", err)
	}

	// 学生选课并录得挂科成绩
	if err := repo.Student.AddCourse(ctx, "s1", "c1", 45, "FF"); err != nil {
		t.Fatalf("选课应成功: %v", err)
	}

	// 授课教师按占位 ID 创建补考
	if err := repo.ResitExam.CreateByInstructor(ctx, "r1", "c1", "数据结构补考", "计算机学院", "i1", []string{"FF", "DD"}); err != nil {
		t.Fatalf("创建补考应成功: %v", err)
	}

	// FF 在允许范围内，报名通过
	if err := repo.Student.AddResitExam(ctx, "s1", "r1"); err != nil {
		t.Fatalf("报名补考应成功: %v", err)
	}

	// 补考后录入新成绩
	if err := repo.ResitExam.UpdateStudentResult(ctx, "s1", "r1", 65, "DD"); err != nil {
		t.Fatalf("录入补考成绩应成功: %v", err)
	}

	res, err := repo.ResitExam.StudentResult(ctx, "s1", "r1")
	if err != nil {
		t.Fatalf("查询补考成绩应成功: %v", err)
	}
	if res.Grade != 65 || res.GradeLetter != "DD" {
		t.Errorf("期望补考成绩 65/DD，实际=%v/%s", res.Grade, res.GradeLetter)
	}

	// 成绩单视图应同时呈现原始成绩与补考结果
	details, err := repo.Student.CourseDetails(ctx, "s1")
	if err != nil || len(details) != 1 {
		t.Fatalf("成绩单视图不符: %v, err=%v", details, err)
	}
	if details[0].GradeLetter != "FF" || details[0].ResitResult == nil || details[0].ResitResult.GradeLetter != "DD" {
		t.Errorf("成绩单字段不符: %+v", details[0])
	}
}
