package repository

import (
	"context"
	"testing"
	"time"

	"resit-portal/internal/model"
)

// ── 测试夹具 ──

// newTestRepo 创建空仓储并预置一名教务秘书
func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo := NewRepository()
	err := repo.Secretary.Create(context.Background(), &model.Secretary{
		ID:    "sec-001",
		Name:  "教务秘书",
		Email: "secretary@uni.edu",
	})
	if err != nil {
		t.Fatalf("预置秘书失败: %v", err)
	}
	return repo
}

func seedStudent(t *testing.T, repo *Repository, id, name string) {
	t.Helper()
	err := repo.Student.Create(context.Background(), &model.Student{
		ID:         id,
		Name:       name,
		Email:      id + "@stu.uni.edu",
		Courses:    []string{},
		ResitExams: []string{},
		Audit:      model.Audit{CreatedAt: time.Now(), CreatedBy: "sec-001"},
	})
	if err != nil {
		t.Fatalf("预置学生 %s 失败: %v", id, err)
	}
}

func seedInstructor(t *testing.T, repo *Repository, id, name string) {
	t.Helper()
	err := repo.Instructor.Create(context.Background(), &model.Instructor{
		ID:         id,
		Name:       name,
		Email:      id + "@uni.edu",
		Courses:    []string{},
		ResitExams: []string{},
		Audit:      model.Audit{CreatedAt: time.Now(), CreatedBy: "sec-001"},
	})
	if err != nil {
		t.Fatalf("预置教师 %s 失败: %v", id, err)
	}
}

func seedCourse(t *testing.T, repo *Repository, id, name, resitExamID string) {
	t.Helper()
	err := repo.Course.Create(context.Background(), &model.Course{
		ID:          id,
		Name:        name,
		Department:  "计算机学院",
		ResitExamID: resitExamID,
		Students:    []string{},
		Audit:       model.Audit{CreatedAt: time.Now(), CreatedBy: "sec-001"},
	})
	if err != nil {
		t.Fatalf("预置课程 %s 失败: %v", id, err)
	}
}

// seedResitExam 走完整创建链路：分配教师 → 预关联占位 → 教师创建补考
func seedResitExam(t *testing.T, repo *Repository, examID, courseID, instructorID string, letters []string) {
	t.Helper()
	ctx := context.Background()
	if err := repo.Instructor.AssignToCourse(ctx, instructorID, courseID); err != nil {
		t.Fatalf("分配教师失败: %v", err)
	}
	if err := repo.ResitExam.CreateByInstructor(ctx, examID, courseID, "补考", "计算机学院", instructorID, letters); err != nil {
		t.Fatalf("创建补考失败: %v", err)
	}
}
