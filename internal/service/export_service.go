package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"resit-portal/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoStudents   = errors.New("该补考暂无报名学生")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出补考成绩单为 Excel (.xlsx)，每场补考一个文件
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - 行：报名学生（按学号排序）；列：学号 / 姓名 / 课程原成绩 / 补考成绩
type ExportService interface {
	// ExportResitResults 导出某场补考的成绩单
	ExportResitResults(ctx context.Context, resitExamID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportResitResults(ctx context.Context, resitExamID string) (*bytes.Buffer, string, error) {
	// 1. 查询补考
	exam, err := s.repo.ResitExam.GetByID(ctx, resitExamID)
	if err != nil {
		return nil, "", err
	}
	if len(exam.Students) == 0 {
		return nil, "", ErrExportNoStudents
	}

	// 2. 逐个学生收集行数据
	type rowDef struct {
		studentID   string
		name        string
		courseGrade string
		resitGrade  string
	}
	rows := make([]rowDef, 0, len(exam.Students))

	for _, sid := range exam.Students {
		rd := rowDef{studentID: sid, courseGrade: "-", resitGrade: "未录入"}

		if stu, err := s.repo.Student.GetByID(ctx, sid); err == nil {
			rd.name = stu.Name
		}
		if g, err := s.repo.Student.CourseGrade(ctx, sid, exam.CourseID); err == nil {
			rd.courseGrade = fmt.Sprintf("%.1f (%s)", g.Grade, g.GradeLetter)
		}
		if res, err := s.repo.ResitExam.StudentResult(ctx, sid, resitExamID); err == nil {
			rd.resitGrade = fmt.Sprintf("%.1f (%s)", res.Grade, res.GradeLetter)
		}

		rows = append(rows, rd)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].studentID < rows[j].studentID })

	// 3. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "补考成绩"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	// 设置列宽
	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "B", 16)
	f.SetColWidth(sheetName, "C", "D", 18)

	// 样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — 补考成绩单", exam.Name))
	f.MergeCell(sheetName, "A1", "D1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	row := 2
	f.SetCellValue(sheetName, cell("A", row), "学号")
	f.SetCellValue(sheetName, cell("B", row), "姓名")
	f.SetCellValue(sheetName, cell("C", row), "课程原成绩")
	f.SetCellValue(sheetName, cell("D", row), "补考成绩")

	// 数据行
	row = 3
	for _, rd := range rows {
		f.SetCellValue(sheetName, cell("A", row), rd.studentID)
		f.SetCellValue(sheetName, cell("B", row), rd.name)
		f.SetCellValue(sheetName, cell("C", row), rd.courseGrade)
		f.SetCellValue(sheetName, cell("D", row), rd.resitGrade)
		row++
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("补考成绩_%s.xlsx", exam.ID)
	return buf, filename, nil
}

// ── 辅助函数 ──

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
