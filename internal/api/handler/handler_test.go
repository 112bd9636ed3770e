package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resit-portal/internal/dto"
	"resit-portal/internal/service"
	apperrors "resit-portal/pkg/errors"
	"resit-portal/pkg/jwt"
	"resit-portal/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	logoutErr     error
	changePassErr error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Refresh(_ context.Context, _ string) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ *jwt.Claims) error {
	return m.logoutErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _, _, _, _ string) error {
	return m.changePassErr
}

// ── Mock StudentService ──

type mockStudentService struct {
	getResult *dto.StudentResponse
	getErr    error
}

func (m *mockStudentService) Create(_ context.Context, _ *dto.CreateStudentRequest, _ string) (*dto.StudentResponse, error) {
	return nil, nil
}
func (m *mockStudentService) GetByID(_ context.Context, _ string) (*dto.StudentResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockStudentService) List(_ context.Context) ([]dto.StudentResponse, error) { return nil, nil }
func (m *mockStudentService) Update(_ context.Context, _ string, _ *dto.UpdateStudentRequest, _ string) error {
	return nil
}
func (m *mockStudentService) Delete(_ context.Context, _, _ string) error { return nil }
func (m *mockStudentService) EnrollCourse(_ context.Context, _ string, _ *dto.EnrollCourseRequest) error {
	return nil
}
func (m *mockStudentService) UnenrollCourse(_ context.Context, _, _ string) error { return nil }
func (m *mockStudentService) EnrollResitExam(_ context.Context, _ string, _ *dto.EnrollResitExamRequest) error {
	return nil
}
func (m *mockStudentService) UnenrollResitExam(_ context.Context, _, _ string) error { return nil }
func (m *mockStudentService) Transcript(_ context.Context, _ string) ([]dto.StudentCourseDetailResponse, error) {
	return nil, nil
}

// ── 测试工具 ──

func performJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) *response.Response {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应不是合法 JSON: %v", err)
	}
	return &resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler
// ═══════════════════════════════════════════════════════════

func TestLoginHandler_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken: "tok",
			Account:     dto.AccountResponse{ID: "sec-001", Role: "secretary"},
		},
	}
	h := NewAuthHandler(mock)
	r := gin.New()
	r.POST("/login", h.Login)

	w := performJSON(r, http.MethodPost, "/login", dto.LoginRequest{
		Email: "secretary@uni.edu", Password: "pass-123456",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d body=%s", w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w)
	if resp.Code != 0 {
		t.Errorf("期望业务码 0，实际=%d", resp.Code)
	}
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	mock := &mockAuthService{loginErr: service.ErrInvalidCredentials}
	h := NewAuthHandler(mock)
	r := gin.New()
	r.POST("/login", h.Login)

	w := performJSON(r, http.MethodPost, "/login", dto.LoginRequest{
		Email: "secretary@uni.edu", Password: "wrong-pass-1",
	})

	if w.Code != http.StatusUnauthorized {
		t.Errorf("期望 401，实际=%d", w.Code)
	}
}

func TestLoginHandler_BadPayload(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})
	r := gin.New()
	r.POST("/login", h.Login)

	// 缺少 password 字段
	w := performJSON(r, http.MethodPost, "/login", gin.H{"email": "a@b.com"})

	if w.Code != http.StatusBadRequest {
		t.Errorf("期望 400，实际=%d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// 业务错误映射
// ═══════════════════════════════════════════════════════════

func TestHandleStoreError_Mapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"NotFound", fmt.Errorf("学生 x: %w", apperrors.ErrNotFound), http.StatusNotFound},
		{"Unauthorized", fmt.Errorf("秘书 y: %w", apperrors.ErrUnauthorized), http.StatusForbidden},
		{"Conflict", fmt.Errorf("重复: %w", apperrors.ErrConflict), http.StatusConflict},
		{"Validation", fmt.Errorf("等级不符: %w", apperrors.ErrValidation), http.StatusUnprocessableEntity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := &mockStudentService{getErr: tc.err}
			h := NewStudentHandler(mock)
			r := gin.New()
			r.GET("/students/:id", h.GetStudent)

			w := performJSON(r, http.MethodGet, "/students/stu-001", nil)
			if w.Code != tc.wantStatus {
				t.Errorf("期望 %d，实际=%d", tc.wantStatus, w.Code)
			}
		})
	}
}

func TestGetStudentHandler_Success(t *testing.T) {
	mock := &mockStudentService{
		getResult: &dto.StudentResponse{ID: "stu-001", Name: "张三"},
	}
	h := NewStudentHandler(mock)
	r := gin.New()
	r.GET("/students/:id", h.GetStudent)

	w := performJSON(r, http.MethodGet, "/students/stu-001", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d", w.Code)
	}
}
