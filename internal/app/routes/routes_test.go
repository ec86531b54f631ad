package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/academictwin/internal/app/controllers"
	"github.com/yigit/academictwin/internal/app/models/dto"
	"github.com/yigit/academictwin/internal/app/services"
	"github.com/yigit/academictwin/internal/middleware"
	"github.com/yigit/academictwin/internal/pkg/apperrors"
	"github.com/yigit/academictwin/internal/pkg/auth"
	"github.com/yigit/academictwin/internal/pkg/validation"
	"github.com/yigit/academictwin/internal/simulation"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validation.RegisterGinValidators(); err != nil {
		panic(err)
	}
}

// studentStub answers GetStudentByID for id 1 only and records creations.
type studentStub struct {
	services.StudentService
	created int
}

func (s *studentStub) CreateStudent(context.Context, *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	s.created++
	return &dto.StudentResponse{ID: 1}, nil
}

func (s *studentStub) GetStudentByID(_ context.Context, id int64) (*dto.StudentResponse, error) {
	if id != 1 {
		return nil, apperrors.ErrStudentNotFound
	}
	return &dto.StudentResponse{ID: 1}, nil
}

type optimizerStub struct {
	services.OptimizationService
}

func (optimizerStub) Optimize(context.Context, *dto.OptimizeRequest) (*simulation.OptimizationResult, error) {
	return &simulation.OptimizationResult{}, nil
}

func newRouter(t *testing.T, authMiddleware *middleware.AuthMiddleware, rps float64) (*gin.Engine, *studentStub) {
	t.Helper()
	students := &studentStub{}
	router := gin.New()
	SetupRouter(router,
		controllers.NewHealthController(nil),
		controllers.NewStudentController(students),
		controllers.NewCourseController(nil),
		controllers.NewSimulationController(nil),
		controllers.NewScenarioController(optimizerStub{}),
		authMiddleware,
		middleware.NewLimiter(rps, 1),
	)
	return router, students
}

func do(r http.Handler, method, path, body, token string) int {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestSetupRouter_Public(t *testing.T) {
	r, students := newRouter(t, nil, 0)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ping", "", ""))
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/v1/health", "", ""))
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/v1/students/1", "", ""))
	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/v1/students", `{"name":"Ada","email":"ada@example.edu"}`, ""))
	assert.Equal(t, 1, students.created)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/v1/scenarios/optimize", `{"studentId":1}`, ""))
	}
}

func TestSetupRouter_Guarded(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "s3cret", AccessTokenExp: time.Hour, TokenIssuer: "test"})
	r, _ := newRouter(t, middleware.NewAuthMiddleware(jwtService), 0)

	token, _, err := jwtService.GenerateToken(1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/v1/students", `{"name":"Ada","email":"ada@example.edu"}`, ""))
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/v1/students/1", "", ""))
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/v1/students/1", "", token))
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/v1/health", "", ""))
}

func TestSetupRouter_OptimizeRateLimited(t *testing.T) {
	r, _ := newRouter(t, nil, 0.001)

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/v1/scenarios/optimize", `{"studentId":1}`, ""))
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/api/v1/scenarios/optimize", `{"studentId":1}`, ""))
}
