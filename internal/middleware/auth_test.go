package middleware

import (
	"backend/internal/model"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newRouter(handler gin.HandlerFunc, mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", mw, handler)
	return r
}

func TestRequireRole_ValidToken(t *testing.T) {
	Init([]byte("secret"))

	signed := signToken(t, "secret", jwt.MapClaims{
		"sub":           "user-1",
		"role":          model.RoleAdmin,
		"department_id": "dept-1",
		"exp":           time.Now().Add(time.Hour).Unix(),
	})

	var gotUserID, gotRole, gotDept string
	router := newRouter(func(c *gin.Context) {
		gotUserID = c.GetString("userID")
		gotRole = c.GetString("userRole")
		gotDept = c.GetString("departmentID")
		c.Status(http.StatusOK)
	}, RequireRole(model.RoleAdmin))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotUserID != "user-1" || gotRole != model.RoleAdmin || gotDept != "dept-1" {
		t.Fatalf("context not populated: %q %q %q", gotUserID, gotRole, gotDept)
	}
}

func TestRequireRole_MissingHeader(t *testing.T) {
	Init([]byte("secret"))

	router := newRouter(func(c *gin.Context) {
		t.Fatalf("handler should not run")
	}, RequireRole(model.RoleAdmin))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_MalformedHeader(t *testing.T) {
	Init([]byte("secret"))

	router := newRouter(func(c *gin.Context) {
		t.Fatalf("handler should not run")
	}, RequireRole(model.RoleAdmin))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_WrongSecret(t *testing.T) {
	Init([]byte("secret"))

	signed := signToken(t, "other-secret", jwt.MapClaims{
		"sub":  "user-1",
		"role": model.RoleAdmin,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	router := newRouter(func(c *gin.Context) {
		t.Fatalf("handler should not run")
	}, RequireRole(model.RoleAdmin))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_ExpiredToken(t *testing.T) {
	Init([]byte("secret"))

	signed := signToken(t, "secret", jwt.MapClaims{
		"sub":  "user-1",
		"role": model.RoleAdmin,
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})

	router := newRouter(func(c *gin.Context) {
		t.Fatalf("handler should not run")
	}, RequireRole(model.RoleAdmin))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_InsufficientRole(t *testing.T) {
	Init([]byte("secret"))

	signed := signToken(t, "secret", jwt.MapClaims{
		"sub":  "user-1",
		"role": model.RoleStaff,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	router := newRouter(func(c *gin.Context) {
		t.Fatalf("handler should not run")
	}, RequireRole(model.RoleAdmin, model.RoleDepartmentHead))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireAuth_AnyRolePasses(t *testing.T) {
	Init([]byte("secret"))

	signed := signToken(t, "secret", jwt.MapClaims{
		"sub":  "user-1",
		"role": model.RoleStaff,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	router := newRouter(func(c *gin.Context) {
		c.Status(http.StatusOK)
	}, RequireAuth())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
