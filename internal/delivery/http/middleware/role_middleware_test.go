package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"hospital-management-api/internal/domain/entity"
)

func requestWithRole(roleID int) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/test", nil)
	ctx := context.WithValue(req.Context(), RoleIDKey, roleID)
	return req.WithContext(ctx)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []int
		roleID     int
		wantStatus int
	}{
		{"admin allowed on admin route", []int{entity.RoleIDAdmin}, entity.RoleIDAdmin, http.StatusOK},
		{"doctor rejected on admin route", []int{entity.RoleIDAdmin}, entity.RoleIDDoctor, http.StatusForbidden},
		{"patient rejected on admin route", []int{entity.RoleIDAdmin}, entity.RoleIDPatient, http.StatusForbidden},
		{"doctor allowed on admin-or-doctor route", []int{entity.RoleIDAdmin, entity.RoleIDDoctor}, entity.RoleIDDoctor, http.StatusOK},
		{"patient rejected on admin-or-doctor route", []int{entity.RoleIDAdmin, entity.RoleIDDoctor}, entity.RoleIDPatient, http.StatusForbidden},
		{"patient allowed on patient route", []int{entity.RoleIDPatient}, entity.RoleIDPatient, http.StatusOK},
		{"admin rejected on patient route", []int{entity.RoleIDPatient}, entity.RoleIDAdmin, http.StatusForbidden},
		{"any role on empty allow-list", nil, entity.RoleIDPatient, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler := RequireRole(tt.allowed...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			handler.ServeHTTP(rec, requestWithRole(tt.roleID))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireRoleWithoutContext(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/test", nil)

	RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
