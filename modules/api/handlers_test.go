package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestTaskErrorResponse(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "missing title",
			err:         errors.New("task title is required"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "bad_request",
			wantMessage: "Task title is required",
		},
		{
			name:       "invalid status",
			err:        errors.New("invalid task status"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "bad_request",
		},
		{
			name:       "invalid priority",
			err:        errors.New("invalid task priority"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "bad_request",
		},
		{
			name:        "ownership rejection",
			err:         errors.New("not authorized to access this task"),
			wantStatus:  http.StatusUnauthorized,
			wantCode:    "unauthorized",
			wantMessage: "Not authorized",
		},
		{
			name:        "missing task",
			err:         errors.New("task not found"),
			wantStatus:  http.StatusNotFound,
			wantCode:    "not_found",
			wantMessage: "Task not found",
		},
		{
			name:       "wrapped service error still matches",
			err:        fmt.Errorf("service call failed: %w", errors.New("task not found")),
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
		{
			name:        "storage failure is a generic 500",
			err:         errors.New("failed to find tasks: database is locked"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "internal_error",
			wantMessage: "An internal error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := taskErrorResponse(tt.err)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if resp.Error != tt.wantCode {
				t.Errorf("code = %q, want %q", resp.Error, tt.wantCode)
			}
			if tt.wantMessage != "" && resp.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", resp.Message, tt.wantMessage)
			}
		})
	}
}
