package judge_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/codedrill/internal/errors"
	"github.com/vytor/codedrill/internal/judge"
	"github.com/vytor/codedrill/internal/models"
)

const twoSum = `{
  "id": 42, "title": "Two Sum", "description": "d", "boilerplate": "pass", "difficulty": "easy",
  "test_cases": [
    {"test_case_id": 1, "input": [{"Key": "nums", "Value": [2,7]}, {"Key": "target", "Value": 9}], "output": [0,1]}
  ]
}`

func TestFetchProblem_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/problem/42", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(twoSum))
	}))
	defer srv.Close()

	c := judge.New(srv.URL+"/api/", time.Second)
	p, err := c.FetchProblem(context.Background(), "tok", "42")
	require.NoError(t, err)
	assert.Equal(t, "Two Sum", p.Title)
	require.Len(t, p.TestCases, 1)
	assert.Equal(t, 1, p.TestCases[0].ID)
}

func TestFetchProblem_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		code   string
	}{
		{"not found", http.StatusNotFound, `{"error":"nope"}`, errors.ErrCodeProblemNotFound},
		{"unauthorized", http.StatusUnauthorized, ``, errors.ErrCodeAuthRequired},
		{"forbidden", http.StatusForbidden, ``, errors.ErrCodeAuthRequired},
		{"server error", http.StatusInternalServerError, `boom`, errors.ErrCodeProblemLoadFailed},
		{"garbage body", http.StatusOK, `{"id":`, errors.ErrCodeProblemLoadFailed},
		{"missing title", http.StatusOK, `{"id": 1, "test_cases": []}`, errors.ErrCodeProblemLoadFailed},
		{"duplicate case ids", http.StatusOK, `{"id": 1, "title": "t", "test_cases": [{"test_case_id": 1, "output": 1}, {"test_case_id": 1, "output": 2}]}`, errors.ErrCodeProblemLoadFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := judge.New(srv.URL, time.Second).FetchProblem(context.Background(), "tok", "1")
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.code), "got %v", err)
			assert.Equal(t, 1, calls, "loads are never retried")
		})
	}
}

func TestFetchProblem_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := judge.New(url, time.Second).FetchProblem(context.Background(), "tok", "1")
	assert.True(t, errors.HasCode(err, errors.ErrCodeProblemLoadFailed))
}

func TestSubmit_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/submission", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "42", body["problemId"])
		assert.Equal(t, "print(1)", body["submission"])

		w.Write([]byte(`{"problemId":"42","passed":false,"tests":[{"testcaseid":1,"passed":false,"actualOutput":"3","expectedOutput":"5"}],"totalTimeTaken":12,"totalMemoryUsed":2048}`))
	}))
	defer srv.Close()

	res, err := judge.New(srv.URL, time.Second).Submit(context.Background(), "tok", models.Submission{ProblemID: "42", Code: "print(1)"})
	require.NoError(t, err)
	assert.False(t, res.Passed)
	require.Len(t, res.Tests, 1)
	assert.Equal(t, models.OutputText("3"), res.Tests[0].ActualOutput)
	assert.Equal(t, 12.0, res.TotalTimeTaken)
}

func TestSubmit_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		code   string
	}{
		{"unauthorized", http.StatusUnauthorized, errors.ErrCodeAuthRequired},
		{"bad gateway", http.StatusBadGateway, errors.ErrCodeTransportFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := judge.New(srv.URL, time.Second).Submit(context.Background(), "tok", models.Submission{ProblemID: "1"})
			assert.True(t, errors.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestSubmit_FillsMissingProblemID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"passed":true,"tests":[]}`))
	}))
	defer srv.Close()

	res, err := judge.New(srv.URL, time.Second).Submit(context.Background(), "tok", models.Submission{ProblemID: "9"})
	require.NoError(t, err)
	assert.Equal(t, models.ProblemID("9"), res.ProblemID)
}
