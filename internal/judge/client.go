package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vytor/codedrill/internal/errors"
	"github.com/vytor/codedrill/internal/logger"
	"github.com/vytor/codedrill/internal/models"
)

// Client talks to the problem backend and the judge. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	validate   *validator.Validate
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (c *Client) FetchProblem(ctx context.Context, token string, id models.ProblemID) (*models.Problem, error) {
	log := logger.FromContext(ctx).WithPrefix("judge").WithField("problem_id", id)
	endpoint := fmt.Sprintf("%s/problem/%s", c.baseURL, url.PathEscape(string(id)))

	log.Debug("fetching problem from: %s", endpoint)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, errors.NewProblemLoadFailedError(id, err)
	}
	setBearer(req, token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch problem: %v", err)
		return nil, errors.NewProblemLoadFailedError(id, err)
	}
	defer resp.Body.Close()

	log.Debug("problem response received in %v, status=%d", time.Since(start), resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		log.Warn("backend rejected credential: status=%d", resp.StatusCode)
		return nil, errors.NewAuthenticationRequiredError("backend rejected the credential")
	case resp.StatusCode == http.StatusNotFound:
		log.Info("problem does not exist")
		return nil, errors.NewProblemNotFoundError(id)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("problem request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, errors.NewProblemLoadFailedError(id, fmt.Errorf("problem status %d: %s", resp.StatusCode, string(body)))
	}

	var problem models.Problem
	if err := json.NewDecoder(resp.Body).Decode(&problem); err != nil {
		log.Error("failed to decode problem response: %v", err)
		return nil, errors.NewProblemLoadFailedError(id, err)
	}
	if err := c.validate.Struct(problem); err != nil {
		log.Error("problem payload failed validation: %v", err)
		return nil, errors.NewProblemLoadFailedError(id, err)
	}
	if err := problem.Validate(); err != nil {
		log.Error("problem payload is inconsistent: %v", err)
		return nil, errors.NewProblemLoadFailedError(id, err)
	}

	log.Info("fetched problem %q with %d test cases", problem.Title, len(problem.TestCases))
	return &problem, nil
}

func (c *Client) Submit(ctx context.Context, token string, sub models.Submission) (*models.JudgeResult, error) {
	log := logger.FromContext(ctx).WithPrefix("judge").WithField("problem_id", sub.ProblemID)
	endpoint := c.baseURL + "/submission"

	payload, err := json.Marshal(sub)
	if err != nil {
		log.Error("failed to encode submission: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Debug("submitting %d bytes of code", len(sub.Code))
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, errors.NewTransportFailedError(err)
	}
	setBearer(req, token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to reach judge: %v", err)
		return nil, errors.NewTransportFailedError(err)
	}
	defer resp.Body.Close()

	log.Debug("judge response received in %v, status=%d", time.Since(start), resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		log.Warn("judge rejected credential: status=%d", resp.StatusCode)
		return nil, errors.NewAuthenticationRequiredError("judge rejected the credential")
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("submission failed: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, errors.NewTransportFailedError(fmt.Errorf("submission status %d: %s", resp.StatusCode, string(body)))
	}

	var result models.JudgeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Error("failed to decode judge result: %v", err)
		return nil, errors.NewTransportFailedError(err)
	}
	if result.ProblemID == "" {
		result.ProblemID = sub.ProblemID
	}

	log.Info("judge verdict passed=%t tests=%d runtime=%.0fms", result.Passed, len(result.Tests), result.TotalTimeTaken)
	return &result, nil
}

func setBearer(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}
