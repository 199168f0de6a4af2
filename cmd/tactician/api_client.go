package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL + "/api/v1",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Response types matching backend

type Coach struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type AuthResponse struct {
	Coach        Coach  `json:"coach"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type PlanSummary struct {
	ID         string `json:"id"`
	PlanID     string `json:"planId"`
	Name       string `json:"name"`
	Formation  string `json:"formation"`
	Players    int    `json:"players"`
	ModifiedAt string `json:"modifiedAt"`
}

type CreatedPlan struct {
	Filename string   `json:"filename"`
	Warnings []string `json:"warnings"`
	Plan     struct {
		PlanID string `json:"plan_id"`
		Name   string `json:"name"`
	} `json:"plan"`
}

type Report struct {
	Valid   bool     `json:"valid"`
	Issues  []string `json:"issues"`
	Message string   `json:"message"`
}

// ValidationResult holds either one report or, for "all", one per check.
type ValidationResult struct {
	Report
	Reports map[string]Report `json:"reports"`
}

// RegisterCoach creates a throwaway coach account
func (c *APIClient) RegisterCoach(baseName string) (*Coach, string, error) {
	displayName := fmt.Sprintf("%s_%d", baseName, time.Now().UnixNano()%100000)

	body := map[string]string{
		"displayName": displayName,
		"password":    "tactician123",
	}

	resp, err := c.post("/auth/register", body, "")
	if err != nil {
		return nil, "", fmt.Errorf("register request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", statusError("register", resp)
	}

	var result AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, "", fmt.Errorf("failed to decode response: %w", err)
	}

	return &result.Coach, result.AccessToken, nil
}

// ListPlans fetches every stored plan
func (c *APIClient) ListPlans() ([]PlanSummary, error) {
	resp, err := c.get("/plans", "")
	if err != nil {
		return nil, fmt.Errorf("list plans request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("list plans", resp)
	}

	var result struct {
		Plans []PlanSummary `json:"plans"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return result.Plans, nil
}

// CreatePlan stores a plan. plan may be a decoded mapping or a plan value.
func (c *APIClient) CreatePlan(token string, plan any, filename string) (*CreatedPlan, error) {
	body := map[string]any{
		"plan":     plan,
		"filename": filename,
	}

	resp, err := c.post("/plans", body, token)
	if err != nil {
		return nil, fmt.Errorf("create plan request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, statusError("create plan", resp)
	}

	var created CreatedPlan
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &created, nil
}

// Validate runs one check, or "all", against any plan reference
func (c *APIClient) Validate(check string, ref any) (*ValidationResult, error) {
	resp, err := c.post("/validate/"+url.PathEscape(check), map[string]any{"ref": ref}, "")
	if err != nil {
		return nil, fmt.Errorf("validate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("validate", resp)
	}

	var result ValidationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

// Board fetches the rendered board for a stored plan
func (c *APIClient) Board(ref, format string) (string, error) {
	resp, err := c.get("/plans/"+url.PathEscape(ref)+"/board?format="+url.QueryEscape(format), "")
	if err != nil {
		return "", fmt.Errorf("board request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", statusError("board", resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return string(body), nil
}

func statusError(op string, resp *http.Response) error {
	bodyBytes, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("%s failed (status %d): %s", op, resp.StatusCode, bytes.TrimSpace(bodyBytes))
}

func (c *APIClient) get(path string, token string) (*http.Response, error) {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.httpClient.Do(req)
}

func (c *APIClient) post(path string, body interface{}, token string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest("POST", c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}
