package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dom/touchline-tactician/internal/domain"
	"github.com/dom/touchline-tactician/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// CoachBuilder creates test coaches with a builder pattern
type CoachBuilder struct {
	displayName string
	password    string
}

// NewCoachBuilder creates a new CoachBuilder with default values
func NewCoachBuilder() *CoachBuilder {
	return &CoachBuilder{
		displayName: fmt.Sprintf("coach_%s", uuid.New().String()[:8]),
		password:    "testpassword123",
	}
}

// WithDisplayName sets the display name
func (b *CoachBuilder) WithDisplayName(name string) *CoachBuilder {
	b.displayName = name
	return b
}

// WithPassword sets the password
func (b *CoachBuilder) WithPassword(password string) *CoachBuilder {
	b.password = password
	return b
}

// Build stores the coach and returns it with the raw password
func (b *CoachBuilder) Build(t *testing.T, repo repository.CoachRepository) (*domain.Coach, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	coach := &domain.Coach{
		ID:           uuid.New(),
		DisplayName:  b.displayName,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := repo.Create(context.Background(), coach); err != nil {
		t.Fatalf("failed to create coach: %v", err)
	}

	return coach, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	Coach struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
	} `json:"coach"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// BuildAndAuthenticate registers the coach via the API and returns it with
// an access token
func (b *CoachBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.Coach, string) {
	t.Helper()

	reqBody := map[string]string{
		"displayName": b.displayName,
		"password":    b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register coach: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	coachID, _ := uuid.Parse(authResp.Coach.ID)
	coach := &domain.Coach{
		ID:          coachID,
		DisplayName: authResp.Coach.DisplayName,
	}

	return coach, authResp.AccessToken
}

// PlanFields turns a plan into the loose mapping an API caller would send.
func PlanFields(t *testing.T, plan *domain.TacticalPlan) map[string]any {
	t.Helper()

	data, err := json.Marshal(plan)
	if err != nil {
		t.Fatalf("failed to marshal plan: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("failed to unmarshal plan: %v", err)
	}
	return fields
}
