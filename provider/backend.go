package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bizpilot/config"
	"bizpilot/model"
)

const (
	roadmapPath = "/generate-roadmap"
	healthPath  = "/health"

	// maxResponseBytes bounds how much of a reply is read into memory.
	maxResponseBytes = 4 << 20
	// maxErrorBody is how much of a failed reply is kept for the error message.
	maxErrorBody = 200
)

type roadmapRequest struct {
	Idea           string `json:"idea"`
	Category       string `json:"category"`
	TargetAudience string `json:"target_audience"`
}

type roadmapResponse struct {
	Roadmap          *string  `json:"roadmap"`
	FeasibilityScore *float64 `json:"feasibility_score"`
}

// BackendProvider calls the BizPilot HTTP backend. The backend is stateless:
// follow-up questions are sent as a new request with the question in the idea
// field, so ResetSession has nothing to clear.
type BackendProvider struct {
	requestTimeout

	baseURL    string
	httpClient *http.Client
	tokenDelay time.Duration
}

// NewBackendProvider creates a backend provider for baseURL (default
// "http://localhost:8000"). tokenDelay paces the word-by-word replay.
func NewBackendProvider(baseURL string, tokenDelay time.Duration) (*BackendProvider, error) {
	if baseURL == "" {
		baseURL = config.DefaultBackendURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend URL %q: scheme must be http or https", baseURL)
	}
	if tokenDelay < 0 {
		tokenDelay = 0
	}

	return &BackendProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		tokenDelay: tokenDelay,
	}, nil
}

// Generate implements model.Provider.
func (p *BackendProvider) Generate(ctx context.Context, req model.GenerationRequest, callback model.StreamCallback) error {
	body := roadmapRequest{Idea: req.Prompt}
	if req.Idea != nil && !req.FollowUp {
		body = roadmapRequest{
			Idea:           req.Idea.Idea,
			Category:       req.Idea.Category,
			TargetAudience: req.Idea.Audience,
		}
	}

	roadmap, err := p.fetchRoadmap(ctx, body)
	if err != nil {
		return err
	}

	// the replay runs on the caller's context: a reset stops it, the
	// request timeout does not
	return typewrite(ctx, roadmap, p.tokenDelay, callback)
}

// fetchRoadmap performs the POST, bounded by the request timeout.
func (p *BackendProvider) fetchRoadmap(ctx context.Context, body roadmapRequest) (string, error) {
	ctx, cancel := p.bound(ctx)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+roadmapPath, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", &model.TransportError{Op: "POST " + roadmapPath, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &model.TransportError{Op: "read " + roadmapPath, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &model.ProtocolError{StatusCode: resp.StatusCode, Body: truncateBody(raw)}
	}

	var out roadmapResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", &model.ProtocolError{Err: err}
	}
	if out.Roadmap == nil {
		return "", &model.ProtocolError{Err: errors.New("response has no roadmap field")}
	}

	if out.FeasibilityScore != nil {
		config.DebugLog.Infof("[Backend] roadmap received in %s (%d bytes, feasibility score %.1f)",
			time.Since(start).Round(time.Millisecond), len(*out.Roadmap), *out.FeasibilityScore)
	} else {
		config.DebugLog.Infof("[Backend] roadmap received in %s (%d bytes)", time.Since(start).Round(time.Millisecond), len(*out.Roadmap))
	}

	return *out.Roadmap, nil
}

func truncateBody(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}

// ResetSession implements model.Provider. The backend keeps no session.
func (p *BackendProvider) ResetSession() {}

func (p *BackendProvider) Name() string { return string(ProviderTypeBackend) }

// GetModel returns "": the backend chooses its own model.
func (p *BackendProvider) GetModel() string { return "" }

func (p *BackendProvider) BaseURL() string { return p.baseURL }

// Ping implements model.Provider via GET /health.
func (p *BackendProvider) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+healthPath, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return &model.TransportError{Op: "GET " + healthPath, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &model.ProtocolError{StatusCode: resp.StatusCode}
	}
	return nil
}
