package adapter

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kasicash/kasi/internal/domain/port"
)

// Compile-time interface checks.
var (
	_ port.FaceMatcher = (*FaceMatchClient)(nil)
	_ port.FaceMatcher = (*FaceMatchStub)(nil)
)

// FaceMatchClient implements port.FaceMatcher against an external face
// comparison HTTP API. A request either succeeds once or fails; there is no
// retry logic.
type FaceMatchClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewFaceMatchClient creates a face comparison API client.
func NewFaceMatchClient(apiKey, baseURL string) *FaceMatchClient {
	return &FaceMatchClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type faceCompareRequest struct {
	SourceImage string `json:"source_image"`
	TargetImage string `json:"target_image"`
}

type faceCompareResponse struct {
	Result struct {
		IsIdentical bool    `json:"is_identical"`
		Confidence  float64 `json:"confidence"`
	} `json:"result"`
}

// Compare submits both images as base64 and returns the provider verdict.
func (c *FaceMatchClient) Compare(ctx context.Context, selfie, idPhoto []byte) (port.FaceMatchResult, error) {
	payload, err := json.Marshal(faceCompareRequest{
		SourceImage: base64.StdEncoding.EncodeToString(selfie),
		TargetImage: base64.StdEncoding.EncodeToString(idPhoto),
	})
	if err != nil {
		return port.FaceMatchResult{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/compare", bytes.NewReader(payload))
	if err != nil {
		return port.FaceMatchResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return port.FaceMatchResult{}, fmt.Errorf("face match API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return port.FaceMatchResult{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return port.FaceMatchResult{}, fmt.Errorf("face match API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result faceCompareResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return port.FaceMatchResult{}, fmt.Errorf("failed to parse response: %w", err)
	}

	return port.FaceMatchResult{
		Match:      result.Result.IsIdentical,
		Similarity: result.Result.Confidence,
	}, nil
}

// FaceMatchStub is a development/test matcher that approves every comparison
// with non-empty inputs.
type FaceMatchStub struct{}

// NewFaceMatchStub creates the stub matcher.
func NewFaceMatchStub() *FaceMatchStub {
	return &FaceMatchStub{}
}

// Compare returns a positive match for any non-empty pair of images.
func (s *FaceMatchStub) Compare(_ context.Context, selfie, idPhoto []byte) (port.FaceMatchResult, error) {
	if len(selfie) == 0 || len(idPhoto) == 0 {
		return port.FaceMatchResult{}, fmt.Errorf("both images are required")
	}
	return port.FaceMatchResult{Match: true, Similarity: 98.7}, nil
}
