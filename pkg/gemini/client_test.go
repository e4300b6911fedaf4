package gemini

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateContent(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantErr  string
		wantText string
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body: `{
				"candidates": [{
					"content": {"role": "model", "parts": [{"text": "Hello "}, {"text": "world"}]},
					"finishReason": "STOP",
					"safetyRatings": [{"category": "HARM_CATEGORY_HATE_SPEECH", "probability": "NEGLIGIBLE"}]
				}],
				"usageMetadata": {"promptTokenCount": 12, "candidatesTokenCount": 4, "totalTokenCount": 16}
			}`,
			wantText: "Hello world",
		},
		{
			name:    "quota_exceeded",
			status:  http.StatusTooManyRequests,
			body:    `{"error": {"message": "quota exceeded"}}`,
			wantErr: "unexpected status 429",
		},
		{
			name:    "malformed_response",
			status:  http.StatusOK,
			body:    `{not json`,
			wantErr: "unmarshal response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient("test-key", WithBaseURL(srv.URL))

			resp, err := client.GenerateContent(context.Background(), GenerateContentRequest{
				Contents: []Content{{Role: "user", Parts: []Part{{Text: "Hi"}}}},
			})

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, resp)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, tt.wantText, resp.Text())
			require.NotNil(t, resp.UsageMetadata)
			assert.Equal(t, 12, resp.UsageMetadata.PromptTokenCount)
		})
	}
}

func TestGenerateContent_ModelOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.5-pro:generateContent", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	client := NewClient("k", WithBaseURL(srv.URL), WithModel("gemini-2.5-pro"))
	_, err := client.GenerateContent(context.Background(), GenerateContentRequest{})
	require.NoError(t, err)
}

func TestOptions_EmptyValuesKeepDefaults(t *testing.T) {
	c, ok := NewClient("k", WithBaseURL(""), WithModel("")).(*httpClient)
	require.True(t, ok)

	assert.Equal(t, defaultBaseURL, c.baseURL)
	assert.Equal(t, defaultModel, c.model)
}

func TestSafetyConfidence(t *testing.T) {
	tests := []struct {
		name string
		resp GenerateContentResponse
		want float64
	}{
		{
			name: "no_candidates",
			resp: GenerateContentResponse{},
			want: 0.75,
		},
		{
			name: "no_ratings",
			resp: GenerateContentResponse{Candidates: []Candidate{{}}},
			want: 0.75,
		},
		{
			name: "worst_grade_wins",
			resp: GenerateContentResponse{Candidates: []Candidate{{
				SafetyRatings: []SafetyRating{
					{Category: "A", Probability: "NEGLIGIBLE"},
					{Category: "B", Probability: "MEDIUM"},
					{Category: "C", Probability: "LOW"},
				},
			}}},
			want: 0.6,
		},
		{
			name: "unknown_grade_ignored",
			resp: GenerateContentResponse{Candidates: []Candidate{{
				SafetyRatings: []SafetyRating{
					{Category: "A", Probability: "SOMETIMES"},
					{Category: "B", Probability: "negligible"},
				},
			}}},
			want: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.resp.SafetyConfidence(), 1e-9)
		})
	}
}

func TestText_Empty(t *testing.T) {
	var resp GenerateContentResponse
	assert.Empty(t, resp.Text())
}
