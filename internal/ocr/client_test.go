package ocr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-key", zap.NewNop())
	c.endpoint = srv.URL
	c.http = srv.Client()
	return c
}

func TestParseImage_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "test-key", r.PostFormValue("apikey"))
		assert.Equal(t, "2", r.PostFormValue("OCREngine"))
		assert.Contains(t, r.PostFormValue("base64Image"), "data:image/jpeg;base64,")

		w.Write([]byte(`{"ParsedResults":[{"ParsedText":"VIN: 1HGCM82633A104352"}],"OCRExitCode":1}`))
	})

	text, err := client.ParseImage(context.Background(), "aW1n", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "VIN: 1HGCM82633A104352", text)
}

func TestParseImage_RateLimitedByExitCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"IsErroredOnProcessing":true,"OCRExitCode":6,"ErrorMessage":["You exceeded the plan limit"]}`))
	})

	_, err := client.ParseImage(context.Background(), "aW1n", "image/jpeg")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestParseImage_RateLimitedByStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.ParseImage(context.Background(), "aW1n", "image/jpeg")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestParseImage_ProcessingError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"IsErroredOnProcessing":true,"OCRExitCode":3,"ErrorMessage":"Unable to recognize the file type"}`))
	})

	_, err := client.ParseImage(context.Background(), "aW1n", "image/jpeg")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRateLimited)
	assert.Contains(t, err.Error(), "Unable to recognize")
}

func TestParseImage_EmptyResult(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ParsedResults":[],"OCRExitCode":1}`))
	})

	text, err := client.ParseImage(context.Background(), "aW1n", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "", text)
}
