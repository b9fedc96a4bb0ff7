package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizpilot/model"
	"bizpilot/provider/testutil"
)

type requestLog struct {
	mu     sync.Mutex
	bodies []roadmapRequest
}

func (l *requestLog) all() []roadmapRequest {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]roadmapRequest(nil), l.bodies...)
}

// fakeBackend serves /generate-roadmap with handler and records request bodies.
func fakeBackend(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *requestLog) {
	t.Helper()
	log := &requestLog{}
	mux := http.NewServeMux()
	mux.HandleFunc("/generate-roadmap", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body roadmapRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		log.mu.Lock()
		log.bodies = append(log.bodies, body)
		log.mu.Unlock()
		handler(w, r)
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, log
}

func respondJSON(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func collect(t *testing.T, p *BackendProvider, req model.GenerationRequest) ([]string, error) {
	t.Helper()
	var fragments []string
	err := p.Generate(context.Background(), req, func(chunk string) error {
		fragments = append(fragments, chunk)
		return nil
	})
	return fragments, err
}

func TestBackendGenerateInitial(t *testing.T) {
	srv, log := fakeBackend(t, respondJSON(http.StatusOK, `{"roadmap":"Step 1 Step 2","feasibility_score":7.5}`))
	p, err := NewBackendProvider(srv.URL, 0)
	require.NoError(t, err)

	fragments, err := collect(t, p, model.NewInitialRequest(testutil.SampleIdea()))
	require.NoError(t, err)

	assert.Equal(t, []string{"Step ", "1 ", "Step ", "2 "}, fragments)
	bodies := log.all()
	require.Len(t, bodies, 1)
	assert.Equal(t, roadmapRequest{
		Idea:           "Organic tea delivery",
		Category:       "Food & Beverage",
		TargetAudience: "Urban professionals in Dhaka",
	}, bodies[0])
}

func TestBackendGenerateFollowUpSendsRawText(t *testing.T) {
	srv, log := fakeBackend(t, respondJSON(http.StatusOK, `{"roadmap":"Apply online.","feasibility_score":0}`))
	p, err := NewBackendProvider(srv.URL+"/", 0)
	require.NoError(t, err)

	_, err = collect(t, p, model.NewFollowUpRequest("How do I get a TIN?"))
	require.NoError(t, err)

	bodies := log.all()
	require.Len(t, bodies, 1)
	assert.Equal(t, roadmapRequest{Idea: "How do I get a TIN?"}, bodies[0])
}

func TestBackendGenerateEmptyRoadmap(t *testing.T) {
	srv, _ := fakeBackend(t, respondJSON(http.StatusOK, `{"roadmap":"   ","feasibility_score":1}`))
	p, err := NewBackendProvider(srv.URL, 0)
	require.NoError(t, err)

	fragments, err := collect(t, p, model.NewFollowUpRequest("q"))
	require.NoError(t, err)
	assert.Empty(t, fragments)
}

func TestBackendGenerateErrors(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
	}{
		{"server error", respondJSON(http.StatusInternalServerError, `{"detail":"Internal Server Error"}`), 500},
		{"validation error", respondJSON(http.StatusUnprocessableEntity, `{"detail":"field required"}`), 422},
		{"not json", respondJSON(http.StatusOK, `<html>proxy</html>`), 0},
		{"missing roadmap", respondJSON(http.StatusOK, `{"feasibility_score":3}`), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := fakeBackend(t, tt.handler)
			p, err := NewBackendProvider(srv.URL, 0)
			require.NoError(t, err)

			fragments, err := collect(t, p, model.NewInitialRequest(testutil.SampleIdea()))
			assert.Empty(t, fragments)

			var perr *model.ProtocolError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.wantStatus, perr.StatusCode)
		})
	}
}

func TestBackendGenerateTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	p, err := NewBackendProvider(url, 0)
	require.NoError(t, err)

	_, err = collect(t, p, model.NewInitialRequest(testutil.SampleIdea()))
	var terr *model.TransportError
	require.ErrorAs(t, err, &terr)
	assert.Contains(t, terr.Op, "/generate-roadmap")
}

// The scenario from the roadmap page: a backend failure surfaces as exactly one
// fallback fragment, one error and one completion.
func TestBackendFailureThroughGenerator(t *testing.T) {
	srv, _ := fakeBackend(t, respondJSON(http.StatusInternalServerError, `Internal Server Error`))
	p, err := NewBackendProvider(srv.URL, 0)
	require.NoError(t, err)

	var fragments []string
	var errs []error
	completed := 0
	model.NewGenerator(p).Generate(context.Background(), model.NewInitialRequest(testutil.SampleIdea()), model.Callbacks{
		OnStream:   func(chunk string) { fragments = append(fragments, chunk) },
		OnComplete: func() { completed++ },
		OnError:    func(err error) { errs = append(errs, err) },
	})

	assert.Equal(t, []string{model.FallbackMessage}, fragments)
	assert.Len(t, errs, 1)
	assert.Equal(t, 1, completed)
}

func TestBackendGenerateCancelledDuringReplay(t *testing.T) {
	srv, _ := fakeBackend(t, respondJSON(http.StatusOK, `{"roadmap":"one two three four five","feasibility_score":5}`))
	p, err := NewBackendProvider(srv.URL, 50*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var fragments []string
	err = p.Generate(ctx, model.NewFollowUpRequest("q"), func(chunk string) error {
		fragments = append(fragments, chunk)
		cancel()
		return nil
	})

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, []string{"one "}, fragments)
}

func TestBackendReplayOutlivesRequestTimeout(t *testing.T) {
	srv, _ := fakeBackend(t, respondJSON(http.StatusOK, `{"roadmap":"one two three four five","feasibility_score":5}`))
	p, err := NewBackendProvider(srv.URL, 20*time.Millisecond)
	require.NoError(t, err)
	// the whole replay takes about 100ms, five times the request timeout
	p.setRequestTimeout(20 * time.Millisecond)

	var fragments []string
	var errs []error
	model.NewGenerator(p).Generate(context.Background(), model.NewFollowUpRequest("q"), model.Callbacks{
		OnStream: func(chunk string) { fragments = append(fragments, chunk) },
		OnError:  func(err error) { errs = append(errs, err) },
	})

	assert.Empty(t, errs)
	assert.Equal(t, []string{"one ", "two ", "three ", "four ", "five "}, fragments)
	assert.NotContains(t, fragments, model.FallbackMessage)
}

func TestBackendRequestTimeout(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	srv, _ := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	p, err := NewBackendProvider(srv.URL, 0)
	require.NoError(t, err)
	p.setRequestTimeout(20 * time.Millisecond)

	_, err = collect(t, p, model.NewFollowUpRequest("q"))
	var te *model.TransportError
	require.ErrorAs(t, err, &te)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBackendPing(t *testing.T) {
	srv, _ := fakeBackend(t, respondJSON(http.StatusOK, `{}`))
	p, err := NewBackendProvider(srv.URL, 0)
	require.NoError(t, err)
	assert.NoError(t, p.Ping(context.Background()))

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()
	p, err = NewBackendProvider(down.URL, 0)
	require.NoError(t, err)

	var perr *model.ProtocolError
	require.ErrorAs(t, p.Ping(context.Background()), &perr)
	assert.Equal(t, http.StatusServiceUnavailable, perr.StatusCode)
}

func TestNewBackendProviderValidatesURL(t *testing.T) {
	_, err := NewBackendProvider("ftp://example.com", 0)
	assert.Error(t, err)

	p, err := NewBackendProvider("", -time.Second)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", p.BaseURL())
	assert.Equal(t, "backend", p.Name())
	assert.Empty(t, p.GetModel())
}
