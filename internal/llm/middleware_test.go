package llm

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/edupath/internal/store"
)

// recordingRepo captures appended events. Other EventRepo methods are not
// used by the middleware.
type recordingRepo struct {
	store.EventRepo

	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return r.err
}

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{MaxAttempts: attempts, InitialWait: time.Millisecond, MaxWait: 5 * time.Millisecond, Multiplier: 2}
}

func TestWithLogging_RecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{
		Content: []byte(`{"reply":"ok"}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 3},
	})
	p := WithLogging(mock, repo, nil)

	ctx := WithPurpose(context.Background(), PurposeAdvice)
	_, err := p.Generate(ctx, Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "hello"}}, Schema: replySchema()})
	require.NoError(t, err)

	require.Len(t, repo.events, 1)
	ev := repo.events[0]
	assert.Equal(t, "mock", ev.Provider)
	assert.Equal(t, "mock", ev.Model)
	assert.Equal(t, PurposeAdvice, ev.Purpose)
	assert.True(t, ev.Success)
	assert.Equal(t, 12, ev.InputTokens)
	assert.Equal(t, 3, ev.OutputTokens)
	assert.Equal(t, `{"reply":"ok"}`, ev.ResponseBody)
	assert.Contains(t, ev.RequestBody, "[system]\nsys")
	assert.Contains(t, ev.RequestBody, "[user]\nhello")
	assert.Contains(t, ev.RequestBody, "[schema: test-reply]")
}

func TestWithLogging_RecordsFailure(t *testing.T) {
	repo := &recordingRepo{}
	p := WithLogging(NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{}}), repo, nil)

	_, err := p.Generate(context.Background(), Request{})
	require.Error(t, err)

	require.Len(t, repo.events, 1)
	assert.False(t, repo.events[0].Success)
	assert.Equal(t, "unknown", repo.events[0].Purpose)
	assert.Equal(t, "LLM provider unavailable", repo.events[0].ErrorMessage)
}

func TestWithLogging_RepoErrorIgnored(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(MockJSON(map[string]string{"reply": "ok"})), repo, nil)

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"reply":"ok"}`, string(resp.Content))
}

func TestWithLogging_NilRepo(t *testing.T) {
	p := WithLogging(NewMockProvider(MockJSON("x")), nil, nil)
	_, err := p.Generate(context.Background(), Request{})
	assert.NoError(t, err)
}

func TestWithRetry(t *testing.T) {
	ok := MockJSON(map[string]string{"reply": "ok"})

	tests := []struct {
		name      string
		responses []MockResponse
		attempts  int
		wantErr   bool
		wantCalls int
	}{
		{"success first try", []MockResponse{ok}, 3, false, 1},
		{"unavailable then success", []MockResponse{{Err: &ErrProviderUnavailable{}}, ok}, 3, false, 2},
		{"rate limited then success", []MockResponse{{Err: &ErrRateLimit{RetryAfter: time.Millisecond}}, ok}, 3, false, 2},
		{"gives up after max attempts", []MockResponse{{Err: &ErrProviderUnavailable{}}, {Err: &ErrProviderUnavailable{}}, {Err: &ErrProviderUnavailable{}}, ok}, 3, true, 3},
		{"invalid response retried once", []MockResponse{{Err: &ErrInvalidResponse{Err: errors.New("bad")}}, {Err: &ErrInvalidResponse{Err: errors.New("bad")}}, ok}, 3, true, 2},
		{"max tokens not retried", []MockResponse{{Err: &ErrMaxTokensExceeded{}}, ok}, 3, true, 1},
		{"single attempt", []MockResponse{{Err: &ErrProviderUnavailable{}}, ok}, 1, true, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mock := NewMockProvider(tc.responses...)
			p := WithRetry(mock, fastRetry(tc.attempts))

			_, err := p.Generate(context.Background(), Request{})
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.wantCalls, mock.CallCount())
		})
	}
}

func TestWithRetry_StopsOnCancel(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{}}, MockResponse{Err: &ErrProviderUnavailable{}})
	p := WithRetry(mock, RetryConfig{MaxAttempts: 3, InitialWait: time.Hour, MaxWait: time.Hour, Multiplier: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetryBackoff(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{MaxAttempts: 5, InitialWait: 100 * time.Millisecond, MaxWait: 300 * time.Millisecond, Multiplier: 2}}

	d := r.backoff(0, errors.New("x"))
	assert.InDelta(t, float64(100*time.Millisecond), float64(d), float64(20*time.Millisecond))

	d = r.backoff(4, errors.New("x"))
	assert.LessOrEqual(t, d, 360*time.Millisecond)
	assert.GreaterOrEqual(t, d, 240*time.Millisecond)

	d = r.backoff(0, &ErrRateLimit{RetryAfter: 7 * time.Second})
	assert.Equal(t, 7*time.Second, d)
}

// slowProvider blocks until its context ends.
type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowProvider) ModelID() string { return "slow" }

func TestWithTimeout(t *testing.T) {
	p := WithTimeout(slowProvider{}, 10*time.Millisecond)
	_, err := p.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "slow", ProviderName(p))
}

func TestWithTimeout_Disabled(t *testing.T) {
	inner := NewMockProvider()
	assert.Same(t, Provider(inner), WithTimeout(inner, 0))
}

func TestMockProvider_Strict(t *testing.T) {
	mock := NewMockProvider(MockJSON(map[string]int{"answer": 1}))
	mock.Strict = true

	_, err := mock.Generate(context.Background(), Request{Schema: replySchema()})
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestMockProvider_Exhausted(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var un *ErrProviderUnavailable
	assert.ErrorAs(t, err, &un)

	mock.AddResponse(MockJSON("later"))
	resp, err := mock.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, `"later"`, string(resp.Content))
	assert.Equal(t, 2, mock.CallCount())
}

func TestPurposeFrom(t *testing.T) {
	assert.Equal(t, "unknown", PurposeFrom(context.Background()))
	assert.Equal(t, "advice", PurposeFrom(WithPurpose(context.Background(), PurposeAdvice)))
}
