package middleware

import "testing"

func TestIdempotencyCacheKeyScopedPerUser(t *testing.T) {
	t.Parallel()

	a := idempotencyCacheKey("a@example.com", "key-1")
	b := idempotencyCacheKey("b@example.com", "key-1")
	if a == b {
		t.Errorf("two users sharing key-1 must get distinct cache keys, both got %q", a)
	}
	if idempotencyCacheKey("a@example.com", "key-1") != a {
		t.Error("cache key must be stable for the same user and key")
	}
}

func TestShouldCacheResponse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		status int
		want   bool
	}{
		{status: 200, want: true},
		{status: 201, want: true},
		{status: 204, want: true},
		{status: 400, want: false}, // correctable, must stay retryable
		{status: 401, want: false},
		{status: 404, want: false},
		{status: 409, want: false},
		{status: 422, want: false},
		{status: 500, want: false},
		{status: 502, want: false},
	}

	for _, tc := range testCases {
		if got := shouldCacheResponse(tc.status); got != tc.want {
			t.Errorf("shouldCacheResponse(%d) = %v, want %v", tc.status, got, tc.want)
		}
	}
}
