package middleware

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
)

// trace records entry and exit of a named middleware.
func trace(name string, log *[]string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*log = append(*log, name+">")
			next.ServeHTTP(w, r)
			*log = append(*log, "<"+name)
		})
	}
}

func TestChain(t *testing.T) {
	tests := []struct {
		name string
		mws  func(log *[]string) []Middleware
		want []string
	}{
		{
			name: "first runs outermost",
			mws: func(log *[]string) []Middleware {
				return []Middleware{trace("request_id", log), trace("auth", log)}
			},
			want: []string{"request_id>", "auth>", "handler", "<auth", "<request_id"},
		},
		{
			name: "empty",
			mws:  func(*[]string) []Middleware { return nil },
			want: []string{"handler"},
		},
		{
			name: "nil entries skipped",
			mws: func(log *[]string) []Middleware {
				return []Middleware{nil, trace("logger", log), nil}
			},
			want: []string{"logger>", "handler", "<logger"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log []string
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				log = append(log, "handler")
				w.WriteHeader(http.StatusNoContent)
			})

			rec := httptest.NewRecorder()
			Chain(tt.mws(&log)...)(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			if !slices.Equal(log, tt.want) {
				t.Errorf("call order = %v, want %v", log, tt.want)
			}
			if rec.Code != http.StatusNoContent {
				t.Errorf("expected status %d, got %d", http.StatusNoContent, rec.Code)
			}
		})
	}
}
