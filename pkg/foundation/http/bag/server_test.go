package bag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServer_Headers(t *testing.T) {
	tests := []struct {
		desc    string
		server  map[string]any
		headers map[string]any
	}{
		{
			desc: "http prefixed and content variables",
			server: map[string]any{
				"HTTP_HOST":            "example.com",
				"HTTP_X_FORWARDED_FOR": "10.0.0.1",
				"CONTENT_TYPE":         "application/json",
				"CONTENT_LENGTH":       "12",
				"CONTENT_MD5":          "abc",
				"SCRIPT_NAME":          "/index.php",
				"HTTP_":                "ignored",
			},
			headers: map[string]any{
				"HOST":            "example.com",
				"X_FORWARDED_FOR": "10.0.0.1",
				"CONTENT_TYPE":    "application/json",
				"CONTENT_LENGTH":  "12",
				"CONTENT_MD5":     "abc",
			},
		},
		{
			desc:    "basic auth credentials",
			server:  map[string]any{"PHP_AUTH_USER": "user", "PHP_AUTH_PW": "pass"},
			headers: map[string]any{"AUTHORIZATION": "Basic dXNlcjpwYXNz"},
		},
		{
			desc:    "explicit authorization wins",
			server:  map[string]any{"PHP_AUTH_USER": "user", "HTTP_AUTHORIZATION": "Bearer t"},
			headers: map[string]any{"AUTHORIZATION": "Bearer t"},
		},
		{
			desc:    "no headers",
			server:  nil,
			headers: map[string]any{},
		},
	}

	for i, tc := range tests {
		s := NewServer(tc.server)

		assert.Equal(t, tc.headers, s.Headers(), "TEST[%d], Failed.\n%s", i, tc.desc)
	}
}

func TestServer_Clone(t *testing.T) {
	s := NewServer(map[string]any{"REQUEST_METHOD": "GET"})
	c := s.Clone()

	s.Set("REQUEST_METHOD", "POST")

	assert.Equal(t, "GET", c.GetString("REQUEST_METHOD", ""))
}
