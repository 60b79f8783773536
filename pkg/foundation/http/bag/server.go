package bag

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const httpPrefix = "HTTP_"

// Server holds server and execution environment variables, named the way a CGI host names them.
type Server struct {
	*Parameters
}

// NewServer wraps the server variables in m.
func NewServer(m map[string]any) *Server {
	return &Server{Parameters: NewParameters(m)}
}

// Headers extracts the transport headers carried by the server variables. A header Foo-Bar is
// stored as HTTP_FOO_BAR; the content headers are stored without the prefix.
func (s *Server) Headers() map[string]any {
	headers := make(map[string]any)

	for _, k := range s.Keys() {
		v := s.values[k]

		switch {
		case strings.HasPrefix(k, httpPrefix) && len(k) > len(httpPrefix):
			headers[k[len(httpPrefix):]] = v
		case k == "CONTENT_TYPE", k == "CONTENT_LENGTH", k == "CONTENT_MD5":
			headers[k] = v
		}
	}

	if user, ok := s.values["PHP_AUTH_USER"]; ok {
		if _, exists := headers["AUTHORIZATION"]; !exists {
			pw := s.GetString("PHP_AUTH_PW", "")
			creds := fmt.Sprintf("%v:%s", user, pw)
			headers["AUTHORIZATION"] = "Basic " + base64.StdEncoding.EncodeToString([]byte(creds))
		}
	}

	return headers
}

// Clone returns an independent copy of the server variables.
func (s *Server) Clone() *Server {
	return &Server{Parameters: s.Parameters.Clone()}
}
