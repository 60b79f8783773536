package http

import (
	"bytes"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
)

const (
	defaultMaxMemory = 32 << 20 // 32 MB

	contentTypeForm      = "application/x-www-form-urlencoded"
	contentTypeMultipart = "multipart/form-data"
)

// Globals is a snapshot of the per-request state a hosting environment makes available: the URL
// query, submitted form fields, cookies, uploaded files, server variables and the raw body.
type Globals struct {
	Query   map[string]any
	Form    map[string]any
	Cookies map[string]any
	Files   map[string]any
	Server  map[string]any
	Content []byte
}

// FromGlobals creates a request from a snapshot assembled by the calling framework.
// Attributes always start empty.
func FromGlobals(g Globals) *Request {
	return NewRequest(g.Query, g.Form, nil, g.Cookies, g.Files, g.Server, g.Content)
}

// GlobalsFromEnviron assembles a snapshot the way a CGI program sees its request: server
// variables from the KEY=VALUE environment, the query from QUERY_STRING, cookies from
// HTTP_COOKIE and url-encoded form fields from body.
func GlobalsFromEnviron(environ []string, body []byte) Globals {
	server := make(map[string]any, len(environ))

	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}

		server[k] = v
	}

	g := Globals{
		Server:  server,
		Query:   parseQuery(stringOf(server[ServerQueryString])),
		Cookies: parseCookies(stringOf(server["HTTP_COOKIE"])),
		Files:   map[string]any{},
		Form:    map[string]any{},
		Content: body,
	}

	if mediaType(stringOf(server["CONTENT_TYPE"])) == contentTypeForm {
		g.Form = parseQuery(string(body))
	}

	return g
}

// FromHTTPRequest snapshots a net/http request. Server variables are synthesised the way a CGI
// host would report them for a front controller at scriptName, and gorilla/mux route variables
// become attributes. The body of r stays readable afterwards.
func FromHTTPRequest(r *http.Request, scriptName string) (*Request, error) {
	if r == nil {
		return nil, ErrorNilRequest{}
	}

	content, err := readBody(r)
	if err != nil {
		return nil, ErrorMalformedBody{Err: err}
	}

	form := map[string]any{}
	files := map[string]any{}

	switch mediaType(r.Header.Get("Content-Type")) {
	case contentTypeForm:
		form = parseQuery(string(content))
	case contentTypeMultipart:
		if err := r.ParseMultipartForm(defaultMaxMemory); err != nil {
			return nil, ErrorMalformedBody{Err: err}
		}

		form = fromValues(r.MultipartForm.Value)

		for k, v := range r.MultipartForm.File {
			files[k] = v
		}

		r.Body = io.NopCloser(bytes.NewReader(content))
	}

	attributes := make(map[string]any)
	for k, v := range mux.Vars(r) {
		attributes[k] = v
	}

	cookies := make(map[string]any)
	for _, c := range r.Cookies() {
		cookies[c.Name] = c.Value
	}

	return NewRequest(fromValues(r.URL.Query()), form, attributes, cookies, files, serverVars(r, scriptName), content), nil
}

func serverVars(r *http.Request, scriptName string) map[string]any {
	scheme := "http"

	switch {
	case r.TLS != nil:
		scheme = "https"
	case r.Header.Get("X-Forwarded-Proto") != "":
		scheme = strings.ToLower(r.Header.Get("X-Forwarded-Proto"))
	}

	server := map[string]any{
		ServerRequestMethod: r.Method,
		ServerScriptName:    scriptName,
		ServerSelf:          scriptName + r.URL.Path,
		ServerRequestURI:    r.URL.RequestURI(),
		ServerQueryString:   r.URL.RawQuery,
		ServerRequestScheme: scheme,
		"SERVER_PROTOCOL":   r.Proto,
		"REMOTE_ADDR":       r.RemoteAddr,
		"HTTP_HOST":         r.Host,
	}

	if r.TLS != nil {
		server[ServerHTTPS] = "on"
	}

	for name, values := range r.Header {
		key := strings.ToUpper(strings.ReplaceAll(name, "-", "_"))

		switch key {
		case "CONTENT_TYPE", "CONTENT_LENGTH":
		default:
			key = "HTTP_" + key
		}

		server[key] = strings.Join(values, ", ")
	}

	return server
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}

	content, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	r.Body = io.NopCloser(bytes.NewReader(content))

	return content, nil
}

func mediaType(contentType string) string {
	if contentType == "" {
		return ""
	}

	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}

	return mt
}

// parseQuery keeps whatever pairs parse; a malformed pair is dropped rather than failing the request.
func parseQuery(raw string) map[string]any {
	values, _ := url.ParseQuery(raw)
	return fromValues(values)
}

// fromValues flattens single values to a string and keeps repeated keys as []string.
func fromValues(values map[string][]string) map[string]any {
	m := make(map[string]any, len(values))

	for k, v := range values {
		if len(v) == 1 {
			m[k] = v[0]
			continue
		}

		m[k] = v
	}

	return m
}

func parseCookies(header string) map[string]any {
	cookies := make(map[string]any)
	if header == "" {
		return cookies
	}

	r := http.Request{Header: http.Header{"Cookie": {header}}}
	for _, c := range r.Cookies() {
		cookies[c.Name] = c.Value
	}

	return cookies
}

func stringOf(v any) string {
	s, _ := v.(string)
	return s
}
