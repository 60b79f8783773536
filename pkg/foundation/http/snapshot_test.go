package http

import (
	"bytes"
	"crypto/tls"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromGlobals(t *testing.T) {
	r := FromGlobals(Globals{
		Query:   map[string]any{"name": "123"},
		Form:    map[string]any{"name": "form", "title": "t"},
		Cookies: map[string]any{"sid": "abc"},
		Server:  frontController("/index.php/hello"),
		Content: []byte("title=t"),
	})

	assert.Equal(t, "123", r.Get("name", nil))
	assert.Equal(t, "t", r.Get("title", nil))
	assert.Equal(t, 0, r.Attributes.Count())
	assert.Equal(t, "abc", r.Cookies.Get("sid", nil))
	assert.Equal(t, "/hello", r.PathInfo())
	assert.Equal(t, "/index.php", r.BaseURL())
	assert.Equal(t, "www.example.com", r.Host())
	assert.Equal(t, []byte("title=t"), r.Content())
}

func TestGlobalsFromEnviron(t *testing.T) {
	environ := []string{
		"REQUEST_METHOD=POST",
		"SCRIPT_NAME=/index.php",
		"PHP_SELF=/index.php/hello/jj",
		"QUERY_STRING=name=123&tag=a&tag=b&bad=%zz",
		"CONTENT_TYPE=application/x-www-form-urlencoded; charset=utf-8",
		"HTTP_COOKIE=sid=abc; theme=dark",
		"HTTP_HOST=www.example.com",
		"REQUEST_SCHEME=https",
		"EQUALS_IN_VALUE=a=b",
		"NOVALUE",
		"=orphan",
	}

	g := GlobalsFromEnviron(environ, []byte("title=hello&name=form"))

	assert.Equal(t, "a=b", g.Server["EQUALS_IN_VALUE"])
	assert.NotContains(t, g.Server, "NOVALUE")
	assert.NotContains(t, g.Server, "")

	assert.Equal(t, map[string]any{"name": "123", "tag": []string{"a", "b"}}, g.Query)
	assert.Equal(t, map[string]any{"title": "hello", "name": "form"}, g.Form)
	assert.Equal(t, map[string]any{"sid": "abc", "theme": "dark"}, g.Cookies)

	r := FromGlobals(g)

	assert.Equal(t, "POST", r.Method())
	assert.Equal(t, "/hello/jj", r.PathInfo())
	assert.Equal(t, "123", r.Get("name", nil))
	assert.Equal(t, "hello", r.Get("title", nil))
	assert.Equal(t, "https", r.Scheme())
	assert.Equal(t, "www.example.com", r.Host())
}

func TestGlobalsFromEnviron_NonFormBody(t *testing.T) {
	g := GlobalsFromEnviron([]string{"CONTENT_TYPE=application/json"}, []byte(`{"a":1}`))

	assert.Empty(t, g.Form)
	assert.Empty(t, g.Query)
	assert.Empty(t, g.Cookies)
	assert.Equal(t, []byte(`{"a":1}`), g.Content)
}

func TestFromHTTPRequest_Query(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://www.example.com/hello/jj?name=123&tag=a&tag=b", http.NoBody)
	req.Header.Set("Accept-Language", "fr")
	req.Header.Set("X-Forwarded-Proto", "HTTPS")
	req.AddCookie(&http.Cookie{Name: "sid", Value: "abc"})

	r, err := FromHTTPRequest(req, "/index.php")
	require.NoError(t, err)

	assert.Equal(t, "GET", r.Method())
	assert.Equal(t, "/hello/jj", r.PathInfo())
	assert.Equal(t, "/index.php", r.BaseURL())
	assert.Equal(t, "/hello/jj?name=123&tag=a&tag=b", r.RequestURI())
	assert.Equal(t, "www.example.com", r.Host())
	assert.Equal(t, "https", r.Scheme())
	assert.Equal(t, "123", r.Get("name", nil))
	assert.Equal(t, []string{"a", "b"}, r.Get("tag", nil))
	assert.Equal(t, "abc", r.Cookies.Get("sid", nil))
	assert.Equal(t, "fr", r.Headers.Get("accept-language", ""))
	assert.Nil(t, r.Content())
}

func TestFromHTTPRequest_NoFrontController(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/hello", http.NoBody)

	r, err := FromHTTPRequest(req, "")
	require.NoError(t, err)

	assert.Equal(t, "/hello", r.PathInfo())
	assert.Equal(t, "", r.BaseURL())
	assert.Equal(t, "http", r.Scheme())
	assert.False(t, r.IsSecure())
}

func TestFromHTTPRequest_TLS(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "https://secure.example.com/", http.NoBody)
	req.TLS = &tls.ConnectionState{}

	r, err := FromHTTPRequest(req, "")
	require.NoError(t, err)

	assert.Equal(t, "https", r.Scheme())
	assert.Equal(t, "on", r.Server.Get(ServerHTTPS, nil))
	assert.True(t, r.IsSecure())
}

func TestFromHTTPRequest_FormBody(t *testing.T) {
	body := "title=hello&name=form"
	req := httptest.NewRequest(http.MethodPost, "/posts?name=query", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	r, err := FromHTTPRequest(req, "")
	require.NoError(t, err)

	assert.Equal(t, "hello", r.Get("title", nil))
	assert.Equal(t, "query", r.Get("name", nil), "query wins over the body")
	assert.Equal(t, "form", r.Form.Get("name", nil))
	assert.Equal(t, []byte(body), r.Content())
	assert.Equal(t, "application/x-www-form-urlencoded", r.Headers.Get("content-type", ""))
	assert.Equal(t, "application/x-www-form-urlencoded", r.Server.Get("CONTENT_TYPE", nil))

	rest, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, body, string(rest), "the body must stay readable")
}

func TestFromHTTPRequest_Multipart(t *testing.T) {
	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)

	require.NoError(t, w.WriteField("title", "hello"))

	fw, err := w.CreateFormFile("avatar", "avatar.png")
	require.NoError(t, err)

	_, err = fw.Write([]byte("png"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewReader(buf.Bytes()))
	req.Header.Set("Content-Type", w.FormDataContentType())

	r, err := FromHTTPRequest(req, "")
	require.NoError(t, err)

	assert.Equal(t, "hello", r.Get("title", nil))
	assert.Nil(t, r.Get("avatar", nil), "files are not part of the generic lookup")

	fh := r.Files.File("avatar")
	require.NotNil(t, fh)
	assert.Equal(t, "avatar.png", fh.Filename)
	assert.Equal(t, buf.Bytes(), r.Content())
}

func TestFromHTTPRequest_RouteVariables(t *testing.T) {
	var (
		got *Request
		err error
	)

	router := mux.NewRouter()
	router.HandleFunc("/users/{id}", func(_ http.ResponseWriter, req *http.Request) {
		got, err = FromHTTPRequest(req, "")
	})

	req := httptest.NewRequest(http.MethodPost, "/users/42?id=query", strings.NewReader("id=form"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	router.ServeHTTP(httptest.NewRecorder(), req)

	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "42", got.Attributes.Get("id", nil))
	assert.Equal(t, "query", got.Get("id", nil))

	got.Query.Remove("id")
	assert.Equal(t, "42", got.Get("id", nil), "route variables win over the body")
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}

func TestFromHTTPRequest_Errors(t *testing.T) {
	_, err := FromHTTPRequest(nil, "")
	require.ErrorIs(t, err, ErrorNilRequest{})

	req := httptest.NewRequest(http.MethodPost, "/", errReader{})

	_, err = FromHTTPRequest(req, "")

	var malformed ErrorMalformedBody

	require.True(t, errors.As(err, &malformed))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not multipart"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")

	_, err = FromHTTPRequest(req, "")
	require.ErrorAs(t, err, &malformed)
}
