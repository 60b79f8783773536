// Package http provides the request abstraction of foundation: typed containers over the raw inputs of an
// HTTP request and the routing facts derived from them.
package http

import (
	"path"
	"strings"

	"foundation.dev/pkg/foundation/http/bag"
	"foundation.dev/pkg/foundation/session"
)

// Server variables the request derives its facts from.
const (
	ServerRequestMethod  = "REQUEST_METHOD"
	ServerScriptName     = "SCRIPT_NAME"
	ServerScriptFilename = "SCRIPT_FILENAME"
	ServerSelf           = "PHP_SELF"
	ServerRequestURI     = "REQUEST_URI"
	ServerRequestScheme  = "REQUEST_SCHEME"
	ServerQueryString    = "QUERY_STRING"
	ServerHTTPS          = "HTTPS"

	formatAttribute = "_format"
	defaultLocale   = "en"
)

// Request wraps the raw inputs of an incoming HTTP request. It is request scoped and not safe for
// concurrent use; reuse across requests must go through Initialize, see Pool.
type Request struct {
	// Query holds the URL query string parameters.
	Query *bag.Parameters
	// Form holds the parameters of a submitted request body.
	Form *bag.Parameters
	// Attributes holds values assigned while handling the request, such as route variables.
	Attributes *bag.Parameters
	Cookies    *bag.Parameters
	Files      *bag.Files
	// Server holds the server and execution environment variables.
	Server *bag.Server
	// Headers is derived from Server on initialization.
	Headers *bag.Headers

	content []byte

	pathInfo   lazy[string]
	requestURI lazy[string]
	baseURL    lazy[string]
	basePath   lazy[string]
	method     lazy[string]
	format     lazy[string]

	locale        string
	defaultLocale string
	session       session.Session
}

// NewRequest creates a request from explicit parameter values.
func NewRequest(query, form, attributes, cookies, files, server map[string]any, content []byte) *Request {
	r := &Request{defaultLocale: defaultLocale}
	r.Initialize(query, form, attributes, cookies, files, server, content)

	return r
}

// Initialize replaces every container and forgets all derived state, so an instance can be reused
// for another request.
func (r *Request) Initialize(query, form, attributes, cookies, files, server map[string]any, content []byte) {
	r.Query = bag.NewParameters(query)
	r.Form = bag.NewParameters(form)
	r.Attributes = bag.NewParameters(attributes)
	r.Cookies = bag.NewParameters(cookies)
	r.Files = bag.NewFiles(files)
	r.Server = bag.NewServer(server)
	r.Headers = bag.NewHeaders(r.Server.Headers())

	r.content = content

	r.pathInfo.reset()
	r.requestURI.reset()
	r.baseURL.reset()
	r.basePath.reset()
	r.method.reset()
	r.format.reset()
}

// Lookup searches the query, the attributes and the request body, in that order, and returns the
// first value found. Cookies, files and server variables are never consulted.
func (r *Request) Lookup(key string, deep bool) (any, bool) {
	if v, ok := r.Query.Lookup(key, deep); ok {
		return v, true
	}

	if v, ok := r.Attributes.Lookup(key, deep); ok {
		return v, true
	}

	if v, ok := r.Form.Lookup(key, deep); ok {
		return v, true
	}

	return nil, false
}

// Get returns the value of key from the query, the attributes or the request body, or def when
// none of them has it.
func (r *Request) Get(key string, def any) any {
	if v, ok := r.Lookup(key, false); ok {
		return v
	}

	return def
}

// GetDeep is Get with path lookup ("foo[bar]") into structured values.
func (r *Request) GetDeep(key string, def any) any {
	if v, ok := r.Lookup(key, true); ok {
		return v
	}

	return def
}

// Content returns the raw request body.
func (r *Request) Content() []byte {
	return r.content
}

// Method returns the request method exactly as the server reported it.
func (r *Request) Method() string {
	return r.method.get(func() string {
		return r.Server.GetString(ServerRequestMethod, "")
	})
}

// SetMethod overrides the request method.
func (r *Request) SetMethod(method string) {
	r.method.set(method)
}

// IsMethod compares the request method with m, ignoring case.
func (r *Request) IsMethod(m string) bool {
	return strings.EqualFold(r.Method(), m)
}

// PathInfo returns the path below the front controller script:
// "/index.php/hello" with script "/index.php" gives "/hello".
func (r *Request) PathInfo() string {
	return r.pathInfo.get(func() string {
		self := r.Server.GetString(ServerSelf, "")
		script := r.Server.GetString(ServerScriptName, "")

		return strings.TrimPrefix(self, script)
	})
}

// SetPathInfo overrides the path info.
func (r *Request) SetPathInfo(pathInfo string) {
	r.pathInfo.set(pathInfo)
}

// BaseURL returns the URL prefix up to and including the front controller script.
func (r *Request) BaseURL() string {
	return r.baseURL.get(func() string {
		return r.Server.GetString(ServerScriptName, "")
	})
}

// SetBaseURL overrides the base URL.
func (r *Request) SetBaseURL(baseURL string) {
	r.baseURL.set(baseURL)
}

// BasePath returns the base URL without the front controller file name: "/app/index.php" gives
// "/app" and a script at the root gives "".
func (r *Request) BasePath() string {
	return r.basePath.get(func() string {
		base := r.BaseURL()
		if base == "" {
			return ""
		}

		filename := r.Server.GetString(ServerScriptFilename, "")
		if filename == "" || path.Base(filename) == path.Base(base) {
			base = path.Dir(base)
		}

		return strings.TrimRight(base, "/")
	})
}

// RequestURI returns the request URI as the server reported it, query string included.
func (r *Request) RequestURI() string {
	return r.requestURI.get(func() string {
		return r.Server.GetString(ServerRequestURI, "")
	})
}

// RequestFormat returns the format requested through the "_format" attribute, or def.
func (r *Request) RequestFormat(def string) string {
	if f := r.format.get(func() string { return r.Attributes.GetString(formatAttribute, "") }); f != "" {
		return f
	}

	return def
}

// SetRequestFormat overrides the request format.
func (r *Request) SetRequestFormat(format string) {
	r.format.set(format)
}

// Host returns the Host header. It is read on every call.
func (r *Request) Host() string {
	return r.Headers.Get("host", "")
}

// Scheme returns the request scheme reported by the server. It is read on every call.
func (r *Request) Scheme() string {
	return r.Server.GetString(ServerRequestScheme, "")
}

// SchemeAndHost returns "scheme://host".
func (r *Request) SchemeAndHost() string {
	return r.Scheme() + "://" + r.Host()
}

// IsSecure reports whether the request was made over https.
func (r *Request) IsSecure() bool {
	if strings.EqualFold(r.Scheme(), "https") {
		return true
	}

	switch strings.ToLower(r.Server.GetString(ServerHTTPS, "")) {
	case "on", "1":
		return true
	default:
		return false
	}
}

// Locale returns the locale of the request, falling back to the default locale.
func (r *Request) Locale() string {
	if r.locale == "" {
		return r.defaultLocale
	}

	return r.locale
}

// SetLocale sets the locale of the request.
func (r *Request) SetLocale(locale string) {
	r.locale = locale
}

// DefaultLocale returns the locale used when none was set.
func (r *Request) DefaultLocale() string {
	return r.defaultLocale
}

// SetDefaultLocale resets the default locale.
func (r *Request) SetDefaultLocale(locale string) {
	r.defaultLocale = locale
}

// Session returns the session attached to the request, or nil.
func (r *Request) Session() session.Session {
	return r.session
}

// SetSession attaches s to the request. The request does not manage its lifecycle.
func (r *Request) SetSession(s session.Session) {
	r.session = s
}

// HasSession reports whether a session is attached.
func (r *Request) HasSession() bool {
	return r.session != nil
}

// Clone returns a copy of the request with independent containers. Derived state is kept.
func (r *Request) Clone() *Request {
	c := *r

	c.Query = r.Query.Clone()
	c.Form = r.Form.Clone()
	c.Attributes = r.Attributes.Clone()
	c.Cookies = r.Cookies.Clone()
	c.Files = r.Files.Clone()
	c.Server = r.Server.Clone()
	c.Headers = r.Headers.Clone()

	return &c
}
