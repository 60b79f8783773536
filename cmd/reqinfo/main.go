// Command reqinfo is a CGI program that reports what foundation derives from the request it is
// invoked for: method, path info, base URL, host, scheme and the parameters it received.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"
	"golang.org/x/text/language"

	"foundation.dev/pkg/foundation/config"
	foundationhttp "foundation.dev/pkg/foundation/http"
	"foundation.dev/pkg/foundation/logging"
	"foundation.dev/pkg/foundation/metrics"
	"foundation.dev/pkg/foundation/session"
)

const defaultConfigDir = "./configs"

type app struct {
	conf   config.Config
	logger logging.Logger
	redis  redis.Cmdable
}

type report struct {
	Method     string   `json:"method"`
	PathInfo   string   `json:"pathInfo"`
	BaseURL    string   `json:"baseUrl"`
	BasePath   string   `json:"basePath"`
	RequestURI string   `json:"requestUri"`
	Host       string   `json:"host"`
	Scheme     string   `json:"scheme"`
	Secure     bool     `json:"secure"`
	Locale     string   `json:"locale"`
	Format     string   `json:"format"`
	Query      []string `json:"query"`
	Form       []string `json:"form"`
	Cookies    []string `json:"cookies"`
	Session    []string `json:"session,omitempty"`
}

func main() {
	logger := logging.NewLogger(logging.INFO)

	if err := serve(logger, os.Stdin, os.Stdout); err != nil {
		logger.Fatalf("reqinfo: %v", err)
	}
}

// serve handles the one request a CGI invocation is for. Resources it opens are released before it returns.
func serve(logger logging.Logger, in io.Reader, out io.Writer) error {
	dir := os.Getenv("CONFIG_DIR")
	if dir == "" {
		dir = defaultConfigDir
	}

	conf := config.NewEnvFile(dir, logger)
	logger.ChangeLevel(logging.GetLevelFromString(conf.GetOrDefault("LOG_LEVEL", "INFO")))

	a := &app{conf: conf, logger: logger}

	if addr := conf.Get("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		defer client.Close()

		a.redis = client
	}

	body, err := readBody(in, os.Getenv("CONTENT_LENGTH"))
	if err != nil {
		return fmt.Errorf("reading request body: %w", err)
	}

	return a.run(context.Background(), os.Environ(), body, out)
}

// readBody reads exactly CONTENT_LENGTH bytes, as a CGI program must. Without a length there is no body.
func readBody(in io.Reader, contentLength string) ([]byte, error) {
	n, err := strconv.ParseInt(contentLength, 10, 64)
	if err != nil || n <= 0 {
		return nil, nil //nolint:nilerr // a missing or invalid length means no body
	}

	body := make([]byte, n)
	if _, err := io.ReadFull(in, body); err != nil {
		return nil, err
	}

	return body, nil
}

func (a *app) run(ctx context.Context, environ []string, body []byte, out io.Writer) error {
	m := metrics.NewManager(a.logger)

	if err := m.NewCounter(foundationhttp.MetricPoolGets, "Requests handed out by the request pool.", "source"); err != nil {
		return err
	}

	if err := m.NewCounter(foundationhttp.MetricPoolPuts, "Requests released to the request pool."); err != nil {
		return err
	}

	pool := foundationhttp.NewPool(a.logger, m)

	g := foundationhttp.GlobalsFromEnviron(environ, body)
	req := pool.Get(ctx, g.Query, g.Form, nil, g.Cookies, g.Files, g.Server, g.Content)

	defer pool.Put(ctx, req)

	req.SetDefaultLocale(a.conf.GetOrDefault("DEFAULT_LOCALE", req.DefaultLocale()))

	if locale, ok := preferredLocale(req.Headers.Get("accept-language", "")); ok {
		req.SetLocale(locale)
	}

	if err := a.attachSession(ctx, req); err != nil {
		return err
	}

	a.logger.Debugf("%s %s", req.Method(), req.PathInfo())

	rep := report{
		Method:     req.Method(),
		PathInfo:   req.PathInfo(),
		BaseURL:    req.BaseURL(),
		BasePath:   req.BasePath(),
		RequestURI: req.RequestURI(),
		Host:       req.Host(),
		Scheme:     req.Scheme(),
		Secure:     req.IsSecure(),
		Locale:     req.Locale(),
		Format:     req.RequestFormat("json"),
		Query:      req.Query.Keys(),
		Form:       req.Form.Keys(),
		Cookies:    req.Cookies.Keys(),
	}

	if req.HasSession() {
		for k := range req.Session().All() {
			rep.Session = append(rep.Session, k)
		}

		sort.Strings(rep.Session)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	if err := enc.Encode(rep); err != nil {
		return err
	}

	if path := a.conf.Get("METRICS_FILE"); path != "" {
		// the pool put is deferred, so only gets are in the file
		if err := m.WriteToTextfile(path); err != nil {
			a.logger.Warnf("writing metrics to %s: %v", path, err)
		}
	}

	return nil
}

// preferredLocale returns the highest weighted tag of an Accept-Language header. A malformed header
// yields no locale.
func preferredLocale(header string) (string, bool) {
	if header == "" {
		return "", false
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return "", false
	}

	return tags[0].String(), true
}

func (a *app) attachSession(ctx context.Context, req *foundationhttp.Request) error {
	if a.redis == nil {
		return nil
	}

	id := req.Cookies.GetString(a.conf.GetOrDefault("SESSION_COOKIE", "sid"), "")
	if id == "" {
		return nil
	}

	s := session.NewRedis(a.redis, id, 0)
	if err := s.Load(ctx); err != nil {
		return err
	}

	req.SetSession(s)

	return nil
}
