package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultFileName         = "/.env"
	defaultOverrideFileName = "/.local.env"
)

// EnvLoader serves configuration from the process environment after loading .env files into it.
type EnvLoader struct {
	logger logger
}

type logger interface {
	Infof(format string, a ...any)
	Debugf(format string, a ...any)
	Fatalf(format string, a ...any)
}

// NewEnvFile loads <folder>/.env, then <folder>/.local.env, then <folder>/.<APP_ENV>.env, each
// overriding the previous one. Variables already set in the environment win over all files.
func NewEnvFile(configFolder string, logger logger) Config {
	conf := &EnvLoader{logger: logger}
	conf.read(configFolder)

	return conf
}

func (e *EnvLoader) read(folder string) {
	initialEnv := make(map[string]bool)

	for _, envVar := range os.Environ() {
		key, _, _ := strings.Cut(envVar, "=")
		initialEnv[key] = true
	}

	envMap := make(map[string]string)

	e.load(folder+defaultFileName, envMap, true)
	e.load(folder+defaultOverrideFileName, envMap, false)

	if appEnv := os.Getenv("APP_ENV"); appEnv != "" {
		e.load(fmt.Sprintf("%s/.%s.env", folder, appEnv), envMap, true)
	}

	for key, value := range envMap {
		if !initialEnv[key] {
			os.Setenv(key, value)
		}
	}
}

// load merges the file into envMap. A missing file is skipped; any other read failure is fatal
// when strict is set.
func (e *EnvLoader) load(file string, envMap map[string]string, strict bool) {
	content, err := godotenv.Read(file)
	if err != nil {
		if strict && !errors.Is(err, fs.ErrNotExist) {
			e.logger.Fatalf("Failed to load config from file: %v, Err: %v", file, err)
		}

		return
	}

	for k, v := range content {
		envMap[k] = v
	}

	e.logger.Infof("Loaded config from file: %v", file)
}

func (*EnvLoader) Get(key string) string {
	return os.Getenv(key)
}

func (*EnvLoader) GetOrDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultValue
}
