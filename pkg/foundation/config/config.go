// Package config reads application configuration from the environment and .env files.
package config

type Config interface {
	Get(string) string
	GetOrDefault(string, string) string
}
