// Package config loads typed configuration from environment variables and optional
// .env files, using github.com/caarlos0/env for struct tags and github.com/joho/godotenv
// for file parsing.
//
// Load never mutates the process environment: file values are read into a map and
// overlaid by the real environment, which makes it safe to call from parallel tests
// with WithEnvironment.
//
// # Sources
//
// Without options Load reads ./.env when it exists and overlays the process
// environment. WithEnvFiles replaces ./.env with an explicit list that must exist;
// later files override earlier ones. WithEnvironment replaces the process
// environment, and WithPrefix restricts parsing to prefixed variables.
//
//	type appConfig struct {
//		Addr    string        `env:"HTTP_ADDR" envDefault:":8080"`
//		Fortune fortune.Config `envPrefix:"FORTUNE_"`
//	}
//
//	cfg, err := config.Load[appConfig](config.WithEnvFiles("deploy/prod.env"))
//
// A config whose pointer implements Validator is validated after parsing;
// failures wrap ErrInvalidConfig.
package config
