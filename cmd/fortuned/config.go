package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/fortunecookie/pkg/environment"
	"github.com/dmitrymomot/fortunecookie/pkg/fortune"
	"github.com/dmitrymomot/fortunecookie/pkg/game"
	"github.com/dmitrymomot/fortunecookie/pkg/httpserver"
	"github.com/dmitrymomot/fortunecookie/pkg/jwt"
	"github.com/dmitrymomot/fortunecookie/pkg/logger"
	"github.com/dmitrymomot/fortunecookie/pkg/pg"
	"github.com/dmitrymomot/fortunecookie/pkg/redis"
	"github.com/dmitrymomot/fortunecookie/pkg/session"
)

type appConfig struct {
	Env         environment.Environment `env:"APP_ENV" envDefault:"development"`
	ServiceName string                  `env:"APP_NAME" envDefault:"fortuned"`
	CatalogDir  string                  `env:"CATALOG_DIR"`
	QuizFile    string                  `env:"QUIZ_FILE"`

	Log      logger.Config
	HTTP     httpserver.Config
	Session  session.Config
	Redis    redis.Config
	Postgres pg.Config
	JWT      jwt.Config
	Fortune  fortune.Config `envPrefix:"FORTUNE_"`
}

func (c *appConfig) Validate() error {
	return c.Fortune.Validate()
}

// loadQuestions reads a YAML list of {question, answer} entries.
func loadQuestions(path string) ([]game.Question, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quiz file: %w", err)
	}
	var questions []game.Question
	if err := yaml.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("parse quiz file %s: %w", path, err)
	}
	for i, q := range questions {
		if q.Text == "" || q.Answer == "" {
			return nil, fmt.Errorf("quiz file %s: entry %d needs both question and answer", path, i)
		}
	}
	return questions, nil
}
