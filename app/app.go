package app

import (
	"github.com/ekarimli/sorgu/config"
	"github.com/ekarimli/sorgu/session"
	"github.com/ekarimli/sorgu/store"
)

type App struct {
	Questions *store.Questions
	Sessions  *session.Manager
	config.Config
}
