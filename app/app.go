package app

import (
	"github.com/go-chi/oauth"

	"github.com/sci-platform/riskform/config"
	"github.com/sci-platform/riskform/notify"
	"github.com/sci-platform/riskform/store"
)

type App struct {
	*store.Store
	*oauth.BearerServer
	config.Config
	Notify notify.Sender
}
