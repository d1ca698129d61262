// Package webui serves plain HTML debug pages over the loaded timetable.
package webui

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"spacetime.railviz.dev/internal/app"
)

type WebUI struct {
	*app.Application
}

func New(app *app.Application) *WebUI {
	return &WebUI{Application: app}
}

func (webUI *WebUI) SetRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/debug/", webUI.debugIndexHandler)
}
