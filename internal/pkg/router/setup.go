package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dailypress/newsroom/app/controllers"
)

// Router installs one group of routes onto the app.
type Router interface {
	InstallRouter(app *fiber.App)
}

// Dependencies carries the constructed controllers into the routers. The
// controllers own their repositories and clients; nothing here is a package
// singleton.
type Dependencies struct {
	News      *controllers.NewsController
	AdminNews *controllers.AdminNewsController
	Magazine  *controllers.MagazineController
	Flipbook  *controllers.FlipbookController
	OutputDir string
}

// InstallRouter wires all route groups.
func InstallRouter(app *fiber.App, deps *Dependencies) {
	setup(app, NewApiRouter(deps), NewStaticRouter(deps.OutputDir))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
