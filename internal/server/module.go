package server

import (
	"github.com/apiarycd/gitgate/internal/links"
	"github.com/apiarycd/gitgate/internal/server/docs"
	"github.com/apiarycd/gitgate/internal/server/handlers/git"
	"github.com/apiarycd/gitgate/internal/server/handlers/projects"
	"github.com/apiarycd/gitgate/internal/server/handlers/tasks"
	"github.com/apiarycd/gitgate/pkg/openapifx"
	"github.com/go-core-fx/fiberfx"
	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-core-fx/fiberfx/health"
	"github.com/go-core-fx/fiberfx/validation"
	"github.com/go-core-fx/logger"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const apiPrefix = "/api/v1"

func Module() fx.Option {
	return fx.Module(
		"server",
		logger.WithNamedLogger("server"),

		fx.Provide(func(log *zap.Logger) fiberfx.Options {
			opts := fiberfx.Options{}
			opts.WithErrorHandler(fiberfx.NewJSONErrorHandler(log))
			opts.WithMetrics()
			return opts
		}),
		fx.Supply(docs.SwaggerInfo),
		fx.Provide(func() *links.Builder { return links.NewBuilder(apiPrefix) }, fx.Private),

		fx.Provide(
			fx.Annotate(health.NewHandler, fx.ResultTags(`name:"health-handler"`)), fx.Private,
			fx.Annotate(projects.NewHandler, fx.ResultTags(`group:"handlers"`)), fx.Private,
			fx.Annotate(git.NewHandler, fx.ResultTags(`group:"handlers"`)), fx.Private,
			fx.Annotate(tasks.NewHandler, fx.ResultTags(`group:"handlers"`)), fx.Private,
		),

		fx.Invoke(
			fx.Annotate(
				func(handlers []handler.Handler, healthHandler handler.Handler, openapiHandler *openapifx.Handler, app *fiber.App) {
					// Health endpoint
					healthHandler.Register(app)

					// Version 1 API group
					v1 := app.Group(apiPrefix)
					v1.Use(validation.Middleware)
					openapiHandler.Register(v1.Group("/docs"))

					for _, h := range handlers {
						h.Register(v1)
					}
				},
				fx.ParamTags(`group:"handlers"`, `name:"health-handler"`),
			),
		),
	)
}
