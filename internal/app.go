package internal

import (
	"context"

	"github.com/apiarycd/gitgate/internal/config"
	"github.com/apiarycd/gitgate/internal/git"
	"github.com/apiarycd/gitgate/internal/projects"
	"github.com/apiarycd/gitgate/internal/server"
	"github.com/apiarycd/gitgate/internal/tasks"
	"github.com/apiarycd/gitgate/pkg/badgerfx"
	"github.com/apiarycd/gitgate/pkg/openapifx"
	"github.com/capcom6/go-infra-fx/validator"
	"github.com/go-core-fx/fiberfx"
	"github.com/go-core-fx/healthfx"
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Run() {
	fx.New(
		// CORE MODULES
		logger.Module(),
		logger.WithFxDefaultLogger(),
		badgerfx.Module(),
		healthfx.Module(),
		fiberfx.Module(),
		validator.Module,
		openapifx.Module(),
		//
		// APP MODULES
		config.Module(),
		server.Module(),
		//
		// BUSINESS MODULES
		fx.Provide(func() healthfx.Version { return healthfx.Version{Version: "0.1.0", ReleaseID: 1} }),
		git.Module(),
		projects.Module(),
		tasks.Module(),
		//
		// LIFECYCLE MANAGEMENT
		fx.Invoke(func(lc fx.Lifecycle, logger *zap.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					logger.Info("🚀 gitgate starting up")
					return nil
				},
				OnStop: func(_ context.Context) error {
					logger.Info("🛑 gitgate shutting down gracefully")
					return nil
				},
			})
		}),
	).Run()
}
