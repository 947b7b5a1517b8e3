package config

import (
	"github.com/apiarycd/gitgate/internal/git"
	"github.com/apiarycd/gitgate/internal/projects"
	"github.com/apiarycd/gitgate/internal/server/protocol"
	"github.com/apiarycd/gitgate/internal/tasks"
	"github.com/apiarycd/gitgate/pkg/badgerfx"
	"github.com/apiarycd/gitgate/pkg/openapifx"
	"github.com/go-core-fx/fiberfx"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"config",
		fx.Provide(New),
		fx.Provide(func(cfg Config) fiberfx.Config {
			return fiberfx.Config{
				Address:     cfg.HTTP.Address,
				ProxyHeader: cfg.HTTP.ProxyHeader,
				Proxies:     cfg.HTTP.Proxies,
			}
		}),
		fx.Provide(func(cfg Config) openapifx.Config {
			return openapifx.Config{
				Enabled:    cfg.HTTP.OpenAPI.Enabled,
				PublicHost: cfg.HTTP.OpenAPI.PublicHost,
				PublicPath: cfg.HTTP.OpenAPI.PublicPath,
			}
		}),
		fx.Provide(func(cfg Config) protocol.Config {
			return protocol.Config{
				Version: cfg.Git.ProtocolVersion,
			}
		}),
		fx.Provide(func(cfg Config) badgerfx.Config {
			return badgerfx.Config{
				Dir:      cfg.Storage.DataDir,
				InMemory: false,
			}
		}),
		fx.Provide(func(cfg Config) git.Config {
			return git.Config{
				Timeout:      cfg.Git.Timeout,
				WorkspaceDir: cfg.Git.WorkspaceDir,
				Author: git.AuthorConfig{
					Name:  cfg.Git.Author.Name,
					Email: cfg.Git.Author.Email,
				},
				AllowDelete: cfg.Git.AllowDelete,
			}
		}),
		fx.Provide(func(cfg Config) projects.Config {
			return projects.Config{
				WorkspaceDir: cfg.Git.WorkspaceDir,
			}
		}),
		fx.Provide(func(cfg Config) tasks.Config {
			return tasks.Config{
				Timeout: cfg.Git.Timeout,
			}
		}),
	)
}
