package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/listmerge/internal/server"
	"github.com/desertthunder/listmerge/internal/services"
	"github.com/desertthunder/listmerge/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

// fixture is a configured fixture API ready to serve
type fixture struct {
	router  *server.BasicRouter
	handler *server.ListsHandler
	addr    string
	path    string
	file    string
}

// Serve runs the fixture API until interrupted.
// With --watch the payload file is reloaded whenever it changes.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	fx, err := r.fixture(cmd)
	if err != nil {
		return err
	}

	watch := cmd.Bool("watch")
	if watch && fx.file == "" {
		return fmt.Errorf("%w: --watch requires --file", shared.ErrInvalidFlag)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.writePlain("→ Serving lists at http://%s%s (ctrl+c to stop)\n", fx.addr, fx.path)
	if !watch {
		return server.Serve(ctx, fx.addr, fx.router, r.logger)
	}

	r.writePlain("→ Watching %s for changes\n", fx.file)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Serve(ctx, fx.addr, fx.router, r.logger)
	})
	g.Go(func() error {
		return server.WatchFile(ctx, fx.file, func() error {
			payload, err := readFixture(fx.file)
			if err != nil {
				return err
			}
			return fx.handler.SetPayload(payload)
		}, r.logger)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// readFixture loads a JSON or YAML payload file and re-encodes it as JSON
func readFixture(file string) ([]byte, error) {
	raw, err := services.ReadPayloadFile(file)
	if err != nil {
		return nil, err
	}
	return services.EncodeRawPayload(raw)
}

func (r *Runner) fixture(cmd *cli.Command) (*fixture, error) {
	fx := &fixture{file: cmd.String("file")}

	payload := server.DefaultPayload
	if fx.file != "" {
		data, err := readFixture(fx.file)
		if err != nil {
			return nil, fmt.Errorf("failed to read payload: %w", err)
		}
		payload = data
	}

	fx.path = cmd.String("path")
	if fx.path == "" {
		fx.path = r.config.Source.Path
	}

	handler, err := server.NewListsHandler(fx.path, payload)
	if err != nil {
		return nil, err
	}
	handler.SetFailing(cmd.Bool("fail"))
	fx.handler = handler

	srv := r.config.Server
	if host := cmd.String("host"); host != "" {
		srv.Host = host
	}
	if port := cmd.Int("port"); port != 0 {
		srv.Port = int(port)
	}
	fx.addr = srv.Addr()

	fx.router = server.NewFixtureRouter(handler,
		server.Recover(r.logger),
		server.Logging(r.logger),
		server.CORS(),
	)
	return fx, nil
}
