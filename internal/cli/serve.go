package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// listener is the shared front half of `web` and `webtui`: bind, announce the
// envelope, optionally open a browser.
type listener struct {
	ln      net.Listener
	addr    string
	url     string
	opened  bool
	openErr string
}

func listen(addr string, open bool, path string) (*listener, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("missing --addr")
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	l := &listener{ln: ln, addr: ln.Addr().String()}
	l.url = "http://" + l.addr + path
	if open {
		if err := openPath(l.url); err != nil {
			l.openErr = err.Error()
		} else {
			l.opened = true
		}
	}
	return l, nil
}

func (l *listener) announce(cmd *cobra.Command, app *App, name string, extra map[string]any) {
	data := map[string]any{
		"addr":      l.addr,
		"url":       l.url,
		"opened":    l.opened,
		"openError": l.openErr,
		"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
	}
	for k, v := range extra {
		data[k] = v
	}
	hints := []string{}
	if !l.opened {
		hints = append(hints, "open "+l.url)
	}
	_ = writeOut(cmd, app, map[string]any{"data": data, "_hints": hints})

	fmt.Fprintf(cmd.ErrOrStderr(), "folio %s running at %s\n", name, l.url)
	if l.openErr != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Failed to open browser: %s\n", l.openErr)
	}
}

// serve runs h on l until ctx is done, then shuts down gracefully. Extra
// workers run in the same group and stop with it.
func serve(ctx context.Context, logger *zap.Logger, l *listener, h http.Handler, workers ...func(context.Context) error) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http serve", zap.String("addr", l.addr))
		if err := srv.Serve(l.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("http shutdown", zap.String("addr", l.addr))
		return srv.Shutdown(shutdownCtx)
	})
	for _, w := range workers {
		g.Go(func() error { return w(ctx) })
	}
	return g.Wait()
}
