package main

import (
	"context"
	"os"

	"github.com/AlexxIT/audiolens/internal/app"
	"github.com/AlexxIT/audiolens/internal/lens"
	"github.com/AlexxIT/audiolens/internal/push"
	"github.com/AlexxIT/audiolens/pkg/shell"
)

func main() {
	app.Init() // init config and logs

	lens.Init()
	push.Init()

	if len(app.Args) == 0 {
		app.Logger.Error().Msg("usage: audiolens [-config audiolens.yaml] file...")
		os.Exit(2)
	}

	ctx, cancel := shell.WithSignal(context.Background())
	code := run(ctx)
	cancel()

	os.Exit(code)
}

func run(ctx context.Context) int {
	results, err := lens.Run(ctx, app.Args)

	if push.Enabled() {
		for _, r := range results {
			if r == nil {
				continue
			}
			stream, ok := r.RTP()
			if !ok {
				app.Logger.Warn().Str("file", r.Path).Msg("[push] format can't be pushed")
				continue
			}
			if err := push.Send(ctx, r.Name(), stream); err != nil {
				app.Logger.Error().Err(err).Str("file", r.Path).Send()
				if ctx.Err() != nil {
					return 1
				}
			}
		}
	}

	if err != nil {
		if !app.ConsoleLog() {
			_, _ = app.MemoryLog.WriteTo(os.Stderr)
		}
		return 1
	}

	return 0
}
