package main

import (
	"context"
	"fmt"
	"os"

	"github.com/minrx/minrx-go/logger"
	"github.com/mkideal/cli"
	clix "github.com/mkideal/cli/ext"
	"go.uber.org/zap"
)

type opts struct {
	cli.Helper
	*zap.Logger

	Debug     bool          `cli:"d, debug" usage:"Debug Output"`
	Scheduler string        `cli:"s, scheduler" name:"scheduler" usage:"Scheduler [immediate|worker|pooled]" dft:"immediate"`
	Start     int           `cli:"start" name:"start" usage:"First element of the range" dft:"1"`
	Count     int           `cli:"n, count" name:"count" usage:"Number of elements" dft:"10"`
	Even      bool          `cli:"even" usage:"Keep even elements only"`
	Scale     int           `cli:"scale" name:"scale" usage:"Multiply every element by scale" dft:"1"`
	Aggregate string        `cli:"a, aggregate" name:"aggregate" usage:"Aggregate [none|sum|count|first|last]" dft:"none"`
	Format    string        `cli:"f, format" name:"format" usage:"Output Format [text|json|cbor]" dft:"text"`
	Timeout   clix.Duration `cli:"timeout" name:"duration" usage:"Timeout period" dft:"10s"`
}

func (opts *opts) configureLogging() (err error) {
	if opts.Debug {
		logger.SetLevel(logger.LevelDebug)

		opts.Logger, err = zap.NewDevelopment()
	} else {
		logger.SetLevel(logger.LevelInfo)

		opts.Logger, err = zap.NewProduction()
	}

	if err != nil {
		return
	}

	logger.UseZap(opts.Logger.Named("rx"))
	return
}

func main() {
	cli.Run(new(opts), func(cmdline *cli.Context) (err error) {
		opts := cmdline.Argv().(*opts)

		if err = opts.configureLogging(); err != nil {
			return
		}

		log := opts.Logger

		defer log.Sync()

		log.Debug("parsed opts", zap.Reflect("opts", opts))

		ctx := context.Background()
		if opts.Timeout.Duration > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, opts.Timeout.Duration)
			defer cancel()
		}

		p := pipeline{
			scheduler: opts.Scheduler,
			start:     opts.Start,
			count:     opts.Count,
			even:      opts.Even,
			scale:     opts.Scale,
			aggregate: opts.Aggregate,
			format:    opts.Format,
		}

		if err = p.run(ctx, os.Stdout); err != nil {
			log.Error("pipeline failed", zap.Error(err))
			err = fmt.Errorf("pipeline failed: %v", err)
		}
		return
	})
}
