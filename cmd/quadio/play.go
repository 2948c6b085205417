package main

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"pipelined.dev/quadio/pipeline"
	"pipelined.dev/quadio/portaudio"
)

func newPlayCmd(cfg *config) *cobra.Command {
	var debugAddr string
	cmd := &cobra.Command{
		Use:   "play <patch.yaml>",
		Short: "Play the patch on the default output device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return play(cmd.Context(), cfg, args[0], debugAddr)
		},
	}
	cmd.Flags().StringVar(&debugAddr, "debug-addr", "", "serve expvar metrics on this address")
	return cmd
}

func play(ctx context.Context, cfg *config, path, debugAddr string) error {
	g, _, err := loadPatch(path)
	if err != nil {
		return err
	}
	sampleRate, channels := cfg.sampleRate, cfg.channels
	if sampleRate <= 0 || channels <= 0 {
		rate, ch, err := portaudio.Default()
		if err != nil {
			return err
		}
		if sampleRate <= 0 {
			sampleRate = rate
		}
		if channels <= 0 {
			channels = min(ch, 2)
		}
	}
	logger := cfg.logger()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	eg, ctx := errgroup.WithContext(ctx)

	p := pipeline.New(pipeline.NewPatch(g),
		pipeline.WithBlockSize(cfg.blockSize),
		pipeline.WithSampleRate(sampleRate),
		pipeline.WithLogger(logger),
	)
	errc := p.Run(ctx)
	eg.Go(func() error {
		for err := range errc {
			if err != nil {
				return err
			}
		}
		return nil
	})

	sink := portaudio.NewSink(p.Reader(), sampleRate, channels, p.BlockSize())
	if err := sink.Start(); err != nil {
		stop()
		return errors.Join(err, eg.Wait())
	}
	logger.WithField("pipeline", p.ID()).Infof("playing %s: %d Hz, %d channels", path, sampleRate, channels)
	eg.Go(func() error {
		<-ctx.Done()
		return sink.Close()
	})

	if debugAddr != "" {
		srv := &http.Server{Addr: debugAddr, Handler: expvar.Handler()}
		eg.Go(func() error {
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		eg.Go(func() error {
			<-ctx.Done()
			return srv.Shutdown(context.Background())
		})
		logger.Infof("metrics on http://%s", debugAddr)
	}
	return eg.Wait()
}
