package main

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"pipelined.dev/quadio/pipeline"
	"pipelined.dev/quadio/wav"
)

const defaultRenderRate = 44100

type renderConfig struct {
	out      string
	seconds  float64
	bitDepth int
}

func newRenderCmd(cfg *config) *cobra.Command {
	rc := &renderConfig{}
	cmd := &cobra.Command{
		Use:   "render <patch.yaml>",
		Short: "Render the patch into a wav file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return render(cmd.Context(), cfg, rc, args[0])
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&rc.out, "out", "o", "out.wav", "output wav file")
	flags.Float64VarP(&rc.seconds, "seconds", "s", 5, "duration of rendered signal")
	flags.IntVar(&rc.bitDepth, "bit-depth", 16, "bit depth of rendered file: 16, 24 or 32")
	return cmd
}

func render(ctx context.Context, cfg *config, rc *renderConfig, path string) error {
	g, _, err := loadPatch(path)
	if err != nil {
		return err
	}
	sampleRate := cfg.sampleRate
	if sampleRate <= 0 {
		sampleRate = defaultRenderRate
	}
	sink, err := wav.NewSink(sampleRate, max(cfg.channels, 1), rc.bitDepth)
	if err != nil {
		return err
	}
	logger := cfg.logger()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	p := pipeline.New(pipeline.NewPatch(g),
		pipeline.WithBlockSize(cfg.blockSize),
		pipeline.WithSampleRate(sampleRate),
		pipeline.WithLogger(logger),
	)
	errc := p.Run(ctx)
	frames := int(rc.seconds * float64(sampleRate))

	var eg errgroup.Group
	eg.Go(func() error {
		defer cancel()
		n, err := sink.RenderFile(ctx, rc.out, p.Reader(), frames)
		logger.WithField("pipeline", p.ID()).Infof("rendered %d frames into %s", n, rc.out)
		return err
	})
	eg.Go(func() error {
		for err := range errc {
			if err != nil {
				cancel()
				return err
			}
		}
		return nil
	})
	return eg.Wait()
}
