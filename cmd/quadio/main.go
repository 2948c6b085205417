// Command quadio plays and renders quadrature signal graphs stored in
// patch files.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"pipelined.dev/quadio/engine"
	"pipelined.dev/quadio/graph"
	"pipelined.dev/quadio/log"
	"pipelined.dev/quadio/patch"
	"pipelined.dev/quadio/pipeline"
)

// config holds flags shared by all commands.
type config struct {
	blockSize  int
	sampleRate int
	channels   int
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := &config{}
	root := &cobra.Command{
		Use:          "quadio",
		Short:        "Quadrature signal graph player",
		SilenceUsage: true,
	}
	flags := root.PersistentFlags()
	flags.IntVar(&cfg.blockSize, "block-size", pipeline.DefaultBlockSize, "number of samples computed per block")
	flags.IntVar(&cfg.sampleRate, "sample-rate", 0, "sample rate, device default for play and 44100 for render if zero")
	flags.IntVar(&cfg.channels, "channels", 0, "number of output channels, device default for play and 1 for render if zero")
	flags.BoolVarP(&cfg.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newPlayCmd(cfg),
		newRenderCmd(cfg),
		newNodesCmd(),
		newInspectCmd(cfg),
	)
	return root
}

// logger returns the logger configured with verbosity flag.
func (cfg *config) logger() *logrus.Logger {
	l := log.GetLogger()
	if cfg.verbose {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// loadPatch reads the graph from the patch file.
func loadPatch(path string) (*engine.Graph, map[string]graph.Key, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	g, keys, err := patch.Load(f)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading %s: %w", path, err)
	}
	return g, keys, nil
}
