package main

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"pipelined.dev/quadio/engine"
	"pipelined.dev/quadio/graph"
	"pipelined.dev/quadio/nodes"
	"pipelined.dev/quadio/patch"
)

func newInspectCmd(cfg *config) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "inspect <patch.yaml>",
		Short: "Print nodes and wires of the patch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := loadPatch(args[0])
			if err != nil {
				return err
			}
			if err := g.Validate(); err != nil {
				return err
			}
			if asYAML {
				return patch.Save(cmd.OutOrStdout(), g)
			}
			return inspect(cmd.OutOrStdout(), g, cfg.verbose)
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print normalized patch")
	return cmd
}

func inspect(w io.Writer, g *engine.Graph, verbose bool) error {
	fmt.Fprintf(w, "%d nodes, %d wires\n", g.Len(), g.NumWires())
	for k, n := range g.Nodes() {
		name, _ := nodes.Name(n)
		d, err := g.Descriptor(k)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%v %s in[%s] out[%s]\n", k, name, labels(d.Inputs), labels(d.Outputs))
		if verbose {
			spew.Fdump(w, n)
		}
		for i := range d.Inputs {
			dst := graph.Socket{Node: k, Index: i}
			if src, ok := g.Source(dst); ok {
				fmt.Fprintf(w, "\t%v <- %v\n", dst, src)
			}
		}
	}
	return nil
}
