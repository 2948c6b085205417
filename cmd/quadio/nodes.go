package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pipelined.dev/quadio/graph"
	"pipelined.dev/quadio/nodes"
)

func newNodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nodes",
		Short: "List available node types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tLABEL\tINPUTS\tOUTPUTS")
			for _, t := range nodes.Types() {
				d := t.New().Descriptor()
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.Name, t.Label, labels(d.Inputs), labels(d.Outputs))
			}
			return w.Flush()
		},
	}
}

func labels(sockets []graph.SocketDescriptor) string {
	if len(sockets) == 0 {
		return "-"
	}
	s := make([]string, 0, len(sockets))
	for _, sd := range sockets {
		s = append(s, sd.Label)
	}
	return strings.Join(s, ",")
}
