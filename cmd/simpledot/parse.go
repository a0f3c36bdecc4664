package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jblondin/simpledot/dotparser"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file.dot]",
	Short: "Parse a DOT-subset file",
	Long:  "Parse a DOT file (or stdin when no file is given), validate it against the subset grammar and attribute whitelist, and print a summary.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().Bool("dump", false, "Print the full resolved graph structure")
	parseCmd.Flags().Bool("no-lint", false, "Skip lint diagnostics")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	verbose := viper.GetBool("verbose")
	dump, _ := cmd.Flags().GetBool("dump")
	noLint, _ := cmd.Flags().GetBool("no-lint")

	var src []byte
	var err error
	if len(args) == 1 && args[0] != "-" {
		src, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
	} else {
		src, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}

	graph, err := dotparser.Parse(src)
	if err != nil {
		return fmt.Errorf("parsing: %w", err)
	}

	printSummary(cmd.OutOrStdout(), graph)
	if dump {
		dumpGraph(cmd.OutOrStdout(), graph, 0)
	}

	if !noLint {
		diags := dotparser.Lint(graph)
		if verbose || len(diags) > 0 {
			for _, d := range diags {
				fmt.Fprintln(cmd.ErrOrStderr(), d)
			}
		}
	}
	return nil
}

func printSummary(w io.Writer, g *dotparser.Graph) {
	name := g.Name
	if name == "" {
		name = "(anonymous)"
	}
	strict := ""
	if g.Strict {
		strict = "strict "
	}
	fmt.Fprintf(w, "%s%s %s: %d nodes, %d edges, %d subgraphs, %d graph attributes\n",
		strict, g.Kind, name,
		len(g.Nodes()), len(g.Edges()), len(g.Subgraphs()), len(g.Attrs))
}

func dumpGraph(w io.Writer, g *dotparser.Graph, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, a := range g.Attrs {
		fmt.Fprintf(w, "%s%s = %q\n", indent, a.Name, a.Value)
	}
	for _, c := range g.Components {
		switch c.Kind {
		case dotparser.NodeComponent:
			fmt.Fprintf(w, "%snode %s%s\n", indent, c.Node.ID, formatAttrs(c.Node.Attrs))
		case dotparser.EdgeComponent:
			op := "->"
			if g.Kind == dotparser.Undirected {
				op = "--"
			}
			fmt.Fprintf(w, "%sedge %s %s %s%s\n", indent, c.Edge.From, op, c.Edge.To, formatAttrs(c.Edge.Attrs))
		case dotparser.SubgraphComponent, dotparser.ClusterSubgraphComponent:
			name := c.Subgraph.Name
			if name == "" {
				name = "(anonymous)"
			}
			fmt.Fprintf(w, "%s%s %s {\n", indent, c.Kind, name)
			dumpGraph(w, c.Subgraph, depth+1)
			fmt.Fprintf(w, "%s}\n", indent)
		}
	}
}

func formatAttrs(attrs []dotparser.Attr) string {
	if len(attrs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(attrs))
	for _, a := range attrs {
		parts = append(parts, fmt.Sprintf("%s=%q", a.Name, a.Value))
	}
	return " [" + strings.Join(parts, ", ") + "]"
}
