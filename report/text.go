// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/katalvlaran/lvnet/network"
)

// Write prints the three checks of res followed by a convergence summary.
func Write(w io.Writer, title string, res *network.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	if title != "" {
		fmt.Fprintf(tw, "%s\n\n", title)
	}

	fmt.Fprintln(tw, "BRANCH\tKIND\tSTART\tEND\tFLOW")
	for _, b := range res.Branches {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%+.6g\n", b.Name, b.Kind, b.Start, b.End, b.Flow)
	}

	fmt.Fprintln(tw, "\nNODE\tINJECTION\tNET FLOW\tRESIDUAL")
	for _, n := range res.Nodes {
		fmt.Fprintf(tw, "%s\t%+.6g\t%+.6g\t%.3g\n", n.Name, n.Injection, n.NetFlow, n.Residual)
	}

	fmt.Fprintln(tw, "\nLOOP\tNODES\tRESIDUAL")
	for _, l := range res.Loops {
		fmt.Fprintf(tw, "%s\t%s\t%.3g\n", l.Name, strings.Join(l.Nodes, " "), l.Residual)
	}

	fmt.Fprintf(tw, "\nconverged in %d iterations, |R| = %.3g, %d unknowns\n",
		res.Iterations, res.Residual, len(res.Unknowns))

	return tw.Flush()
}
