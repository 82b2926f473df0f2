package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/philipparndt/godim/pkg/analysis"
	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/openscad"
)

var infoLongest, infoShortest int

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about an STL or OpenSCAD model",
	Long:  "Show dimensions, triangle count, surface area, edge statistics and a suggested snap threshold.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().IntVar(&infoLongest, "longest", 0, "list the N longest edges")
	infoCmd.Flags().IntVar(&infoShortest, "shortest", 0, "list the N shortest edges")
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	model, err := openscad.Load(cmd.Context(), filename, log)
	if err != nil {
		return err
	}

	result := analysis.AnalyzeSurface(model.Surface(geometry.Identity()))
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "STL File Information")
	fmt.Fprintln(out, "====================")
	if model.Name != "" {
		fmt.Fprintf(out, "Name: %s\n", model.Name)
	}
	fmt.Fprintf(out, "File: %s\n\n", filename)

	fmt.Fprintln(out, "Model Statistics:")
	fmt.Fprintf(out, "  Triangles: %d\n", result.TriangleCount)
	fmt.Fprintf(out, "  Edges: %d\n", result.EdgeCount)
	fmt.Fprintf(out, "  Surface Area: %.6f square units\n\n", result.SurfaceArea)

	fmt.Fprintln(out, "Bounding Box:")
	fmt.Fprintf(out, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Fprintf(out, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Fprintf(out, "  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

	fmt.Fprintln(out, "Dimensions:")
	fmt.Fprintf(out, "  Width (X): %.6f units\n", result.Dimensions.X)
	fmt.Fprintf(out, "  Depth (Y): %.6f units\n", result.Dimensions.Y)
	fmt.Fprintf(out, "  Height (Z): %.6f units\n", result.Dimensions.Z)
	fmt.Fprintf(out, "  Diagonal: %.6f units\n\n", result.BoundingBox.Diagonal())

	fmt.Fprintln(out, "Edge Lengths:")
	fmt.Fprintf(out, "  Minimum: %.6f units\n", result.MinEdgeLength)
	fmt.Fprintf(out, "  Maximum: %.6f units\n", result.MaxEdgeLength)
	fmt.Fprintf(out, "  Average: %.6f units\n\n", result.AvgEdgeLength)

	fmt.Fprintln(out, "Snapping:")
	fmt.Fprintf(out, "  Configured threshold: %.4f\n", cfg.Snap.Threshold)
	fmt.Fprintf(out, "  Suggested threshold: %.4f\n", result.SuggestedThreshold(cfg.Snap.Threshold))

	if infoLongest > 0 {
		printEdges(out, fmt.Sprintf("Longest %d edges", infoLongest), result.FindLongestEdges(infoLongest))
	}
	if infoShortest > 0 {
		printEdges(out, fmt.Sprintf("Shortest %d edges", infoShortest), result.FindShortestEdges(infoShortest))
	}
	return nil
}

func printEdges(out io.Writer, title string, edges []analysis.EdgeInfo) {
	fmt.Fprintf(out, "\n%s:\n", title)
	for i, edge := range edges {
		fmt.Fprintf(out, "  %d. %.6f  %s -> %s\n", i+1, edge.Length,
			analysis.FormatVector(edge.Start), analysis.FormatVector(edge.End))
	}
}
