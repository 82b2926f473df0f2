package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/godim/internal/snap"
	"github.com/philipparndt/godim/pkg/analysis"
	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/scene"
	"github.com/philipparndt/godim/pkg/openscad"
)

var (
	snapFrom      []float64
	snapTo        []float64
	snapThreshold float64
)

var snapCmd = &cobra.Command{
	Use:   "snap [file]",
	Short: "Snap a ray against a model",
	Long: `Cast a ray from --from through --to and report the snap point the
engine would choose: the nearest vertex, edge midpoint, face centroid or edge
point within the threshold.`,
	Args: cobra.ExactArgs(1),
	RunE: runSnap,
}

func init() {
	rootCmd.AddCommand(snapCmd)

	snapCmd.Flags().Float64SliceVar(&snapFrom, "from", nil, "ray origin x,y,z")
	snapCmd.Flags().Float64SliceVar(&snapTo, "to", nil, "point the ray passes through x,y,z")
	snapCmd.Flags().Float64Var(&snapThreshold, "threshold", 0, "override the snap threshold")
	_ = snapCmd.MarkFlagRequired("from")
	_ = snapCmd.MarkFlagRequired("to")
}

func runSnap(cmd *cobra.Command, args []string) error {
	from, err := vectorFlag("from", snapFrom)
	if err != nil {
		return err
	}
	to, err := vectorFlag("to", snapTo)
	if err != nil {
		return err
	}

	model, err := openscad.Load(cmd.Context(), args[0], log)
	if err != nil {
		return err
	}

	opts := cfg.SnapOptions()
	if snapThreshold > 0 {
		opts.Threshold = snapThreshold
	}
	engine := snap.NewEngine(scene.MeshRaycaster{}, opts, nil)
	engine.SetLogger(log)

	surfaces := []*scene.Surface{model.Surface(geometry.Identity())}
	out := cmd.OutOrStdout()

	result, ok := engine.Query(geometry.RayThrough(from, to), surfaces)
	if !ok {
		fmt.Fprintln(out, "no snap")
		return nil
	}
	fmt.Fprintf(out, "%s %s distance %.6f\n", result.Kind, analysis.FormatVector(result.Point), result.Distance)
	if result.Edge != nil {
		fmt.Fprintf(out, "edge %s -> %s\n", analysis.FormatVector(result.Edge[0]), analysis.FormatVector(result.Edge[1]))
	}
	return nil
}

func vectorFlag(name string, v []float64) (geometry.Vector3, error) {
	if len(v) != 3 {
		return geometry.Vector3{}, fmt.Errorf("--%s needs three values, got %d", name, len(v))
	}
	return geometry.NewVector3(v[0], v[1], v[2]), nil
}
