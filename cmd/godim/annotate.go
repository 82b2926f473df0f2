package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/philipparndt/godim/internal/config"
	"github.com/philipparndt/godim/internal/render"
	"github.com/philipparndt/godim/internal/script"
	"github.com/philipparndt/godim/internal/session"
	"github.com/philipparndt/godim/pkg/analysis"
	"github.com/philipparndt/godim/pkg/geometry"
	"github.com/philipparndt/godim/pkg/openscad"
	"github.com/philipparndt/godim/pkg/scene"
	"github.com/philipparndt/godim/pkg/viewer"
	"github.com/philipparndt/godim/pkg/watcher"
)

var (
	annotateModel     string
	annotateOutput    string
	annotateUnits     string
	annotateThreshold float64
	annotateShowSnap  bool
	annotateQuiet     bool
	annotateWatch     bool
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [script.yaml]",
	Short: "Run a dimension script against a model and render the result",
	Long: `Replay the clicks of a YAML script through the interaction state machine,
render the model with its dimensions to PNG and print a dimension report.
With --watch the script and model are re-run whenever either file changes.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnnotate,
}

func init() {
	rootCmd.AddCommand(annotateCmd)

	annotateCmd.Flags().StringVarP(&annotateModel, "model", "m", "", "STL model (default: the script's model)")
	annotateCmd.Flags().StringVarP(&annotateOutput, "output", "o", "dimensions.png", "PNG output path")
	annotateCmd.Flags().StringVar(&annotateUnits, "units", "", "override units: m, mm, ft")
	annotateCmd.Flags().Float64Var(&annotateThreshold, "threshold", 0, "override the snap threshold")
	annotateCmd.Flags().BoolVar(&annotateShowSnap, "show-snap", false, "keep the last snap indicator in the image")
	annotateCmd.Flags().BoolVarP(&annotateQuiet, "quiet", "q", false, "do not print the report")
	annotateCmd.Flags().BoolVarP(&annotateWatch, "watch", "w", false, "re-run on script or model changes")
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	scriptPath := args[0]
	out := cmd.OutOrStdout()

	modelPath, err := annotate(cmd.Context(), out, scriptPath)
	if err != nil && !annotateWatch {
		return err
	}
	if err != nil {
		log.Error("%v", err)
	}
	if !annotateWatch {
		return nil
	}

	w, err := watcher.New(watcher.DefaultDebounce, log)
	if err != nil {
		return err
	}
	defer w.Close()

	files := []string{scriptPath}
	if modelPath != "" {
		modelFiles, err := openscad.WatchFiles(modelPath, log)
		if err != nil {
			return err
		}
		files = append(files, modelFiles...)
	}
	if err := w.Add(files...); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	log.Info("watching %d file(s), press Ctrl+C to stop", len(files))
	err = w.Run(ctx, func(changed []string) {
		if _, err := annotate(ctx, out, scriptPath); err != nil {
			log.Error("%v", err)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// annotate runs one script and returns the model path it used
func annotate(ctx context.Context, out io.Writer, scriptPath string) (string, error) {
	done := log.Step("annotate")
	defer done()

	s, err := script.Load(scriptPath)
	if err != nil {
		return "", err
	}

	modelPath := annotateModel
	if modelPath == "" && s.Model != "" {
		modelPath = s.Model
		if !filepath.IsAbs(modelPath) {
			modelPath = filepath.Join(filepath.Dir(scriptPath), modelPath)
		}
	}
	if modelPath == "" {
		return "", errors.New("no model: pass --model or set model in the script")
	}

	model, err := openscad.Load(ctx, modelPath, log)
	if err != nil {
		return modelPath, err
	}
	surfaces := []*scene.Surface{model.Surface(geometry.Identity())}

	c, err := annotateConfig()
	if err != nil {
		return modelPath, err
	}

	cam := s.BuildCamera(surfaces[0].WorldBounds())
	sink := viewer.NewImageSink(viewer.NewImageRenderer(cam, s.Viewport.Width, s.Viewport.Height))

	sess, err := session.New(session.Options{
		Config:   c,
		Surfaces: surfaces,
		Sink:     sink,
		Camera:   cam,
		Logger:   log,
	})
	if err != nil {
		return modelPath, err
	}

	runner := &script.Runner{Session: sess, Camera: cam, Log: log}
	if err := runner.Run(s); err != nil {
		return modelPath, err
	}

	if !annotateShowSnap {
		sink.RemoveGroup(render.GroupSnap)
	}
	if err := sink.SavePNG(annotateOutput, surfaces); err != nil {
		return modelPath, err
	}
	log.Info("wrote %s with %d dimension(s)", annotateOutput, sess.Store.Len())

	if annotateQuiet {
		return modelPath, nil
	}
	return modelPath, analysis.WriteReport(out, analysis.Report(sess.Store.Records(), sess.Store.Style()))
}

func annotateConfig() (config.Config, error) {
	c := cfg
	if annotateUnits != "" {
		c.Style.Units = annotateUnits
	}
	if annotateThreshold > 0 {
		c.Snap.Threshold = annotateThreshold
	}
	return c, c.Validate()
}
