package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gocv.io/x/gocv"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-cvpg/pkg/pipeline"
	"github.com/askiada/go-cvpg/pkg/pipeline/drawer"
	"github.com/askiada/go-cvpg/pkg/pipeline/measure"
	"github.com/askiada/go-cvpg/pkg/pipeline/model"
	"github.com/askiada/go-cvpg/pkg/transform"
)

var (
	ErrNoImages    = errors.New("at least one image is required")
	ErrInvalidSet  = errors.New("expected name=value")
	ErrStageFailed = errors.New("stage failed")
	ErrWriteImage  = errors.New("unable to write image")
)

type runOptions struct {
	images    []string
	sets      []string
	outputDir string
	graphFile string
	jobs      int
	slowest   int
}

func newRunCmd(a *app) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run <transform>",
		Short: "Run the default window of a transform on images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("out") {
				opts.outputDir = a.cfg.Run.OutputDir
			}
			if !cmd.Flags().Changed("graph") {
				opts.graphFile = a.cfg.Run.GraphFile
			}
			if !cmd.Flags().Changed("jobs") {
				opts.jobs = a.cfg.Run.Jobs
			}
			return a.run(cmd.Context(), args[0], opts)
		},
	}
	cmd.Flags().StringSliceVar(&opts.images, "image", nil, "image to transform, can be repeated")
	cmd.Flags().StringArrayVar(&opts.sets, "set", nil, "param value as [Stage.]name=value, can be repeated")
	cmd.Flags().StringVar(&opts.outputDir, "out", "", "directory of the transformed images")
	cmd.Flags().StringVar(&opts.graphFile, "graph", "", "DOT file of the stages and their timings")
	cmd.Flags().IntVar(&opts.jobs, "jobs", 0, "number of images transformed at the same time")
	cmd.Flags().IntVar(&opts.slowest, "slowest", 0, "log the n slowest stages of every image")
	_ = cmd.MarkFlagRequired("image")
	return cmd
}

func (a *app) run(ctx context.Context, name string, opts *runOptions) error {
	if len(opts.images) == 0 {
		return ErrNoImages
	}
	if opts.jobs <= 0 {
		opts.jobs = 1
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := os.MkdirAll(opts.outputDir, 0o755)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", opts.outputDir)
	}

	// Params are checked once before any image is read.
	_, err = a.stages(name, opts.sets)
	if err != nil {
		return err
	}

	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(opts.jobs)
	for _, img := range opts.images {
		img := img
		errGrp.Go(func() error {
			if dCtx.Err() != nil {
				return dCtx.Err()
			}
			return a.runImage(name, img, opts, len(opts.images) > 1)
		})
	}
	return errGrp.Wait()
}

// stages builds the stages of the transform called name and applies sets.
func (a *app) stages(name string, sets []string) ([]pipeline.Stage, error) {
	stages, err := a.registry.New(name, transform.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	for _, set := range sets {
		key, value, ok := strings.Cut(set, "=")
		if !ok {
			return nil, errors.Wrapf(ErrInvalidSet, "%q", set)
		}
		err = transform.SetParam(stages, strings.TrimSpace(key), strings.TrimSpace(value))
		if err != nil {
			return nil, errors.Wrapf(err, "unable to set %s", key)
		}
	}
	return stages, nil
}

func (a *app) runImage(name, imagePath string, opts *runOptions, many bool) error {
	base := strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath))
	logger := a.logger.WithFields(logrus.Fields{"transform": name, "image": imagePath})

	stages, err := a.stages(name, opts.sets)
	if err != nil {
		return err
	}
	w, err := transform.NewWindow(imagePath, stages, []transform.Option{transform.WithLogger(a.logger)},
		pipeline.WithName(base),
		pipeline.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}

	var (
		pipeOpts []model.PipelineOption
		msr      *measure.DefaultMeasure
	)
	if opts.graphFile != "" || opts.slowest > 0 {
		msr = measure.NewDefaultMeasure()
		pipeOpts = append(pipeOpts, measure.PipelineMeasure(msr))
	}
	if opts.graphFile != "" {
		graphFile := opts.graphFile
		if many {
			graphFile = suffixed(graphFile, base)
		}
		pipeOpts = append(pipeOpts, drawer.PipelineDrawer(drawer.NewDOTDrawer(graphFile), msr))
	}

	p, err := pipeline.Single(w, pipeOpts...)
	if err != nil {
		return err
	}
	out, _, err := p.RunPipeline()
	if err != nil {
		_ = p.Close()
		return err
	}
	defer func() {
		if out != nil {
			_ = out.Close()
		}
	}()

	err = p.Close()
	if err != nil {
		return err
	}

	for _, stageErr := range p.Errors() {
		logger.WithError(stageErr.Err).WithField("stage", stageErr.Stage).Error("stage failed")
	}
	if msr != nil && opts.slowest > 0 {
		for _, st := range measure.Slowest(msr, opts.slowest) {
			logger.WithFields(logrus.Fields{
				"stage":   st.Label,
				"average": st.Average,
				"runs":    st.Runs,
			}).Info("slow stage")
		}
	}
	if errs := p.Errors(); len(errs) > 0 {
		return errors.Wrapf(ErrStageFailed, "%s: %s", imagePath, errs[0])
	}

	dst := filepath.Join(opts.outputDir, fmt.Sprintf("%s_%s.png", base, name))
	if out == nil || out.Empty() || !gocv.IMWrite(dst, *out) {
		return errors.Wrapf(ErrWriteImage, "%s", dst)
	}
	logger.WithField("output", dst).Info("image transformed")

	return nil
}

// suffixed inserts suffix before the extension of path.
func suffixed(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_" + suffix + ext
}
