package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/valorem-chem/milabel/pkg/catalog"
	"github.com/valorem-chem/milabel/pkg/config"
	"github.com/valorem-chem/milabel/pkg/errors"
	"github.com/valorem-chem/milabel/pkg/fonts"
	"github.com/valorem-chem/milabel/pkg/label"
	"github.com/valorem-chem/milabel/pkg/render"
	"github.com/valorem-chem/milabel/pkg/scale"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	size        string  // label size name from the size table
	dpi         int     // output resolution
	bleed       float64 // bleed margin in mm per side
	format      string  // "png" or "svg"
	output      string  // output directory
	catalogPath string  // catalog file override
	configPath  string  // config file
	fontPath    string  // font file override
}

// newRenderCmd creates the render command. It ingests a job CSV, joins each
// row against the product catalog, and renders one label per job on a
// worker pool.
func newRenderCmd() *cobra.Command {
	opts := renderOpts{
		size:   scale.Reference.Name,
		format: string(render.FormatPNG),
	}

	cmd := &cobra.Command{
		Use:   "render [jobs.csv]",
		Short: "Render labels for a CSV of jobs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.size, "size", "s", opts.size, "label size name (see 'milabel sizes')")
	cmd.Flags().IntVar(&opts.dpi, "dpi", 0, "output resolution (default from config)")
	cmd.Flags().Float64Var(&opts.bleed, "bleed", -1, "bleed margin in mm per side (default from config)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: png or svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default from config)")
	cmd.Flags().StringVar(&opts.catalogPath, "catalog", "", "catalog file (overrides config)")
	cmd.Flags().StringVar(&opts.fontPath, "font", "", "font file (overrides discovery)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "config file (TOML)")

	return cmd
}

func runRender(ctx context.Context, jobFile string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.dpi == 0 {
		opts.dpi = cfg.DPI
	}
	if opts.bleed < 0 {
		opts.bleed = cfg.BleedMM
	}
	if opts.output == "" {
		opts.output = cfg.OutputDir
	}
	if opts.catalogPath == "" {
		opts.catalogPath = cfg.CatalogPath
	}
	if opts.fontPath == "" {
		opts.fontPath = cfg.FontPath
	}

	format := render.Format(opts.format)
	if format != render.FormatPNG && format != render.FormatSVG {
		return errors.New(errors.ErrCodeInvalidInput, "unknown output format %q", opts.format)
	}

	size, err := cfg.LookupSize(opts.size)
	if err != nil {
		return err
	}

	f, err := os.Open(jobFile)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "opening job file %s", jobFile)
	}
	jobs, err := parseJobs(f)
	f.Close()
	if err != nil {
		return err
	}

	// The font set is shared read-only across the pool.
	fontSet, err := fonts.Load(scale.Resolve(size, opts.dpi), opts.fontPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.output, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "creating output directory %s", opts.output)
	}

	store := catalog.NewFileStore(opts.catalogPath)
	runID := uuid.NewString()

	logger.Debug("starting batch", "run", runID, "jobs", len(jobs),
		"size", size.Name, "dpi", opts.dpi, "format", format)
	prog := newProgress(logger)

	var mu sync.Mutex
	var written []string

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, job := range jobs {
		job := job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			entry, err := store.Get(job.ProductID)
			if err != nil {
				return err
			}
			rec, err := label.Build(entry, job.Input)
			if err != nil {
				return errors.Wrap(errors.GetCode(err), err,
					"job %s lot %s", job.ProductID, job.Input.LotID)
			}
			for _, w := range rec.Warnings {
				logger.Warn(w.Message, "code", w.Code, "run", runID)
			}

			data, err := render.Render(rec, render.Options{
				Size:    size,
				DPI:     opts.dpi,
				BleedMM: opts.bleed,
				Format:  format,
				Fonts:   fontSet,
			})
			if err != nil {
				return err
			}

			name := fmt.Sprintf("label_%s_%s_%s.%s",
				sanitize(job.ProductID), sanitize(job.Input.LotID), sanitize(size.Name), format)
			path := filepath.Join(opts.output, name)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "writing %s", path)
			}

			mu.Lock()
			written = append(written, path)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		printError("batch %s failed: %s", runID, errors.UserMessage(err))
		return err
	}

	sort.Strings(written)
	prog.done(fmt.Sprintf("rendered %d labels", len(written)))
	printSuccess("batch %s complete", runID)
	for _, path := range written {
		printFile(path)
	}
	return nil
}

// sanitize reduces a value to filename-safe characters.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return -1
		}
	}, s)
}
