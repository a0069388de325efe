package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/kelseyhightower/envconfig"
	charts "github.com/midbel/statcharts"
	"github.com/midbel/statcharts/dataset"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type Settings struct {
	Width   float64 `envconfig:"CHARTS_WIDTH" default:"800"`
	Height  float64 `envconfig:"CHARTS_HEIGHT" default:"600"`
	OutDir  string  `envconfig:"CHARTS_OUTDIR" default:"."`
	Workers int     `envconfig:"CHARTS_WORKERS" default:"4"`
	// Args are prepended to the arguments of the command line.
	Args string `envconfig:"CHARTS_ARGS"`
}

type options struct {
	Settings

	Kind    string
	Palette string
	XFormat string
	Marker  string
	Regions string
	Sheet   string
	Left    []int
	Right   []int

	Percent bool
	Point   bool
	Dash    bool
	Area    bool
	Grid    bool
	Verbose bool
}

var builders = map[string]func(options) (charts.Builder, error){
	"bar": func(o options) (charts.Builder, error) {
		return charts.BarChart{Percent: o.Percent, Dash: o.Dash, Grid: o.Grid}, nil
	},
	"grouped": func(o options) (charts.Builder, error) {
		return charts.GroupedBarChart{Percent: o.Percent, Dash: o.Dash, Grid: o.Grid}, nil
	},
	"horizontal": func(o options) (charts.Builder, error) {
		return charts.HorizontalBarChart{Percent: o.Percent}, nil
	},
	"pyramid": func(o options) (charts.Builder, error) {
		return charts.PyramidChart{Percent: o.Percent, Grid: o.Grid}, nil
	},
	"overlap": func(o options) (charts.Builder, error) {
		return charts.OverlapChart{Percent: o.Percent, Grid: o.Grid}, nil
	},
	"line": func(o options) (charts.Builder, error) {
		return charts.LineChart{
			XFormat: xformat(o.XFormat),
			Marker:  charts.ParseMarker(o.Marker),
			Area:    o.Area,
			Point:   o.Point,
			Dash:    o.Dash,
			Percent: o.Percent,
			Grid:    o.Grid,
		}, nil
	},
	"dual": func(o options) (charts.Builder, error) {
		return charts.DualAxisChart{
			Left:    o.Left,
			Right:   o.Right,
			XFormat: xformat(o.XFormat),
			Marker:  charts.ParseMarker(o.Marker),
			Area:    o.Area,
			Point:   o.Point,
			Percent: o.Percent,
			Grid:    o.Grid,
		}, nil
	},
	"barline": func(o options) (charts.Builder, error) {
		return charts.BarLineChart{}, nil
	},
	"donut": func(o options) (charts.Builder, error) {
		return charts.DonutChart{}, nil
	},
	"radar": func(o options) (charts.Builder, error) {
		return charts.RadarChart{}, nil
	},
	"treemap": func(o options) (charts.Builder, error) {
		return charts.TreeMapChart{}, nil
	},
	"wordcloud": func(o options) (charts.Builder, error) {
		return charts.WordCloudChart{}, nil
	},
	"map": func(o options) (charts.Builder, error) {
		if o.Regions == "" {
			return nil, fmt.Errorf("map: regions file required")
		}
		regions, err := dataset.LoadRegions(o.Regions)
		if err != nil {
			return nil, err
		}
		return charts.MapChart{Regions: regions}, nil
	},
}

func main() {
	var opts options
	if err := envconfig.Process("", &opts.Settings); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	args := os.Args[1:]
	if opts.Args != "" {
		extra, err := shellquote.Split(opts.Args)
		if err != nil {
			fmt.Fprintln(os.Stderr, "CHARTS_ARGS:", err)
			os.Exit(2)
		}
		args = append(extra, args...)
	}

	rootCmd := &cobra.Command{
		Use:           "draw [flags] file...",
		Short:         "Render charts from CSV and XLSX files to SVG",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, files []string) error {
			return run(cmd.Context(), opts, files)
		},
	}
	rootCmd.SetArgs(args)

	fs := rootCmd.Flags()
	fs.StringVarP(&opts.Kind, "type", "t", "bar", "chart type: "+strings.Join(kinds(), ", "))
	fs.Float64Var(&opts.Width, "width", opts.Width, "chart width")
	fs.Float64Var(&opts.Height, "height", opts.Height, "chart height")
	fs.StringVarP(&opts.OutDir, "output", "o", opts.OutDir, "output directory")
	fs.IntVarP(&opts.Workers, "workers", "w", opts.Workers, "files rendered at the same time")
	fs.StringVarP(&opts.Palette, "palette", "p", "bar", "colors of the series: bar, word, map, category10, tableau10")
	fs.StringVar(&opts.XFormat, "xformat", "", "strftime pattern of the x labels of line charts")
	fs.StringVar(&opts.Marker, "marker", "square", "marker of points: square, circle, diamond")
	fs.StringVar(&opts.Regions, "regions", "", "GeoJSON file with the regions of a map")
	fs.StringVar(&opts.Sheet, "sheet", "", "sheet to read in workbooks")
	fs.IntSliceVar(&opts.Left, "left", nil, "series drawn on the left axis of dual charts")
	fs.IntSliceVar(&opts.Right, "right", nil, "series drawn on the right axis of dual charts")
	fs.BoolVar(&opts.Percent, "percent", false, "values are percents")
	fs.BoolVar(&opts.Point, "point", false, "draw points on lines")
	fs.BoolVar(&opts.Dash, "dash", false, "draw guides")
	fs.BoolVar(&opts.Area, "area", false, "fill the area under lines")
	fs.BoolVar(&opts.Grid, "grid", false, "draw grid lines")
	fs.BoolVarP(&opts.Verbose, "verbose", "v", false, "print debug messages")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, files []string) error {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	charts.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	mk, ok := builders[opts.Kind]
	if !ok {
		return fmt.Errorf("%s: unknown chart type", opts.Kind)
	}
	builder, err := mk(opts)
	if err != nil {
		return err
	}
	palette, ok := charts.PaletteByName(opts.Palette)
	if !ok {
		return fmt.Errorf("%s: unknown palette", opts.Palette)
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return err
	}
	var (
		overlays = charts.NewOverlays()
		outputs  = outputNames(files, opts.OutDir)
		grp, sub = errgroup.WithContext(ctx)
	)
	grp.SetLimit(max(1, opts.Workers))
	for i, file := range files {
		grp.Go(func() error {
			if err := sub.Err(); err != nil {
				return err
			}
			return render(builder, overlays, palette, file, outputs[i], opts)
		})
	}
	return grp.Wait()
}

// outputNames gives one svg file per input. Inputs sharing the same base name
// get a numeric suffix so that none overwrites another.
func outputNames(files []string, dir string) []string {
	var (
		list  = make([]string, 0, len(files))
		taken = make(map[string]struct{})
	)
	for _, file := range files {
		var (
			base = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
			name = base
		)
		for n := 2; ; n++ {
			if _, ok := taken[name]; !ok {
				break
			}
			name = fmt.Sprintf("%s-%d", base, n)
		}
		taken[name] = struct{}{}
		list = append(list, filepath.Join(dir, name+".svg"))
	}
	return list
}

func render(builder charts.Builder, overlays *charts.Overlays, palette charts.Palette, file, out string, opts options) error {
	table, err := load(file, opts.Sheet)
	if err != nil {
		return err
	}
	var (
		surface = charts.NewSVGSurface()
		style   charts.Style
	)
	if opts.Palette != "bar" {
		style.Fill.List = palette
	}
	chart := charts.New(builder, surface, charts.WithOverlays(overlays), charts.WithStyle(style))
	defer chart.Teardown()

	cfg := charts.Config{
		Width:  opts.Width,
		Height: opts.Height,
		Series: table.Series(palette),
	}
	if err := chart.Draw(cfg); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	w, err := os.Create(out)
	if err != nil {
		return err
	}
	defer w.Close()
	if err := surface.Render(w); err != nil {
		return fmt.Errorf("%s: %w", out, err)
	}
	charts.Logger().Info("chart rendered", "file", file, "output", out, "primitives", surface.Len())
	return nil
}

func load(file, sheet string) (dataset.Table, error) {
	if sheet == "" {
		return dataset.Load(file)
	}
	t, err := dataset.ReadXLSX(file, sheet)
	if err != nil {
		return t, fmt.Errorf("%s: %w", file, err)
	}
	t.Name = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	return t, nil
}

func xformat(pattern string) charts.Formatter {
	if pattern == "" {
		return nil
	}
	return charts.StrftimeFormat(pattern)
}

func kinds() []string {
	var list []string
	for k := range builders {
		list = append(list, k)
	}
	sort.Strings(list)
	return list
}

