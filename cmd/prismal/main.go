// Command prismal renders concentric layers of regular polygons.
//
// Usage:
//
//	prismal render  [-preset f.yaml] [-format png] [-o out.png] [flags]
//	prismal serve   [-preset f.yaml] [-addr :8080]
//	prismal preview [-preset f.yaml] [-seed n]
//	prismal formats
//	prismal version
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gogpu/prismal"
	"github.com/gogpu/prismal/internal/config"
	applog "github.com/gogpu/prismal/internal/log"
	"github.com/gogpu/prismal/internal/server"
	"github.com/gogpu/prismal/internal/tui"
	"github.com/gogpu/prismal/surface"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// errUsage reports bad command line input; the usage text has been printed.
var errUsage = errors.New("usage")

func run(args []string, stdout, stderr io.Writer) int {
	opts := applog.FromEnv()
	opts.Writer = stderr
	applog.Init(opts)
	defer applog.Close()

	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	var err error
	switch args[0] {
	case "render":
		err = renderCmd(args[1:], stdout, stderr)
	case "serve":
		err = serveCmd(args[1:], stderr)
	case "preview":
		err = previewCmd(args[1:], stderr)
	case "formats":
		for _, f := range surface.Formats() {
			fmt.Fprintln(stdout, f)
		}
	case "version":
		fmt.Fprintln(stdout, "prismal", prismal.Version)
	case "help", "-h", "-help", "--help":
		usage(stdout)
	default:
		fmt.Fprintf(stderr, "prismal: unknown command %q\n", args[0])
		usage(stderr)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		return 2
	default:
		fmt.Fprintln(stderr, "prismal:", err)
		return 1
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `usage: prismal <command> [flags]

commands:
  render   render a preset to a file
  serve    run the HTTP render service
  preview  interactive terminal preview
  formats  list output formats
  version  print the version
`)
}

// presetFlags are the preset overrides shared by the subcommands.
type presetFlags struct {
	preset    string
	layers    int
	scale     float64
	structure int
	vertices  int
	options   string
	seed      uint64
	width     int
	height    int
}

func (f *presetFlags) register(fs *flag.FlagSet) {
	d := config.Defaults()
	fs.StringVar(&f.preset, "preset", "", "YAML preset file")
	fs.IntVar(&f.layers, "layers", d.Layers, "number of layers")
	fs.Float64Var(&f.scale, "scale", d.Scale, "radial scale factor")
	fs.IntVar(&f.structure, "structure", d.StructureVertices, "structure polygon vertices")
	fs.IntVar(&f.vertices, "vertices", d.PolygonVertices, "drawn polygon vertices")
	fs.StringVar(&f.options, "options", strings.Join(d.Options, ","),
		"comma separated drawing options: "+strings.Join(prismal.DrawingOptionNames(), ", "))
	fs.Uint64Var(&f.seed, "seed", 0, "seed for random colors")
	fs.IntVar(&f.width, "width", d.Width, "output width")
	fs.IntVar(&f.height, "height", d.Height, "output height")
}

// load reads the preset and applies the flags that were set explicitly.
func (f *presetFlags) load(fs *flag.FlagSet) (config.Preset, error) {
	p, err := config.Load(f.preset)
	if err != nil {
		return p, err
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "layers":
			p.Layers = f.layers
		case "scale":
			p.Scale = f.scale
		case "structure":
			p.StructureVertices = f.structure
		case "vertices":
			p.PolygonVertices = f.vertices
		case "options":
			p.Options = splitList(f.options)
		case "seed":
			seed := f.seed
			p.Seed = &seed
		case "width":
			p.Width = f.width
		case "height":
			p.Height = f.height
		}
	})
	return p, p.Validate()
}

// parseFlags parses args and marks parse failures as usage errors.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func renderCmd(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var pf presetFlags
	pf.register(fs)
	format := fs.String("format", "", "output format (default from -o extension, else png)")
	output := fs.String("o", "", "output file, - for stdout (default prismal.<format>)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return errUsage
	}

	p, err := pf.load(fs)
	if err != nil {
		return err
	}
	cfg, err := p.RenderConfig()
	if err != nil {
		return err
	}

	f := *format
	if f == "" {
		f = strings.TrimPrefix(filepath.Ext(*output), ".")
	}
	if f == "" {
		f = "png"
	}
	out := *output
	if out == "" {
		out = "prismal." + f
	}

	target, err := surface.NewByFormat(f, surface.DefaultOptions(p.Width, p.Height))
	if err != nil {
		return err
	}
	stats, err := draw(out, stdout, target, cfg, prismal.NewRenderer(p.RendererOptions()...))
	if err != nil {
		return err
	}
	applog.WithComponent("render").Info("rendered",
		"output", out,
		"format", f,
		"layers", stats.LayersDrawn,
		"polygons", stats.PolygonsDrawn,
		"culled", stats.PolygonsCulled,
		"terminated_at", stats.TerminatedAt)
	return nil
}

// draw encodes onto stdout when out is "-", else into the file out.
func draw(out string, stdout io.Writer, target surface.Surface, cfg *prismal.RenderConfig, r *prismal.Renderer) (
	stats prismal.Stats, err error,
) {
	if out == "-" {
		return surface.Draw(stdout, target, cfg, r)
	}
	file, err := os.Create(out)
	if err != nil {
		return stats, err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return surface.Draw(file, target, cfg, r)
}

func serveCmd(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var pf presetFlags
	pf.register(fs)
	sc := config.ServerFromEnv()
	fs.StringVar(&sc.Addr, "addr", sc.Addr, "listen address")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	p, err := pf.load(fs)
	if err != nil {
		return err
	}

	srv := server.New(sc, p, applog.L())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Listen() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		applog.L().Info("shutting down")
		return srv.Shutdown()
	}
}

func previewCmd(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var pf presetFlags
	pf.register(fs)
	color := fs.Bool("color", true, "colored output")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	p, err := pf.load(fs)
	if err != nil {
		return err
	}
	cfg, err := p.RenderConfig()
	if err != nil {
		return err
	}

	opts := tui.Options{Color: *color, Seed: uint64(time.Now().UnixNano())}
	if p.Seed != nil {
		opts.Seed = *p.Seed
	}
	return tui.Run(cfg, opts)
}
