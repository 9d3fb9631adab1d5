package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"drone-gallery/gallery"
)

// Options are the command line settings.
type Options struct {
	Items    string
	State    string
	MinZoom  float64
	MaxZoom  float64
	ZoomStep float64

	Query    string
	Tags     []string
	Statuses []string
	From     string
	To       string
	Filter   string

	Watch bool
	EXIF  bool
}

func defaultOptions() Options {
	return Options{
		MinZoom:  GalleryMinZoom,
		MaxZoom:  GalleryMaxZoom,
		ZoomStep: GalleryZoomStep,
	}
}

// Criteria turns the filter flags into gallery filter criteria. A filter
// starting with "@" names a file holding the script.
func (o Options) Criteria() (gallery.FilterCriteria, error) {
	c := gallery.FilterCriteria{
		Tags:      o.Tags,
		TextQuery: o.Query,
	}
	for _, s := range o.Statuses {
		c.Statuses = append(c.Statuses, gallery.ParseStatus(s))
	}
	var err error
	if c.From, err = parseDate(o.From); err != nil {
		return c, fmt.Errorf("--from: %w", err)
	}
	if c.To, err = parseDate(o.To); err != nil {
		return c, fmt.Errorf("--to: %w", err)
	}
	if !c.To.IsZero() && len(o.To) == len("2006-01-02") {
		// A bare date includes the whole day.
		c.To = c.To.Add(24*time.Hour - time.Nanosecond)
	}
	c.Script = o.Filter
	if strings.HasPrefix(o.Filter, "@") {
		data, err := os.ReadFile(strings.TrimPrefix(o.Filter, "@"))
		if err != nil {
			return c, fmt.Errorf("--filter: %w", err)
		}
		c.Script = string(data)
	}
	return c, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func newRootCommand() *cobra.Command {
	opts := defaultOptions()

	cmd := &cobra.Command{
		Use:   "drone-gallery [manifest.yaml]",
		Short: "Browse drone inspection photos on a map",
		Long: `Shows the photos of a gallery manifest as a thumbnail grid next to an
overview map of their capture positions. Clicking a photo opens it in a
pan/zoom lightbox. Without a manifest a built-in sample gallery is shown.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Items = args[0]
			}
			return run(opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.Items, "items", "i", "", "Gallery manifest (YAML)")
	f.StringVarP(&opts.State, "state", "s", "", "Session state to restore (saved with Ctrl+S)")
	f.Float64Var(&opts.MinZoom, "min-zoom", opts.MinZoom, "Lightbox resting scale")
	f.Float64Var(&opts.MaxZoom, "max-zoom", opts.MaxZoom, "Lightbox maximum scale")
	f.Float64Var(&opts.ZoomStep, "zoom-step", opts.ZoomStep, "Lightbox scale change per zoom step")
	f.StringVarP(&opts.Query, "query", "q", "", "Fuzzy text filter over title, location, drone and tags")
	f.StringSliceVar(&opts.Tags, "tag", nil, "Only items with any of these tag ids or labels")
	f.StringSliceVar(&opts.Statuses, "status", nil, "Only items with any of these statuses (normal, attention, repair_needed, repaired)")
	f.StringVar(&opts.From, "from", "", "Only items captured on or after this date (YYYY-MM-DD or RFC 3339)")
	f.StringVar(&opts.To, "to", "", "Only items captured on or before this date")
	f.StringVar(&opts.Filter, "filter", "", "Starlark predicate over item fields, or @file")
	f.BoolVarP(&opts.Watch, "watch", "w", false, "Reload the manifest when it changes")
	f.BoolVar(&opts.EXIF, "exif", false, "Fill missing metadata from the images' EXIF data")

	return cmd
}

func run(opts Options) error {
	game, err := NewGame(opts)
	if err != nil {
		return err
	}
	defer game.Close()

	ebiten.SetWindowSize(WindowWidth, WindowHeight)
	ebiten.SetWindowTitle(WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(game)
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}
