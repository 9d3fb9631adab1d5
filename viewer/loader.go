package viewer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// ErrRemoteImage is reported for http(s) sources; images are only read from
// disk.
var ErrRemoteImage = errors.New("remote images are not fetched")

type LoadState int

const (
	NotRequested LoadState = iota
	Loading
	Loaded
	Failed
)

type loadResult struct {
	path string
	img  image.Image
	err  error
}

// Loader decodes images on background goroutines. Decoded images are
// handed back through Poll and turned into ebiten images on the game
// goroutine on first use.
type Loader struct {
	decode func(path string) (image.Image, error)

	jobQueue    chan string
	resultQueue chan loadResult

	pendingMu sync.Mutex
	pending   map[string]bool

	// Owned by the game goroutine.
	decoded map[string]image.Image
	images  map[string]*ebiten.Image
	errs    map[string]error
}

// NewLoader starts workers loader goroutines reading image files.
func NewLoader(workers int) *Loader {
	return newLoader(workers, DecodeFile)
}

func newLoader(workers int, decode func(string) (image.Image, error)) *Loader {
	if workers < 1 {
		workers = 1
	}
	l := &Loader{
		decode:      decode,
		jobQueue:    make(chan string, 64),
		resultQueue: make(chan loadResult, 64),
		pending:     make(map[string]bool),
		decoded:     make(map[string]image.Image),
		images:      make(map[string]*ebiten.Image),
		errs:        make(map[string]error),
	}
	for i := 0; i < workers; i++ {
		go l.loader()
	}
	return l
}

// DecodeFile reads and decodes a local image.
func DecodeFile(path string) (image.Image, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return nil, fmt.Errorf("%s: %w", path, ErrRemoteImage)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

func (l *Loader) loader() {
	for path := range l.jobQueue {
		img, err := l.decode(path)
		l.resultQueue <- loadResult{path: path, img: img, err: err}
	}
}

// Request queues path for loading unless it is already known. A full queue
// drops the request; it is retried on the next call.
func (l *Loader) Request(path string) {
	if path == "" || l.State(path) != NotRequested {
		return
	}
	l.pendingMu.Lock()
	defer l.pendingMu.Unlock()
	if l.pending[path] {
		return
	}
	select {
	case l.jobQueue <- path:
		l.pending[path] = true
	default:
	}
}

// Poll collects finished loads and returns the paths that settled.
func (l *Loader) Poll() []string {
	var done []string
	for {
		select {
		case r := <-l.resultQueue:
			if r.err != nil {
				l.errs[r.path] = r.err
			} else {
				l.decoded[r.path] = r.img
			}
			l.pendingMu.Lock()
			delete(l.pending, r.path)
			l.pendingMu.Unlock()
			done = append(done, r.path)
		default:
			return done
		}
	}
}

// State reports where path is in its load.
func (l *Loader) State(path string) LoadState {
	if _, ok := l.errs[path]; ok {
		return Failed
	}
	if _, ok := l.decoded[path]; ok {
		return Loaded
	}
	l.pendingMu.Lock()
	defer l.pendingMu.Unlock()
	if l.pending[path] {
		return Loading
	}
	return NotRequested
}

// Err returns why path failed to load.
func (l *Loader) Err(path string) error {
	return l.errs[path]
}

// Size returns the decoded pixel size of path.
func (l *Loader) Size(path string) (int, int, bool) {
	img, ok := l.decoded[path]
	if !ok {
		return 0, 0, false
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), true
}

// Image returns the ebiten image for path, requesting it if needed. Failed
// loads return the placeholder.
func (l *Loader) Image(path string) (*ebiten.Image, LoadState) {
	if img, ok := l.images[path]; ok {
		return img, Loaded
	}
	switch st := l.State(path); st {
	case Loaded:
		img := ebiten.NewImageFromImage(l.decoded[path])
		l.images[path] = img
		return img, Loaded
	case Failed:
		return Placeholder(), Failed
	case NotRequested:
		l.Request(path)
		return nil, Loading
	default:
		return nil, st
	}
}

// Forget drops everything known about path so it is loaded again.
func (l *Loader) Forget(path string) {
	delete(l.decoded, path)
	delete(l.errs, path)
	if img, ok := l.images[path]; ok {
		img.Deallocate()
		delete(l.images, path)
	}
}

const placeholderSize = 320

var placeholder *ebiten.Image

// Placeholder is drawn in place of images that could not be loaded: a grey
// frame with a crossed picture outline.
func Placeholder() *ebiten.Image {
	if placeholder != nil {
		return placeholder
	}
	const s = placeholderSize
	img := ebiten.NewImage(s, s*3/4)
	img.Fill(color.RGBA{0x42, 0x42, 0x42, 0xff})
	fg := color.RGBA{0x9e, 0x9e, 0x9e, 0xff}
	w, h := float32(s), float32(s*3/4)
	vector.StrokeRect(img, w*0.3, h*0.3, w*0.4, h*0.4, 3, fg, true)
	vector.StrokeLine(img, w*0.3, h*0.3, w*0.7, h*0.7, 3, fg, true)
	vector.StrokeLine(img, w*0.7, h*0.3, w*0.3, h*0.7, 3, fg, true)
	placeholder = img
	return img
}
