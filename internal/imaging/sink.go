package imaging

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/anthonynsimon/bild/imgio"
	"go.uber.org/multierr"
)

// Sink receives intermediate grids under a logical stage name
// ("grayscale", "blurred", "graph", ...). Implementations may drop them;
// detection never depends on what a Sink does.
type Sink interface {
	Save(name string, img image.Image)
}

// NopSink discards everything.
type NopSink struct{}

// Save implements Sink.
func (NopSink) Save(string, image.Image) {}

// DirSink writes each grid as <Dir>/<name>.png. Write failures are logged
// and collected; Err reports all of them together.
type DirSink struct {
	Dir string

	mu   sync.Mutex
	err  error
	once sync.Once
}

// NewDirSink returns a sink writing into dir, created on first Save.
func NewDirSink(dir string) *DirSink {
	return &DirSink{Dir: dir}
}

// Save implements Sink.
func (s *DirSink) Save(name string, img image.Image) {
	s.once.Do(func() {
		if err := os.MkdirAll(s.Dir, 0o755); err != nil {
			s.record(fmt.Errorf("create output dir: %w", err))
		}
	})

	path := filepath.Join(s.Dir, name+".png")
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		log.Printf("Failed to save %s: %v", path, err)
		s.record(fmt.Errorf("save %s: %w", name, err))
	}
}

// Err returns every failure seen so far, or nil.
func (s *DirSink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *DirSink) record(err error) {
	s.mu.Lock()
	s.err = multierr.Append(s.err, err)
	s.mu.Unlock()
}
