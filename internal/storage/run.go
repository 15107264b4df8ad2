package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"

	"github.com/san-kum/glcanvas/internal/canvas"
	"github.com/san-kum/glcanvas/internal/config"
	"github.com/san-kum/glcanvas/internal/frame"
	"github.com/san-kum/glcanvas/internal/session"
)

// Run is an open run directory. Close or Finish must be called once.
type Run struct {
	dir  string
	meta RunMetadata

	statsFile *os.File
	stats     *csv.Writer

	gifFrames []*image.Paletted
	closed    bool
}

func (r *Run) ID() string  { return r.meta.ID }
func (r *Run) Dir() string { return r.dir }

func (r *Run) Metadata() RunMetadata { return r.meta }

// AppendSample adds one row to stats.csv.
func (r *Run) AppendSample(smp frame.Sample) error {
	return r.stats.Write(formatSample(smp))
}

// WriteFrame stores a captured image in the run's format. GIF frames
// are buffered and written as one animation on close.
func (r *Run) WriteFrame(index int, img image.Image) error {
	switch r.meta.Format {
	case config.FormatNone, "":
		return nil
	case config.FormatGIF:
		r.gifFrames = append(r.gifFrames, toPaletted(img))
		return nil
	case config.FormatPNG, config.FormatWebP:
	default:
		return fmt.Errorf("unknown frame format %q", r.meta.Format)
	}

	dir := filepath.Join(r.dir, framesDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	name := fmt.Sprintf("frame_%05d.%s", index, r.meta.Format)
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	if r.meta.Format == config.FormatWebP {
		if err := nativewebp.Encode(f, img, nil); err != nil {
			return fmt.Errorf("webp encode: %w", err)
		}
		return nil
	}
	return png.Encode(f, img)
}

// WriteSVG stores an SVG rendering alongside the run.
func (r *Run) WriteSVG(svg string) error {
	return os.WriteFile(filepath.Join(r.dir, svgFile), []byte(svg), 0644)
}

// Observer records every frame's sample and captures the page every
// nth frame. The first frame is always captured.
func (r *Run) Observer(every int) session.Observer {
	if every <= 0 {
		every = 1
	}
	return session.ObserverFunc(func(smp frame.Sample, doc *canvas.Document) error {
		if err := r.AppendSample(smp); err != nil {
			return err
		}
		if smp.Index%every != 0 {
			return nil
		}
		return r.WriteFrame(smp.Index, doc.Snapshot())
	})
}

// Finish records the run outcome in metadata.json and closes the run.
func (r *Run) Finish(frames, failures int, metrics map[string]float64) error {
	r.meta.Frames = frames
	r.meta.Failures = failures
	for k, v := range metrics {
		r.meta.Metrics[k] = v
	}
	return errors.Join(r.writeMetadata(), r.Close())
}

// Close flushes the statistics and writes the GIF animation, if any.
func (r *Run) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	r.stats.Flush()
	errs := []error{r.stats.Error(), r.statsFile.Close()}

	if len(r.gifFrames) > 0 {
		errs = append(errs, r.writeGIF())
	}
	return errors.Join(errs...)
}

func (r *Run) writeGIF() error {
	delay := 0
	if r.meta.FPS > 0 {
		delay = int(100/r.meta.FPS + 0.5)
	}

	anim := gif.GIF{LoopCount: 0}
	for _, img := range r.gifFrames {
		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, delay)
	}

	f, err := os.Create(filepath.Join(r.dir, gifFile))
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}

func (r *Run) writeMetadata() error {
	f, err := os.Create(filepath.Join(r.dir, metadataFile))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(r.meta)
}

func toPaletted(img image.Image) *image.Paletted {
	b := img.Bounds()
	p := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(p, b, img, b.Min)
	return p
}
