// Package layout measures document blocks against the core PDF font metrics: paragraphs
// are wrapped into lines, table cells are wrapped per column and row heights computed,
// and images are scaled into their boxes.
package layout

import (
	"github.com/sirupsen/logrus"
)

// Options configures the layout engine.
type Options struct {
	// Width is the content width in points.
	Width float64
	Debug bool
}

// Engine lays out a story of blocks.
type Engine struct {
	options  Options
	measurer *Measurer
	log      logrus.FieldLogger
}

// NewEngine creates a layout engine with its own measurer.
func NewEngine(log logrus.FieldLogger) *Engine {
	if log == nil {
		log = logrus.New()
	}
	return &Engine{
		measurer: NewMeasurer(),
		log:      log,
	}
}

// SetOptions sets the layout options.
func (e *Engine) SetOptions(options Options) {
	e.options = options
}

// Measurer exposes the engine's measurer.
func (e *Engine) Measurer() *Measurer { return e.measurer }

// Layout measures every block at the content width.
func (e *Engine) Layout(blocks []Block) []Block {
	for _, b := range blocks {
		b.Layout(e.measurer, e.options.Width)
		if e.options.Debug {
			e.log.WithFields(logrus.Fields{
				"role":   b.Role(),
				"height": b.Height(),
			}).Debug("laid out block")
		}
	}
	return blocks
}
