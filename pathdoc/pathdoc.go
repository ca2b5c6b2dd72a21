// Package pathdoc converts keyframe paths to and from a structured
// document representation.
//
// The document is a plain record of the keyframe sequence — time,
// position and orientation per keyframe — and marshals to YAML. It is the
// exchange format for saving camera flights to disk and restoring them,
// and deliberately carries no derived data: tangents and caches are
// recomputed by the interpolator after import.
package pathdoc

import (
	"errors"
	"fmt"

	"github.com/npillmayer/motion"
	"github.com/npillmayer/motion/kfpath"
	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// tracer writes to trace with key 'motion.pathdoc'
func tracer() tracing.Trace {
	return tracing.Select("motion.pathdoc")
}

// ErrEmptyDocument indicates a document with no keyframes.
var ErrEmptyDocument = errors.New("path document has no keyframes")

// Document is the external representation of a keyframe path.
type Document struct {
	KeyFrames []KeyFrameRecord `yaml:"keyframes"`
}

// KeyFrameRecord is one keyframe: a time tag plus a transform.
type KeyFrameRecord struct {
	Time        float64 `yaml:"time"`
	Position    Coord   `yaml:"position"`
	Orientation Orient  `yaml:"orientation"`
}

// Coord is a 3D position.
type Coord struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Orient is an orientation quaternion, (x,y,z) vector part plus w.
type Orient struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
	W float64 `yaml:"w"`
}

// FromInterpolator snapshots the keyframe sequence of ip into a document.
// Live keyframes are exported at their current values.
func FromInterpolator(ip *kfpath.Interpolator) (*Document, error) {
	doc := &Document{}
	for i := 0; i < ip.Count(); i++ {
		fr, err := ip.KeyFrameAt(i)
		if err != nil {
			return nil, err
		}
		t, err := ip.KeyFrameTime(i)
		if err != nil {
			return nil, err
		}
		p, q := fr.Position(), fr.Orientation()
		doc.KeyFrames = append(doc.KeyFrames, KeyFrameRecord{
			Time:        t,
			Position:    Coord{X: p.X, Y: p.Y, Z: p.Z},
			Orientation: Orient{X: q.X(), Y: q.Y(), Z: q.Z(), W: q.W()},
		})
	}
	tracer().Debugf("exported %d keyframes", len(doc.KeyFrames))
	return doc, nil
}

// Apply replaces the keyframe sequence of ip with the document's.
// Keyframe times must be strictly increasing; on the first offending
// record the error is returned and ip is left with the records applied so
// far (callers keeping transactional semantics apply to a fresh
// interpolator first). All of ip's derived data is invalidated.
func (doc *Document) Apply(ip *kfpath.Interpolator) error {
	if len(doc.KeyFrames) == 0 {
		return ErrEmptyDocument
	}
	ip.DeleteAllKeyFrames()
	for i, rec := range doc.KeyFrames {
		fr := motion.NewFrame(
			motion.V(rec.Position.X, rec.Position.Y, rec.Position.Z),
			motion.Rotation{
				Imag: rec.Orientation.X,
				Jmag: rec.Orientation.Y,
				Kmag: rec.Orientation.Z,
				Real: rec.Orientation.W,
			},
		)
		if err := ip.AddKeyFrameAt(fr, rec.Time); err != nil {
			return fmt.Errorf("keyframe record %d: %w", i, err)
		}
	}
	tracer().Debugf("imported %d keyframes", len(doc.KeyFrames))
	return nil
}

// Marshal renders the document as YAML.
func (doc *Document) Marshal() ([]byte, error) {
	return yaml.Marshal(doc)
}

// Unmarshal parses a YAML document.
func Unmarshal(data []byte) (*Document, error) {
	doc := &Document{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, err
	}
	return doc, nil
}
