// Package persist saves and loads stage content.
//
// A stage is every entity tagged with component.StageComponent. Requests are
// queued by any system and handled by the persist system at the start of the
// next frame; a load replaces the current stage wholesale.
package persist

import "fmt"

// RequestKind selects a persistence operation
type RequestKind uint8

const (
	RequestSave RequestKind = iota
	RequestLoad
)

// Request is one queued persistence command
type Request struct {
	Kind RequestKind
	Path string
}

// SaveStage requests the current stage be written to path
func SaveStage(path string) Request { return Request{Kind: RequestSave, Path: path} }

// LoadStage requests the stage be replaced by the contents of path
func LoadStage(path string) Request { return Request{Kind: RequestLoad, Path: path} }

func (r Request) String() string {
	if r.Kind == RequestLoad {
		return fmt.Sprintf("LoadStage(%s)", r.Path)
	}
	return fmt.Sprintf("SaveStage(%s)", r.Path)
}
