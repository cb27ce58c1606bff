// Package codec centralizes structured encoding of manifests and CLI output.
//
// Codecs are selected by a stable name so that callers (for example the
// crcsum CLI) can switch between implementations without code changes.
package codec

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// Default is the default codec used by the library.
var Default Codec = GoJSON{}
