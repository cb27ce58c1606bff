package manifest

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/hupe1980/crcgo"
	"github.com/hupe1980/crcgo/codec"
)

// UnknownSize marks an entry whose size was not recorded.
const UnknownSize int64 = -1

// Entry is the recorded checksum of one blob.
type Entry struct {
	Name string
	Sum  uint32
	Size int64
}

// Manifest is an ordered list of entries.
type Manifest struct {
	Entries []Entry
}

// New creates a manifest from entries.
func New(entries ...Entry) *Manifest {
	return &Manifest{Entries: entries}
}

// FromResults builds a manifest from Summer results, preserving their order.
func FromResults(results []crcgo.Result) *Manifest {
	m := &Manifest{Entries: make([]Entry, 0, len(results))}
	for _, r := range results {
		m.Entries = append(m.Entries, Entry{Name: r.Name, Sum: r.Sum, Size: r.Size})
	}
	return m
}

// Add appends an entry.
func (m *Manifest) Add(e Entry) {
	m.Entries = append(m.Entries, e)
}

// Len returns the number of entries.
func (m *Manifest) Len() int { return len(m.Entries) }

// Names returns the entry names in order.
func (m *Manifest) Names() []string {
	names := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		names[i] = e.Name
	}
	return names
}

// Lookup returns the first entry with the given name.
func (m *Manifest) Lookup(name string) (Entry, bool) {
	i := slices.IndexFunc(m.Entries, func(e Entry) bool { return e.Name == name })
	if i < 0 {
		return Entry{}, false
	}
	return m.Entries[i], true
}

// SyntaxError describes a malformed line of a text manifest.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("manifest: line %d: %s", e.Line, e.Msg)
}

// Format selects the manifest encoding.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat parses "text" or "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("manifest: unknown format %q", s)
	}
}

// Encode writes m in the text format.
func Encode(w io.Writer, m *Manifest) error {
	bw := bufio.NewWriter(w)
	line := make([]byte, 0, 64)
	for _, e := range m.Entries {
		if e.Name == "" || strings.ContainsAny(e.Name, "\r\n") {
			return fmt.Errorf("manifest: invalid entry name %q", e.Name)
		}
		line = crcgo.AppendHex(line[:0], e.Sum)
		line = append(line, ' ', ' ')
		line = append(line, e.Name...)
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode reads a text manifest. Sizes are set to UnknownSize.
func Decode(r io.Reader) (*Manifest, error) {
	m := &Manifest{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSuffix(sc.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		e, err := parseLine(line)
		if err != nil {
			return nil, &SyntaxError{Line: lineNo, Msg: err.Error()}
		}
		m.Entries = append(m.Entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return m, nil
}

func parseLine(line string) (Entry, error) {
	if len(line) < 10 {
		return Entry{}, errors.New("line too short")
	}
	sum, err := crcgo.Parse(line[:8])
	if err != nil {
		return Entry{}, fmt.Errorf("invalid checksum %q", line[:8])
	}
	if line[8] != ' ' {
		return Entry{}, errors.New("expected space after checksum")
	}
	name := line[9:]
	// "  name" is the canonical form, " *name" marks binary mode.
	if name[0] == ' ' || name[0] == '*' {
		name = name[1:]
	}
	if name == "" {
		return Entry{}, errors.New("missing name")
	}
	return Entry{Name: name, Sum: sum, Size: UnknownSize}, nil
}

type jsonEntry struct {
	Name  string `json:"name"`
	CRC32 string `json:"crc32"`
	Size  *int64 `json:"size,omitempty"`
}

type jsonManifest struct {
	Entries []jsonEntry `json:"entries"`
}

// EncodeJSON writes m as JSON using c. A nil codec selects codec.Default.
func EncodeJSON(w io.Writer, m *Manifest, c codec.Codec) error {
	if c == nil {
		c = codec.Default
	}
	jm := jsonManifest{Entries: make([]jsonEntry, 0, len(m.Entries))}
	for _, e := range m.Entries {
		je := jsonEntry{Name: e.Name, CRC32: crcgo.Format(e.Sum)}
		if e.Size >= 0 {
			size := e.Size
			je.Size = &size
		}
		jm.Entries = append(jm.Entries, je)
	}
	data, err := c.Marshal(jm)
	if err != nil {
		return fmt.Errorf("manifest: encode %s: %w", c.Name(), err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// DecodeJSON reads a JSON manifest using c. A nil codec selects codec.Default.
func DecodeJSON(r io.Reader, c codec.Codec) (*Manifest, error) {
	if c == nil {
		c = codec.Default
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var jm jsonManifest
	if err := c.Unmarshal(data, &jm); err != nil {
		return nil, fmt.Errorf("manifest: decode %s: %w", c.Name(), err)
	}

	m := &Manifest{Entries: make([]Entry, 0, len(jm.Entries))}
	for i, je := range jm.Entries {
		if je.Name == "" {
			return nil, fmt.Errorf("manifest: entry %d: missing name", i)
		}
		sum, err := crcgo.Parse(je.CRC32)
		if err != nil {
			return nil, fmt.Errorf("manifest: entry %q: %w", je.Name, err)
		}
		e := Entry{Name: je.Name, Sum: sum, Size: UnknownSize}
		if je.Size != nil {
			e.Size = *je.Size
		}
		m.Entries = append(m.Entries, e)
	}
	return m, nil
}

// Write encodes m in format f.
func Write(w io.Writer, m *Manifest, f Format) error {
	if f == FormatJSON {
		return EncodeJSON(w, m, nil)
	}
	return Encode(w, m)
}

// Read decodes a manifest, choosing JSON when the first non-space byte is
// '{' and the text format otherwise.
func Read(r io.Reader) (*Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if trimmed := bytes.TrimLeft(data, " \t\r\n"); len(trimmed) > 0 && trimmed[0] == '{' {
		return DecodeJSON(bytes.NewReader(data), nil)
	}
	return Decode(bytes.NewReader(data))
}
