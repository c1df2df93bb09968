package emit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/cmmoran/buildergen/internal/model"
	"github.com/cmmoran/buildergen/pkg/options"
)

// Marshal encodes v in the given format.
func Marshal(v any, f options.Format) ([]byte, error) {
	switch f {
	case options.FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case options.FormatMsgpack:
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		enc.SetSortMapKeys(true)
		enc.SetCustomStructTag("msgpack")
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case options.FormatYAML, "":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unsupported format %q", f)
}

// Unmarshal decodes data written by Marshal.
func Unmarshal(data []byte, f options.Format, v any) error {
	switch f {
	case options.FormatJSON:
		return json.Unmarshal(data, v)
	case options.FormatMsgpack:
		dec := msgpack.NewDecoder(bytes.NewReader(data))
		dec.SetCustomStructTag("msgpack")
		return dec.Decode(v)
	case options.FormatYAML, "":
		return yaml.Unmarshal(data, v)
	}
	return fmt.Errorf("unsupported format %q", f)
}

// FormatOf infers the format from a file extension.
func FormatOf(path string) options.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return options.FormatJSON
	case ".msgpack", ".mpk":
		return options.FormatMsgpack
	}
	return options.FormatYAML
}

// Writer writes one file per builder plus the module descriptor.
type Writer struct {
	Dir    string
	Format options.Format
}

func NewWriter(dir string, f options.Format) *Writer {
	return &Writer{Dir: dir, Format: f}
}

// Path is where the definition of builder fqn is written.
func (w *Writer) Path(fqn string) string {
	return filepath.Join(w.Dir, fqn+w.Format.Ext())
}

// WriteDefinition encodes def and returns the file written.
func (w *Writer) WriteDefinition(def *model.BuilderDefinition) (string, error) {
	return w.write(w.Path(def.Builder.FQN()), ToDocument(def))
}

// WriteModule writes the module descriptor under name.
func (w *Writer) WriteModule(name string, md *model.ModuleDescriptor) (string, error) {
	return w.write(filepath.Join(w.Dir, name+w.Format.Ext()), md)
}

func (w *Writer) write(path string, v any) (string, error) {
	data, err := Marshal(v, w.Format)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
