package profiles

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tailscale/hujson"
)

// indent is the indentation used when writing the document back
const indent = "    "

// ParseOptions controls how a profiles document is parsed
type ParseOptions struct {
	// AllowComments accepts JSON with comments and trailing commas and
	// standardizes it before migration.
	AllowComments bool
}

// Document is a parsed profiles file: a top-level array of profile objects.
// Member order and literal spelling of untouched values survive a round trip.
type Document struct {
	root     hujson.Value
	profiles []*hujson.Object
}

// Parse parses profile document content
func Parse(data []byte, opts ParseOptions) (*Document, error) {
	root, err := hujson.Parse(data)
	if err != nil {
		return nil, &ParseError{
			Message: "invalid JSON",
			Cause:   err,
		}
	}

	if opts.AllowComments {
		root.Standardize()
	} else if !root.IsStandard() {
		return nil, &ParseError{
			Message: "content contains comments or trailing commas",
		}
	}

	arr, ok := root.Value.(*hujson.Array)
	if !ok {
		return nil, &StructuralError{
			Profile:  -1,
			Resource: -1,
			Message:  fmt.Sprintf("top-level value must be an array, got %s", kindName(root.Value.Kind())),
		}
	}

	doc := &Document{
		root:     root,
		profiles: make([]*hujson.Object, 0, len(arr.Elements)),
	}
	for i, elem := range arr.Elements {
		obj, ok := elem.Value.(*hujson.Object)
		if !ok {
			return nil, &StructuralError{
				Profile:  i,
				Resource: -1,
				Path:     "(root)",
				Message:  fmt.Sprintf("profile must be an object, got %s", kindName(elem.Value.Kind())),
			}
		}
		doc.profiles = append(doc.profiles, obj)
	}

	return doc, nil
}

// Load reads and parses a profiles file
func Load(path string, opts ParseOptions) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}
	return Parse(content, opts)
}

// Len returns the number of profiles
func (d *Document) Len() int {
	return len(d.profiles)
}

// Profiles returns the profiles in document order
func (d *Document) Profiles() []Profile {
	out := make([]Profile, len(d.profiles))
	for i, obj := range d.profiles {
		out[i] = Profile{index: i, obj: obj}
	}
	return out
}

// Encode serializes the document with 4-space indentation and no trailing newline.
func (d *Document) Encode() ([]byte, error) {
	v := d.root.Clone()
	v.Minimize()

	var buf bytes.Buffer
	if err := json.Indent(&buf, v.Pack(), "", indent); err != nil {
		return nil, fmt.Errorf("failed to indent document: %w", err)
	}
	return buf.Bytes(), nil
}

// Save encodes the document and replaces the file at path.
// The content is written to a temp file in the same directory and renamed over
// the original, keeping the original file mode when the file exists.
func Save(path string, doc *Document) error {
	data, err := doc.Encode()
	if err != nil {
		return &SaveError{
			Message: "failed to encode document",
			Cause:   err,
		}
	}

	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	if err := writeFileAtomic(path, data, perm); err != nil {
		return &SaveError{
			Message: fmt.Sprintf("failed to write file %s", path),
			Cause:   err,
		}
	}
	return nil
}

// Backup copies the file at path next to it as <path>.<stamp>.bak and returns the backup path
func Backup(path string, at time.Time) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", &SaveError{
			Message: fmt.Sprintf("failed to read %s for backup", path),
			Cause:   err,
		}
	}

	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	backupPath := fmt.Sprintf("%s.%s.bak", path, at.UTC().Format("20060102T150405"))
	if err := writeFileAtomic(backupPath, content, perm); err != nil {
		return "", &SaveError{
			Message: fmt.Sprintf("failed to write backup %s", backupPath),
			Cause:   err,
		}
	}
	return backupPath, nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Chmod(perm); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
