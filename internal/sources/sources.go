// Package sources loads the two input lists the pipeline runs from: the
// hand-curated, authoritative race list and the seed list of targets to
// extract. Malformed individual entries are skipped with a warning; only
// an unreadable or unparsable file fails a load.
package sources

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/jonesrussell/keyraces/internal/domain"
)

// ErrMissingLocator indicates a target entry has neither title nor URL.
var ErrMissingLocator = errors.New("target has no source title or url")

// Locator points at a reference page for one target: a page title to
// resolve through the adapter's site, or a direct URL. At least one of
// the two must be set.
type Locator struct {
	Title string `mapstructure:"title" json:"title,omitempty"`
	URL   string `mapstructure:"url" json:"url,omitempty"`
}

// String returns the locator's most specific form for warnings and logs.
func (l Locator) String() string {
	if l.URL != "" {
		return l.URL
	}
	return l.Title
}

// Target is one seed entry: a race key plus the locator to extract from.
type Target struct {
	Key     domain.RaceKey
	Locator Locator
}

// readListFile reads a YAML list file and returns the raw entry maps
// found under the given top-level key. A missing file yields an empty
// list; a read or YAML error is returned to the caller.
func readListFile(path, key string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var file map[string][]map[string]any
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return file[key], nil
}

// decodeEntry decodes a raw entry map into out using weak typing, so
// YAML scalars like bare years decode into the expected field types.
func decodeEntry(raw map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("decode entry: %w", err)
	}

	return nil
}

// entryRef labels an entry in warnings when no key could be derived.
func entryRef(path string, index int) string {
	return fmt.Sprintf("%s#%d", path, index+1)
}
