package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"jobpilot/internal/listing"
)

// File reads listings from a JSON file: an array of records with Listing
// fields. Records from external scrapers are often loosely typed (salaries as
// floats or strings), so decoding is weakly typed instead of strict JSON
// unmarshalling.
type File struct {
	path   string
	logger *zap.Logger
}

func NewFile(path string, logger *zap.Logger) *File {
	return &File{path: path, logger: logger}
}

func (f *File) Fetch(_ context.Context, _ Query) (*listing.Listings, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read listings file: %w", err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse listings file %s: %w", f.path, err)
	}

	ls := &listing.Listings{}
	for i, record := range raw {
		l := &listing.Listing{}
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "json",
			WeaklyTypedInput: true,
			Result:           l,
		})
		if err != nil {
			return nil, fmt.Errorf("build listing decoder: %w", err)
		}
		if err := decoder.Decode(record); err != nil {
			return nil, fmt.Errorf("decode listing record %d: %w", i, err)
		}
		if l.URL == "" {
			f.logger.Warn("skipping listing without url", zap.Int("record", i), zap.String("title", l.Title))
			continue
		}
		ls.Items = append(ls.Items, l)
	}

	if removed := ls.Dedupe(); len(removed) > 0 {
		f.logger.Debug("dropped duplicate listings", zap.Strings("urls", removed))
	}

	f.logger.Info("loaded listings from file", zap.String("path", f.path), zap.Int("count", ls.Len()))
	return ls, nil
}
