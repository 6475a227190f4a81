package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/drakos74/granulo/internal/storage/file/json"
	"github.com/rs/zerolog/log"
)

// CSV reads one data set per csv file.
// The file needs a header with the value column and optionally the individual column.
type CSV struct {
	paths      []string
	individual string
	value      string
}

// NewCSV creates a new csv source for the given files.
func NewCSV(individual, value string, paths ...string) *CSV {
	return &CSV{
		paths:      paths,
		individual: individual,
		value:      value,
	}
}

func (c *CSV) Datasets(ctx context.Context) ([]Dataset, error) {
	dd := make([]Dataset, 0, len(c.paths))
	for _, p := range c.paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d, err := c.read(p)
		if err != nil {
			return nil, fmt.Errorf("could not read '%s': %w", p, err)
		}
		log.Info().
			Str("file", p).
			Str("set", d.Name).
			Int("values", d.Size()).
			Msg("loaded data set")
		dd = append(dd, d)
	}
	return dd, nil
}

func (c *CSV) read(p string) (Dataset, error) {
	f, err := os.Open(p)
	if err != nil {
		return Dataset{}, err
	}
	defer f.Close()
	return readCSV(name(p), f, c.individual, c.value)
}

func readCSV(set string, r io.Reader, individual, value string) (Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err != nil {
		return Dataset{}, fmt.Errorf("could not read header: %w", err)
	}
	vi, ii := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case value:
			vi = i
		case individual:
			ii = i
		}
	}
	if vi < 0 {
		return Dataset{}, fmt.Errorf("no column '%s' in header %v", value, header)
	}

	d := Dataset{Name: set}
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Dataset{}, fmt.Errorf("could not read line %d: %w", line, err)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[vi]), 64)
		if err != nil {
			return Dataset{}, fmt.Errorf("could not parse value on line %d: %w", line, err)
		}
		d.Values = append(d.Values, v)
		if ii >= 0 {
			d.Individuals = append(d.Individuals, row[ii])
		}
	}
	return d, nil
}

// JSON reads data sets from json files, each holding a list of data sets.
type JSON struct {
	paths []string
}

// NewJSON creates a new json source for the given files.
func NewJSON(paths ...string) *JSON {
	return &JSON{paths: paths}
}

func (j *JSON) Datasets(ctx context.Context) ([]Dataset, error) {
	dd := make([]Dataset, 0)
	for _, p := range j.paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var sets []Dataset
		if err := json.Load(filepath.Dir(p), filepath.Base(p), &sets); err != nil {
			return nil, fmt.Errorf("could not load '%s': %w", p, err)
		}
		dd = append(dd, sets...)
	}
	return dd, nil
}

// FromFiles picks the source implementation from the file extension.
func FromFiles(individual, value string, paths ...string) (Source, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no input files")
	}
	ext := strings.ToLower(filepath.Ext(paths[0]))
	for _, p := range paths[1:] {
		if strings.ToLower(filepath.Ext(p)) != ext {
			return nil, fmt.Errorf("mixed input file types '%s' and '%s'", paths[0], p)
		}
	}
	switch ext {
	case ".csv":
		return NewCSV(individual, value, paths...), nil
	case ".json":
		return NewJSON(paths...), nil
	}
	return nil, fmt.Errorf("unsupported input file type '%s'", ext)
}

func name(p string) string {
	base := filepath.Base(p)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
