package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSV_Datasets(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "Wine.csv")
	require.NoError(t, os.WriteFile(p, []byte("Wine,price\nw1, 10.5\nw2,7\nw3,12.25\n"), 0644))

	src, err := FromFiles("Wine", "price", p)
	require.NoError(t, err)

	dd, err := src.Datasets(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, len(dd))
	assert.Equal(t, Dataset{
		Name:        "Wine",
		Individuals: []string{"w1", "w2", "w3"},
		Values:      []float64{10.5, 7, 12.25},
	}, dd[0])
	assert.NoError(t, dd[0].Validate())
}

func TestCSV_Invalid(t *testing.T) {

	type test struct {
		content string
	}

	tests := map[string]test{
		"no-value-column": {
			content: "Wine,cost\nw1,1\n",
		},
		"not-a-number": {
			content: "Wine,price\nw1,cheap\n",
		},
		"no-header": {
			content: "",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := readCSV("Wine", strings.NewReader(tt.content), "Wine", "price")
			assert.Error(t, err)
		})
	}
}

func TestJSON_Datasets(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "sets.json")
	require.NoError(t, os.WriteFile(p, []byte(`[{"name":"A","values":[1,2,3]},{"name":"B","values":[4]}]`), 0644))

	src, err := FromFiles("", "", p)
	require.NoError(t, err)

	dd, err := src.Datasets(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, len(dd))
	assert.Equal(t, "A", dd[0].Name)
	assert.Equal(t, []float64{1, 2, 3}, dd[0].Values)
	assert.Equal(t, 1, dd[1].Size())
}

func TestFromFiles_Invalid(t *testing.T) {
	_, err := FromFiles("", "v")
	assert.Error(t, err)
	_, err = FromFiles("", "v", "a.csv", "b.json")
	assert.Error(t, err)
	_, err = FromFiles("", "v", "a.xml")
	assert.Error(t, err)
}

func TestDataset_Validate(t *testing.T) {
	assert.True(t, errors.Is(Dataset{Name: "A"}.Validate(), EmptyErr))
	assert.Error(t, Dataset{Values: []float64{1}}.Validate())
	assert.Error(t, Dataset{Name: "A", Values: []float64{1}, Individuals: []string{"a", "b"}}.Validate())
}

func TestStatic_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Static{{Name: "A", Values: []float64{1}}}.Datasets(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}
