package pipeline

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/drakos74/granulo/internal/fuzzy"
	"github.com/drakos74/granulo/internal/metrics"
	"github.com/drakos74/granulo/internal/source"
	"github.com/drakos74/granulo/internal/storage"
	"github.com/drakos74/granulo/internal/storage/file/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeClusters(name string) source.Dataset {
	d := source.Dataset{Name: name}
	for i := 0; i < 10; i++ {
		offset := float64(i%5) * 0.05
		d.Values = append(d.Values, 1+offset, 5+offset, 10+offset)
	}
	return d
}

func testConfig() Config {
	c := DefaultConfig()
	c.Seed = 42
	c.MaxIter = 300
	return c
}

func TestPipeline_Execute(t *testing.T) {

	type test struct {
		initializer string
	}

	tests := map[string]test{
		"stick-breaking": {
			initializer: StickBreaking,
		},
		"dirichlet": {
			initializer: Dirichlet,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			config := testConfig()
			config.Initializer = tt.initializer
			shard, storages := storage.MockShard()

			p, err := New(config, source.Static{threeClusters("Wine")}, shard)
			require.NoError(t, err)
			p.WithObserver(metrics.NewMetrics())

			run := NewRun(t.TempDir())
			results, err := p.Execute(context.Background(), run)
			require.NoError(t, err)
			require.Equal(t, 1, len(results))

			r := results[0]
			assert.False(t, r.Skipped)
			assert.Equal(t, []string{"Low1", "Medium1", "High1"}, r.Centroids.Labels)
			require.Equal(t, 3, len(r.Centroids.Prototypes))
			assert.InDelta(t, 1.1, r.Centroids.Prototypes[0], 0.5)
			assert.InDelta(t, 5.1, r.Centroids.Prototypes[1], 0.5)
			assert.InDelta(t, 10.1, r.Centroids.Prototypes[2], 0.5)

			// every sample spreads a unit of membership over the granules
			sum := 0.0
			for _, c := range r.Cardinalities {
				assert.True(t, c >= 0 && c <= 1)
				sum += c
			}
			assert.InDelta(t, 1.0, sum, 1e-9)
			for g, q := range r.Quantified {
				s := 0.0
				for _, v := range q {
					s += v
				}
				assert.InDelta(t, 1.0, s, 1e-9, g)
			}

			store, ok := storages[run.Name()]
			require.True(t, ok)
			for _, label := range []string{
				storage.CentroidsLabel,
				storage.GranulesLabel,
				storage.QuantifiersLabel,
				storage.CardinalitiesLabel,
			} {
				_, ok := store.Elements[storage.Key{Set: "Wine", Label: label}]
				assert.True(t, ok, label)
			}

			var rows []Row
			require.NoError(t, store.Load(storage.Key{Set: "Wine", Label: storage.GranulesLabel}, &rows))
			assert.Equal(t, 30, len(rows))
		})
	}
}

func TestPipeline_Prune(t *testing.T) {
	shard, _ := storage.MockShard()
	sets := source.Static{
		{Name: "Few", Values: []float64{1, 2, 3}},
		{Name: "Flat", Values: []float64{1, 1, 1, 2, 2}},
		threeClusters("Wine"),
		threeClusters("Beer"),
	}

	p, err := New(testConfig(), sets, shard)
	require.NoError(t, err)
	p.WithObserver(metrics.NewMetrics())

	results, err := p.Execute(context.Background(), NewRun(t.TempDir()))
	require.NoError(t, err)
	require.Equal(t, 4, len(results))

	assert.True(t, results[0].Skipped)
	assert.True(t, results[1].Skipped)
	assert.False(t, results[2].Skipped)
	assert.False(t, results[3].Skipped)

	// skipped sets do not consume a label index
	assert.Equal(t, []string{"Low1", "Medium1", "High1"}, results[2].Centroids.Labels)
	assert.Equal(t, []string{"Low2", "Medium2", "High2"}, results[3].Centroids.Labels)
	_, ok := results[3].Cardinalities["High2"]
	assert.True(t, ok)
}

func TestPipeline_NoIndexLabels(t *testing.T) {
	config := testConfig()
	config.IndexLabels = false

	p, err := New(config, source.Static{threeClusters("Wine"), threeClusters("Beer")}, json.MemoryShard())
	require.NoError(t, err)
	p.WithObserver(metrics.NewMetrics())

	results, err := p.Execute(context.Background(), NewRun(t.TempDir()))
	require.NoError(t, err)
	for _, r := range results {
		assert.Equal(t, []string{"Low", "Medium", "High"}, r.Centroids.Labels)
	}
}

func TestPipeline_VoidStorage(t *testing.T) {
	p, err := New(testConfig(), source.Static{threeClusters("Wine")}, storage.VoidShard())
	require.NoError(t, err)
	p.WithObserver(metrics.NewMetrics())

	results, err := p.Execute(context.Background(), NewRun(t.TempDir()))
	require.NoError(t, err)
	require.Equal(t, 1, len(results))
	assert.Equal(t, 3, len(results[0].Cardinalities))
}

func TestPipeline_Fail(t *testing.T) {
	root := t.TempDir()
	sets := source.Static{
		threeClusters("Wine"),
		{Name: "Broken", Individuals: []string{"a"}, Values: []float64{1, 2, 3, 4, 5}},
	}

	p, err := New(testConfig(), sets, json.BlobShard(root, false))
	require.NoError(t, err)
	p.WithObserver(metrics.NewMetrics())

	run := NewRun(root)
	_, err = p.Execute(context.Background(), run)
	require.Error(t, err)

	_, err = os.Stat(run.Dir())
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(run.Dir() + failedSuffix)
	assert.NoError(t, err)
}

func TestPipeline_Cancel(t *testing.T) {
	p, err := New(testConfig(), source.Static{threeClusters("Wine")}, storage.VoidShard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = p.Execute(ctx, NewRun(t.TempDir()))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNew_InvalidConfig(t *testing.T) {
	config := testConfig()
	config.FuzzySetLabels = nil

	_, err := New(config, source.Static{}, storage.VoidShard())
	assert.True(t, errors.Is(err, fuzzy.ConfigurationErr))
}

func TestPipeline_CopiesQuantifiers(t *testing.T) {
	config := testConfig()
	p, err := New(config, source.Static{threeClusters("Wine")}, storage.VoidShard())
	require.NoError(t, err)
	p.WithObserver(metrics.NewMetrics())

	results, err := p.Execute(context.Background(), NewRun(t.TempDir()))
	require.NoError(t, err)
	require.Equal(t, 1, len(results))

	results[0].Quantifiers[0] = "Z"
	assert.Equal(t, "AlmostNone", p.config.QuantifierLabels[0])
}
