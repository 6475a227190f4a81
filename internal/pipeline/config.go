package pipeline

import (
	"fmt"
	"regexp"
	"time"

	"github.com/drakos74/granulo/internal/fuzzy"
	"github.com/drakos74/granulo/internal/math/ml"
	"golang.org/x/exp/rand"
)

const (
	StickBreaking = "stick-breaking"
	Dirichlet     = "dirichlet"
	KMeans        = "k-means"
)

var namePattern = regexp.MustCompile("^[A-Za-z0-9_-]+$")

// Config holds the parameters of a pipeline run.
type Config struct {
	FuzzySetLabels       []string  `json:"fuzzySetsLabels" yaml:"fuzzySetsLabels" mapstructure:"fuzzySetsLabels"`
	QuantifierLabels     []string  `json:"quantifiersLabels" yaml:"quantifiersLabels" mapstructure:"quantifiersLabels"`
	QuantifierPrototypes []float64 `json:"quantifiersPrototypes" yaml:"quantifiersPrototypes" mapstructure:"quantifiersPrototypes"`
	MaxError             float64   `json:"maxError" yaml:"maxError" mapstructure:"maxError"`
	MaxIter              int       `json:"maxIter" yaml:"maxIter" mapstructure:"maxIter"`
	Fuzzifier            float64   `json:"fuzzifier" yaml:"fuzzifier" mapstructure:"fuzzifier"`
	Initializer          string    `json:"initializer" yaml:"initializer" mapstructure:"initializer"`
	// Seed of the random initializers, 0 seeds from the clock.
	Seed uint64 `json:"seed" yaml:"seed" mapstructure:"seed"`
	// IndexLabels appends the data set index to the fuzzy set labels.
	IndexLabels bool   `json:"indexLabels" yaml:"indexLabels" mapstructure:"indexLabels"`
	Individual  string `json:"individual" yaml:"individual" mapstructure:"individual"`
	Property    string `json:"property" yaml:"property" mapstructure:"property"`
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		FuzzySetLabels:       []string{"Low", "Medium", "High"},
		QuantifierLabels:     []string{"AlmostNone", "Few", "Some", "Many", "Most"},
		QuantifierPrototypes: []float64{0.05, 0.275, 0.5, 0.725, 0.95},
		MaxError:             ml.DefaultMaxError,
		MaxIter:              ml.DefaultMaxIter,
		Fuzzifier:            ml.DefaultFuzzifier,
		Initializer:          StickBreaking,
		IndexLabels:          true,
		Individual:           "individual",
		Property:             "value",
	}
}

// Validate checks the consistency of the configuration.
// All problems are reported together.
func (c Config) Validate() error {
	problems := make([]string, 0)
	report := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if len(c.FuzzySetLabels) < 2 {
		report("'fuzzySetsLabels' length must be > 1")
	}
	checkNames(report, "fuzzySetsLabels", c.FuzzySetLabels)

	if len(c.QuantifierLabels) != len(c.QuantifierPrototypes) {
		report("'quantifiersLabels' and 'quantifiersPrototypes' must have the same length")
	}
	if len(c.QuantifierLabels) < 2 || len(c.QuantifierPrototypes) < 2 {
		report("'quantifiersLabels' and 'quantifiersPrototypes' must have length > 1")
	}
	checkNames(report, "quantifiersLabels", c.QuantifierLabels)
	for i, p := range c.QuantifierPrototypes {
		if p < 0 || p > 1 {
			report("'quantifiersPrototypes' must be within [0,1], got %v", p)
		}
		if i > 0 && c.QuantifierPrototypes[i-1] >= p {
			report("'quantifiersPrototypes' are not sorted")
		}
	}

	if c.MaxError <= 0 {
		report("'maxError' must be positive")
	}
	if c.MaxIter < 1 {
		report("'maxIter' must be positive")
	}
	if c.Fuzzifier <= 1 {
		report("'fuzzifier' must be greater than 1")
	}
	switch c.Initializer {
	case StickBreaking, Dirichlet, KMeans:
	default:
		report("unknown 'initializer' '%s'", c.Initializer)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%v: %w", problems, fuzzy.ConfigurationErr)
	}
	return nil
}

func checkNames(report func(format string, args ...interface{}), key string, names []string) {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if !namePattern.MatchString(n) {
			report("'%s' syntax is wrong in '%s'", n, key)
		}
		if _, ok := seen[n]; ok {
			report("'%s' is duplicated in '%s'", n, key)
		}
		seen[n] = struct{}{}
	}
}

// Clusterer creates the fuzzy c-means clusterer for the configuration.
func (c Config) Clusterer() *ml.FuzzyCMeans {
	seed := c.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	var initializer ml.Initializer
	switch c.Initializer {
	case Dirichlet:
		initializer = ml.Dirichlet(rand.NewSource(seed))
	case KMeans:
		initializer = ml.KMeansSeed(c.MaxIter)
	default:
		initializer = ml.StickBreaking(rand.NewSource(seed))
	}
	return ml.NewFuzzyCMeans(initializer).WithFuzzifier(c.Fuzzifier)
}
