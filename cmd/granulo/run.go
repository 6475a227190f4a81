package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/drakos74/granulo/internal/metrics"
	"github.com/drakos74/granulo/internal/pipeline"
	"github.com/drakos74/granulo/internal/report"
	"github.com/drakos74/granulo/internal/source"
	"github.com/drakos74/granulo/internal/storage"
	"github.com/drakos74/granulo/internal/storage/file/json"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	inputs      string
	out         string
	metricsAddr string
	debug       bool
	store       string
)

const (
	fileStore   = "file"
	memoryStore = "memory"
	voidStore   = "void"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Granulate and quantify the given data sets",
	Example: `  granulo run --input wine.csv,beer.csv --out output
  granulo run --input sets.json --metrics :6122`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}

		src, err := source.FromFiles(c.Individual, c.Property, strings.Split(inputs, ",")...)
		if err != nil {
			return err
		}

		if metricsAddr != "" {
			go func() {
				if err := metrics.Observer.Serve(metricsAddr); err != nil {
					log.Error().Err(err).Str("addr", metricsAddr).Msg("metrics server stopped")
				}
			}()
		}

		shard, err := newShard(store, out, debug)
		if err != nil {
			return err
		}

		p, err := pipeline.New(c, src, shard)
		if err != nil {
			return err
		}

		ctx, cnl := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cnl()

		run := pipeline.NewRun(out)
		results, err := p.Execute(ctx, run)
		if err != nil {
			return fmt.Errorf("run '%s' failed: %w", run.ID, err)
		}
		return report.Write(cmd.OutOrStdout(), results)
	},
}

func init() {
	runCmd.Flags().StringVar(&inputs, "input", "", "comma separated input csv or json files")
	runCmd.Flags().StringVar(&out, "out", storage.DefaultDir, "output directory of the runs")
	runCmd.Flags().StringVar(&metricsAddr, "metrics", "", "address to expose prometheus metrics on")
	runCmd.Flags().BoolVar(&debug, "debug", false, "log every stored file")
	runCmd.Flags().StringVar(&store, "store", fileStore, "where stage results go: file, memory or void")
	_ = runCmd.MarkFlagRequired("input")
}

// newShard picks the storage of the stage results.
// memory and void leave nothing behind, only the report is printed.
func newShard(kind, root string, debug bool) (storage.Shard, error) {
	switch kind {
	case fileStore:
		return json.BlobShard(root, debug), nil
	case memoryStore:
		return json.MemoryShard(), nil
	case voidStore:
		return storage.VoidShard(), nil
	}
	return nil, fmt.Errorf("unknown store '%s'", kind)
}
