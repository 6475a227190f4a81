package main

import (
	"github.com/drakos74/granulo/internal/metrics"
	"github.com/drakos74/granulo/internal/server"
	"github.com/drakos74/granulo/internal/storage"
	"github.com/spf13/cobra"
)

var (
	port       int
	serveDir   string
	serveDebug bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the stored results of past runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return newServer().Run()
	},
}

func newServer() *server.Server {
	srv := server.NewServer("granulo", port)
	if serveDebug {
		srv.Debug()
	}
	return srv.
		Add(server.Results(serveDir)...).
		Mount("/metrics", metrics.Observer.Handler())
}

func init() {
	serveCmd.Flags().IntVar(&port, "port", 6122, "port to listen on")
	serveCmd.Flags().StringVar(&serveDir, "out", storage.DefaultDir, "output directory of the runs")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "log every request")
	rootCmd.AddCommand(serveCmd)
}
