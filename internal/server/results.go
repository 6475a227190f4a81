package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"github.com/drakos74/granulo/internal/storage"
	jsonstore "github.com/drakos74/granulo/internal/storage/file/json"
)

// Results serves the stored outcome of past runs under the given root directory.
func Results(root string) []Route {
	return []Route{
		{
			Action: Api,
			Path:   "runs",
			Method: GET,
			Exec:   runs(root),
		},
		{
			Action: Data,
			Path:   "result",
			Method: GET,
			Exec:   result(root),
		},
	}
}

func runs(root string) Handler {
	return func(r *http.Request) ([]byte, int, error) {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, http.StatusInternalServerError, fmt.Errorf("could not list runs: %w", err)
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.IsDir() {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)
		b, err := json.Marshal(names)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return b, http.StatusOK, nil
	}
}

// result returns the stored value for the run, set and label query parameters.
func result(root string) Handler {
	return func(r *http.Request) ([]byte, int, error) {
		q := r.URL.Query()
		run, set, label := q.Get("run"), q.Get("set"), q.Get("label")
		if run == "" || set == "" || label == "" {
			return nil, http.StatusBadRequest, fmt.Errorf("'run', 'set' and 'label' are required")
		}
		for _, p := range []string{run, set, label} {
			if p != filepath.Base(p) || p == ".." {
				return nil, http.StatusBadRequest, fmt.Errorf("invalid parameter '%s'", p)
			}
		}
		store, err := jsonstore.BlobShard(root, false)(run)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		var v interface{}
		err = store.Load(storage.Key{Set: set, Label: label}, &v)
		if errors.Is(err, storage.NotFoundErr) {
			return nil, http.StatusNotFound, err
		}
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return b, http.StatusOK, nil
	}
}
