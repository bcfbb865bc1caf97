package batch

import (
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/ebookpress/docforge/internal/pipeline"
)

// outputPath derives where a processed document is written. With an
// output directory the base name is preserved inside it; otherwise the
// suffix is inserted before the extension next to the input.
func outputPath(input string, cfg *Config) string {
	if cfg.OutputDir != "" {
		return filepath.Join(cfg.OutputDir, filepath.Base(input))
	}
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + cfg.Suffix + ext
}

// processParallel fans the documents out over a worker pool. Each worker
// shares the stateless pipeline. A failing document is recorded in its
// slot and never aborts the batch.
func processParallel(pl *pipeline.Pipeline, files []string, cfg *Config,
	progress pipeline.ProgressCallback,
) []*DocumentResult {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	type job struct {
		index int
		path  string
	}

	results := make([]*DocumentResult, len(files))
	jobs := make(chan job)
	var completed atomic.Int64
	var wg sync.WaitGroup

	progress.OnStart(len(files))

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				dr := &DocumentResult{
					Input:  j.path,
					Output: outputPath(j.path, cfg),
				}
				res, err := pl.ProcessFile(j.path, dr.Output)
				if err != nil {
					dr.Output = ""
					dr.Error = err.Error()
					progress.OnError(j.index+1, err)
				} else {
					dr.Result = res
				}
				results[j.index] = dr
				progress.OnProgress(int(completed.Add(1)), len(files))
			}
		}()
	}

	for i, path := range files {
		jobs <- job{index: i, path: path}
	}
	close(jobs)
	wg.Wait()

	progress.OnComplete()
	return results
}
