package concat

import (
	"context"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// FileContent is the result of reading one file.
type FileContent struct {
	Path    string
	Content []byte
	Err     error
}

type job struct {
	index int
	path  string
}

// readConcurrently reads files using a worker pool. The returned slice is
// indexed like files regardless of completion order.
func readConcurrently(ctx context.Context, files []string, maxWorkers int, logger *zap.Logger) []FileContent {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	if maxWorkers > len(files) {
		maxWorkers = len(files)
	}

	jobs := make(chan job, len(files))
	results := make([]FileContent, len(files))
	var wg sync.WaitGroup

	logger.Debug("Initializing worker pool", zap.Int("workers", maxWorkers))
	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		go worker(ctx, jobs, results, &wg, logger.With(zap.Int("workerID", w)))
	}

	for i, file := range files {
		jobs <- job{index: i, path: file}
	}
	close(jobs)

	wg.Wait()
	return results
}

// worker reads files from jobs. Each result slot is written by exactly one
// worker, so results needs no lock.
func worker(ctx context.Context, jobs <-chan job, results []FileContent, wg *sync.WaitGroup, logger *zap.Logger) {
	defer wg.Done()

	for j := range jobs {
		data, err := readFile(ctx, j.path, logger)
		results[j.index] = FileContent{Path: j.path, Content: data, Err: err}
	}
}
