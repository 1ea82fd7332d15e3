package convert

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"
)

// OutputName maps an input path to <basename>.json, dropping a .out
// extension if there is one.
func OutputName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
}

// Batch converts every input into outDir, running at most workers
// conversions at a time. A failed input does not stop the others; the first
// error is returned once all started conversions have finished.
func (c *Converter) Batch(ctx context.Context, outDir string, inputs []string, workers int) ([]*Result, error) {
	if workers < 1 {
		return nil, errors.New("workers must be at least 1")
	}
	if err := checkOutputNames(inputs); err != nil {
		return nil, err
	}

	sem := semaphore.NewWeighted(int64(workers))
	results := make([]*Result, len(inputs))
	errs := make([]error, len(inputs))
	var wg sync.WaitGroup
	for i, input := range inputs {
		err := ctx.Err()
		if err == nil {
			err = sem.Acquire(ctx, 1)
		}
		if err != nil {
			errs[i] = errors.Wrap(err, "batch cancelled")
			break
		}
		wg.Add(1)
		go func(i int, input string) {
			defer wg.Done()
			defer sem.Release(1)
			results[i], errs[i] = c.convertInto(outDir, input)
		}(i, input)
	}
	wg.Wait()

	var failed int
	var first error
	for i, err := range errs {
		if err == nil {
			continue
		}
		failed++
		c.lgr.Error("batch conversion failed", "input", inputs[i], "err", err)
		if first == nil {
			first = err
		}
	}
	c.lgr.Info("batch finished", "inputs", len(inputs), "failed", failed, "workers", workers)
	if first != nil {
		return results, errors.Wrapf(first, "%d of %d conversions failed", failed, len(inputs))
	}
	return results, nil
}

func (c *Converter) convertInto(outDir string, input string) (*Result, error) {
	res, err := c.ConvertFile(input)
	if err != nil {
		return nil, err
	}
	if err := WriteFile(filepath.Join(outDir, OutputName(input)), res.Document); err != nil {
		return nil, errors.Wrapf(err, "error writing output for %s", input)
	}
	return res, nil
}

func checkOutputNames(inputs []string) error {
	seen := make(map[string]string)
	for _, input := range inputs {
		name := OutputName(input)
		if prev, ok := seen[name]; ok {
			return errors.Errorf("inputs %s and %s both map to %s", prev, input, name)
		}
		seen[name] = input
	}
	return nil
}
