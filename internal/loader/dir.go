package loader

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/unbound-force/dermis/internal/config"
	"github.com/unbound-force/dermis/internal/taxonomy"
)

// Options configures LoadDir.
type Options struct {
	// Config supplies include/exclude patterns and the walk timeout.
	// If nil, config.DefaultConfig() is used.
	Config *config.LoaderConfig

	// Logger receives per-file debug output. If nil, log.Default()
	// is used.
	Logger *log.Logger
}

// Result is the outcome of LoadDir.
type Result struct {
	// Files are the collection files read, relative to the root, in
	// load order.
	Files []string

	// Products from all files, in file order then file position.
	Products []taxonomy.Product
}

// Load reads path as a single collection file or, if it is a
// directory, with LoadDir.
func Load(ctx context.Context, path string, opts Options) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("loading products: %w", err)
	}
	if info.IsDir() {
		return LoadDir(ctx, path, opts)
	}
	products, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return &Result{Files: []string{filepath.Base(path)}, Products: products}, nil
}

// LoadDir walks root for collection files, applies the include and
// exclude filters, and loads every match in path order. IDs must be
// unique across all files.
//
// If the configured timeout is non-zero the walk is bounded by it.
// Hidden directories are skipped.
func LoadDir(ctx context.Context, root string, opts Options) (*Result, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.DefaultConfig().Loader
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	timeout := cfg.Timeout
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("product scan stopped after %s: %w", timeoutLabel(timeout), ctxErr)
		}
		if walkErr != nil {
			return walkErr
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}

		if d.IsDir() {
			base := d.Name()
			if strings.HasPrefix(base, ".") && rel != "." {
				return filepath.SkipDir
			}
			return nil
		}

		if !supported(d.Name()) || !Filter(rel, cfg) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)

	res := &Result{Files: files}
	owner := make(map[string]string)
	for _, rel := range files {
		products, err := LoadFile(filepath.Join(root, rel))
		if err != nil {
			return nil, err
		}
		for _, p := range products {
			if prev, dup := owner[p.ID]; dup {
				return nil, fmt.Errorf("%s: %w: duplicate id %q (also in %s)",
					rel, ErrInvalidProduct, p.ID, prev)
			}
			owner[p.ID] = rel
		}
		logger.Debug("loaded products", "file", rel, "count", len(products))
		res.Products = append(res.Products, products...)
	}
	return res, nil
}

// Filter reports whether rel should be loaded under cfg. When include
// patterns are set the file must match one of them; a file matching
// any exclude pattern is skipped.
func Filter(rel string, cfg *config.LoaderConfig) bool {
	if cfg == nil {
		cfg = &config.DefaultConfig().Loader
	}
	rel = filepath.ToSlash(rel)

	if len(cfg.Include) > 0 {
		matched := false
		for _, pattern := range cfg.Include {
			if matchGlob(pattern, rel) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, pattern := range cfg.Exclude {
		if matchGlob(pattern, rel) {
			return false
		}
	}
	return true
}

// matchGlob supports filepath.Match syntax plus "dir/**" prefixes.
// Patterns without a slash also match the base name.
func matchGlob(pattern, rel string) bool {
	if strings.HasSuffix(pattern, "/**") {
		prefix := strings.TrimSuffix(pattern, "/**")
		return rel == prefix || strings.HasPrefix(rel, prefix+"/")
	}

	if matched, err := filepath.Match(pattern, rel); err == nil && matched {
		return true
	}

	if !strings.Contains(pattern, "/") {
		matched, err := filepath.Match(pattern, filepath.Base(rel))
		return err == nil && matched
	}
	return false
}

func timeoutLabel(d time.Duration) string {
	if d <= 0 {
		return "cancellation"
	}
	return d.String()
}
