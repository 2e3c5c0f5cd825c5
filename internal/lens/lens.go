package lens

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlexxIT/audiolens/internal/app"
	"github.com/AlexxIT/audiolens/pkg/core"
	"github.com/AlexxIT/audiolens/pkg/yaml"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	Format      string `yaml:"format"`
	Output      string `yaml:"output"`
	LogFile     bool   `yaml:"log_file"`
	WriteFrames bool   `yaml:"write_frames"`
	AsBlock     bool   `yaml:"as_block"`
	WriteTags   bool   `yaml:"write_tags"`
	Workers     int    `yaml:"workers"`
}

var ErrNoHeaders = errors.New("lens: no headers found")

var cfg = Config{Format: FormatAuto, LogFile: true}

var log zerolog.Logger

func Init() {
	var conf struct {
		Mod Config `yaml:"lens"`
	}

	conf.Mod = cfg // defaults

	app.LoadConfig(&conf)

	cfg = conf.Mod

	log = app.GetLogger("lens")

	if b, err := yaml.Encode(cfg, 2); err == nil {
		log.Trace().Msgf("[lens] config\n%s", b)
	}
}

// Run processes files in parallel. A failed file does not stop the others,
// all errors are joined.
func Run(ctx context.Context, paths []string) ([]*Result, error) {
	results := make([]*Result, len(paths))
	errs := make([]error, len(paths))

	workers := cfg.Workers
	if workers <= 0 {
		workers = core.MaxCPUThreads(1)
	}

	var g errgroup.Group
	g.SetLimit(workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}

			results[i], errs[i] = Process(path)
			if errs[i] != nil {
				log.Error().Err(errs[i]).Str("file", path).Msg("[lens] process")
			}
			return nil
		})
	}

	_ = g.Wait()

	return results, errors.Join(errs...)
}

// Process scans one file, writes the log file and splits frames as configured
func Process(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lens: read file: %w", err)
	}

	log.Debug().Str("file", path).Int("size", len(data)).Hex("begins", data[:min(8, len(data))]).Msg("[lens] read")

	dir := cfg.Output
	if dir == "" {
		dir = filepath.Dir(path)
	}

	r, err := Scan(path, data, cfg.Format)
	if err != nil {
		if r != nil && cfg.LogFile {
			_ = writeLog(dir, r.Name(), "No headers found\n")
		}
		return r, err
	}

	log.Info().Str("file", path).Str("format", r.Format).Int("frames", r.Frames()).Msg("[lens] scan")

	if cfg.LogFile {
		if err = writeLog(dir, r.Name(), r.Report()); err != nil {
			return r, err
		}
	}

	if cfg.WriteFrames {
		n, err := Split(r, filepath.Join(dir, "frames"), cfg.AsBlock, cfg.WriteTags)
		if err != nil {
			return r, err
		}
		log.Debug().Str("file", path).Int("files", n).Msg("[lens] split")
	}

	return r, nil
}

func writeLog(dir, name, report string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("lens: log file: %w", err)
	}
	path := filepath.Join(dir, name+"_log")
	if err := os.WriteFile(path, []byte(report), 0644); err != nil {
		return fmt.Errorf("lens: log file: %w", err)
	}
	return nil
}

// baseName is the file name without extension
func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
