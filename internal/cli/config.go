package cli

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/matzehuels/questcanvas/pkg/errors"
	"github.com/matzehuels/questcanvas/pkg/layout"
)

// defaultAddr is the listen address of the serve command.
const defaultAddr = "127.0.0.1:8420"

// fileConfig mirrors questcanvas.toml.
//
//	[layout]
//	rank_gap = 160
//	max_depth = 30
//
//	[serve]
//	addr = "127.0.0.1:8420"
//	cache_url = "redis://localhost:6379/0"
type fileConfig struct {
	Layout layout.Config `toml:"layout"`
	Serve  serveConfig   `toml:"serve"`
}

type serveConfig struct {
	Addr string `toml:"addr"`
	// CacheURL selects a shared Redis cache instead of the local file cache.
	CacheURL string `toml:"cache_url"`
}

// loadConfig reads the config file at path. An empty path falls back to
// ./questcanvas.toml, which may be absent.
func loadConfig(path string) (fileConfig, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return fileConfig{}, nil
		}
		if os.IsNotExist(err) {
			return fileConfig{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return fileConfig{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "config %s", path)
	}
	return parseConfig(string(data), path)
}

func parseConfig(data, name string) (fileConfig, error) {
	var cfg fileConfig
	meta, err := toml.Decode(data, &cfg)
	if err != nil {
		return fileConfig{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", name)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fileConfig{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", name, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// layoutFlags binds the common layout constants to command flags.
type layoutFlags struct {
	nodeWidth float64
	rankGap   float64
	nodeGap   float64
	maxDepth  int
}

func (f *layoutFlags) register(fs *pflag.FlagSet) {
	fs.Float64Var(&f.nodeWidth, "node-width", 0, "node width in pixels (default from config or 300)")
	fs.Float64Var(&f.rankGap, "rank-gap", 0, "horizontal gap between columns (default from config or 120)")
	fs.Float64Var(&f.nodeGap, "node-gap", 0, "vertical gap between nodes (default from config or 40)")
	fs.IntVar(&f.maxDepth, "max-depth", 0, "rank propagation bound (default from config or 50)")
}

// apply overlays explicitly set flags on the config file values.
func (f *layoutFlags) apply(base layout.Config) layout.Config {
	if f.nodeWidth != 0 {
		base.NodeWidth = f.nodeWidth
	}
	if f.rankGap != 0 {
		base.RankGap = f.rankGap
	}
	if f.nodeGap != 0 {
		base.NodeGap = f.nodeGap
	}
	if f.maxDepth != 0 {
		base.MaxDepth = f.maxDepth
	}
	return base.WithDefaults()
}
