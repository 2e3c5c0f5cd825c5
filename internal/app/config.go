package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/AlexxIT/audiolens/pkg/shell"
	"github.com/AlexxIT/audiolens/pkg/yaml"
)

const configName = "audiolens.yaml"

// Sections are the top level keys of the config file
var Sections = []string{"log", "lens", "push"}

// source is one config layer, later layers override earlier ones
type source struct {
	name string // file path, "flag" or "key.sub=value"
	data []byte
}

var sources []source

func LoadConfig(v any) {
	for _, src := range sources {
		if err := yaml.Unmarshal(src.data, v); err != nil {
			Logger.Warn().Err(err).Str("source", src.name).Msg("[app] read config")
		}
	}
}

type flagConfig []string

func (c *flagConfig) String() string {
	return strings.Join(*c, " ")
}

func (c *flagConfig) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// initConfig returns problems found in config sources, they are logged
// once the logger is ready
func initConfig(confs flagConfig) (errs []error) {
	explicit := confs != nil
	if !explicit {
		confs = flagConfig{defaultConfigPath()}
	}

	for _, conf := range confs {
		switch {
		case conf == "":
			continue
		case conf[0] == '{':
			// raw YAML or JSON
			sources = append(sources, source{name: "flag", data: []byte(conf)})
		default:
			if data := parseConfString(conf); data != nil {
				sources = append(sources, source{name: conf, data: data})
				continue
			}

			data, err := os.ReadFile(conf)
			if err != nil {
				// a missing default file is fine, defaults are used
				if explicit || !errors.Is(err, os.ErrNotExist) {
					errs = append(errs, err)
				}
				continue
			}

			if ConfigPath == "" {
				ConfigPath = absPath(conf)
				Info["config_path"] = ConfigPath
			}

			data = []byte(shell.ReplaceEnvVars(string(data)))
			sources = append(sources, source{name: conf, data: data})
		}
	}

	for _, src := range sources {
		if err := checkSections(src.data); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", src.name, err))
		}
	}

	return
}

// defaultConfigPath checks AUDIOLENS_CONFIG, the working folder and the user
// config folder, in that order
func defaultConfigPath() string {
	if s := os.Getenv("AUDIOLENS_CONFIG"); s != "" {
		return s
	}

	if _, err := os.Stat(configName); err == nil {
		return configName
	}

	if dir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(dir, "audiolens", configName)
		if _, err = os.Stat(path); err == nil {
			return path
		}
	}

	return configName
}

func absPath(path string) string {
	if !filepath.IsAbs(path) {
		if cwd, err := os.Getwd(); err == nil {
			return filepath.Join(cwd, path)
		}
	}
	return path
}

// checkSections catches typos like `len:` that would otherwise be ignored
func checkSections(data []byte) error {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return err
	}

	var unknown []string
	for key := range m {
		if !slices.Contains(Sections, key) {
			unknown = append(unknown, key)
		}
	}
	if unknown == nil {
		return nil
	}

	sort.Strings(unknown)
	return fmt.Errorf("unknown config sections: %s", strings.Join(unknown, ", "))
}

// parseConfString converts `lens.format=mp3` to `{lens: {format: mp3}}`
func parseConfString(s string) []byte {
	i := strings.IndexByte(s, '=')
	if i < 0 {
		return nil
	}

	items := strings.Split(s[:i], ".")
	if len(items) < 2 || !slices.Contains(Sections, items[0]) {
		return nil
	}

	var pre string
	var suf = s[i+1:]
	for _, item := range items {
		pre += "{" + item + ": "
		suf += "}"
	}

	return []byte(pre + suf)
}
