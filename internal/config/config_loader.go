package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// layer is the configuration read from one source.
type layer struct {
	source string
	cfg    *StructuredConfig
}

// configLoader stacks configuration layers in priority order. A source that
// fails to parse adds no layer; load reports every such failure together.
type configLoader struct {
	layers []layer
	errs   []error

	// environ replaces the process environment when non-nil.
	environ map[string]string
}

func newConfigLoader(environ map[string]string) *configLoader {
	return &configLoader{environ: environ}
}

// add parses one source. A nil config without error adds nothing.
func (l *configLoader) add(source string, parse func() (*StructuredConfig, error)) *configLoader {
	cfg, err := parse()
	switch {
	case err != nil:
		l.errs = append(l.errs, fmt.Errorf("%s: %w", source, err))
	case cfg != nil:
		l.layers = append(l.layers, layer{source: source, cfg: cfg})
	}
	return l
}

func (l *configLoader) fromEnv() *configLoader {
	return l.add("env", func() (*StructuredConfig, error) {
		cfg := new(StructuredConfig)
		return cfg, parseEnv(cfg, l.environ)
	})
}

func (l *configLoader) fromFlags(args []string) *configLoader {
	return l.add("flags", func() (*StructuredConfig, error) {
		return ParseFlags(args)
	})
}

// fromJSONFile reads the file named by the last layer that sets
// JSONFilePath. Without one it is a no-op.
func (l *configLoader) fromJSONFile() *configLoader {
	path := l.jsonFilePath()
	if path == "" {
		return l
	}
	return l.add("json "+path, func() (*StructuredConfig, error) {
		return parseJSON(path)
	})
}

func (l *configLoader) jsonFilePath() string {
	for i := len(l.layers) - 1; i >= 0; i-- {
		if p := l.layers[i].cfg.JSONFilePath; p != "" {
			return p
		}
	}
	return ""
}

// load merges the layers, earliest first, and validates the result. Fields
// set by an earlier layer are never overwritten.
func (l *configLoader) load() (*StructuredConfig, error) {
	if len(l.errs) > 0 {
		return nil, fmt.Errorf("error occured during loading config: %w", errors.Join(l.errs...))
	}

	merged := new(StructuredConfig)
	for _, ly := range l.layers {
		if err := mergo.Merge(merged, ly.cfg); err != nil {
			return nil, fmt.Errorf("error merging %s config: %w", ly.source, err)
		}
	}

	return merged, merged.validate()
}
