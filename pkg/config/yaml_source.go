package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLSource implements ConfigSource for a flat YAML file. Keys in the
// file are the lowercase form of the environment keys, e.g.
//
//	channel_count: 5
//	speed_of_sound_mps: 343.0
//	bridge_url: ws://localhost:9000/ranger
type YAMLSource struct {
	values map[string]interface{}
}

func NewYAMLSource(path string) (*YAMLSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	values := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &YAMLSource{values: values}, nil
}

func (y *YAMLSource) lookup(key string) (interface{}, bool) {
	v, ok := y.values[strings.ToLower(key)]
	return v, ok
}

func (y *YAMLSource) GetString(key string) (string, bool) {
	if v, ok := y.lookup(key); ok {
		if s, ok := v.(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

func (y *YAMLSource) GetInt(key string) (int, bool) {
	if v, ok := y.lookup(key); ok {
		if i, ok := v.(int); ok {
			return i, true
		}
	}
	return 0, false
}

func (y *YAMLSource) GetFloat(key string) (float64, bool) {
	if v, ok := y.lookup(key); ok {
		switch n := v.(type) {
		case float64:
			return n, true
		case int:
			return float64(n), true
		}
	}
	return 0, false
}

func (y *YAMLSource) GetBool(key string) (bool, bool) {
	if v, ok := y.lookup(key); ok {
		if b, ok := v.(bool); ok {
			return b, true
		}
	}
	return false, false
}
