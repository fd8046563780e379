package updates

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/schema"
	"gopkg.in/yaml.v3"
)

// LoadHostState reads a YAML document describing the host's release checks.
func LoadHostState(path string) (*schema.HostUpdateState, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseHostState(b)
}

// ParseHostState decodes YAML host update state. Unknown fields are rejected.
func ParseHostState(b []byte) (*schema.HostUpdateState, error) {
	var state schema.HostUpdateState
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&state); err != nil {
		return nil, fmt.Errorf("invalid host update state: %w", err)
	}
	if state.Core == nil && state.Plugins == nil && state.Themes == nil && state.DismissedCore == nil {
		return nil, fmt.Errorf("host update state has no core, plugins, themes or dismissed_core section")
	}
	return &state, nil
}

// ImportHostState writes each present section to its update transient without expiry.
// It returns the transient keys written.
func ImportHostState(transients contract.TransientStore, state *schema.HostUpdateState) ([]string, error) {
	sections := []struct {
		key   string
		value any
		ok    bool
	}{
		{schema.TransientUpdateCore, state.Core, state.Core != nil},
		{schema.TransientUpdatePlugins, state.Plugins, state.Plugins != nil},
		{schema.TransientUpdateThemes, state.Themes, state.Themes != nil},
	}

	var written []string
	for _, section := range sections {
		if !section.ok {
			continue
		}
		data, err := json.Marshal(section.value)
		if err != nil {
			return written, fmt.Errorf("failed to encode %s: %w", section.key, err)
		}
		if err := transients.SetTransient(section.key, data, 0); err != nil {
			return written, fmt.Errorf("failed to store %s: %w", section.key, err)
		}
		written = append(written, section.key)
	}
	return written, nil
}

// ImportDismissedCore stores the dismissed core offers in the
// dismissed_update_core option. It reports false when the state has none.
func ImportDismissedCore(options contract.OptionStore, state *schema.HostUpdateState) (bool, error) {
	if state.DismissedCore == nil {
		return false, nil
	}
	data, err := json.Marshal(state.DismissedCore)
	if err != nil {
		return false, fmt.Errorf("failed to encode %s: %w", schema.OptionDismissedCore, err)
	}
	if err := options.UpdateOption(schema.OptionDismissedCore, data); err != nil {
		return false, fmt.Errorf("failed to store %s: %w", schema.OptionDismissedCore, err)
	}
	return true, nil
}
