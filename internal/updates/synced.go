package updates

import (
	"strings"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/schema"
)

// SyncedOptionNames lists the options mirrored to the remote service.
// The theme mods option is named after the active stylesheet.
func SyncedOptionNames(options contract.OptionStore) ([]string, error) {
	stylesheet, _, err := options.GetOption(schema.OptionStylesheet)
	if err != nil {
		return nil, err
	}
	return []string{
		schema.OptionStylesheet,
		schema.ThemeModsOptionPrefix + strings.TrimSpace(string(stylesheet)),
		schema.OptionFullManagement,
		schema.OptionSyncNonPublic,
		schema.OptionWPUpdates,
	}, nil
}

// SyncedOptions returns every mirrored option with its stored value.
func SyncedOptions(options contract.OptionStore) ([]schema.SyncedOption, error) {
	names, err := SyncedOptionNames(options)
	if err != nil {
		return nil, err
	}
	out := make([]schema.SyncedOption, 0, len(names))
	for _, name := range names {
		value, ok, err := options.GetOption(name)
		if err != nil {
			return nil, err
		}
		out = append(out, schema.SyncedOption{Name: name, Value: string(value), Present: ok})
	}
	return out, nil
}
