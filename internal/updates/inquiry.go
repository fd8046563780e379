package updates

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/schema"
)

// TransientUpdateInquirer answers update queries from the host's cached release
// checks, stored as the update_core, update_plugins and update_themes transients.
// Core offers listed in the dismissed_update_core option are skipped when an
// option store is attached.
type TransientUpdateInquirer struct {
	transients contract.TransientStore
	options    contract.OptionStore
}

var _ contract.UpdateInquirer = &TransientUpdateInquirer{} // Compile-time check

// NewTransientUpdateInquirer reads release checks from transients.
func NewTransientUpdateInquirer(transients contract.TransientStore) *TransientUpdateInquirer {
	return &TransientUpdateInquirer{transients: transients}
}

// WithDismissals reads dismissed core offers from options.
func (q *TransientUpdateInquirer) WithDismissals(options contract.OptionStore) *TransientUpdateInquirer {
	q.options = options
	return q
}

// UpdateData counts pending updates per category.
// It returns no counts when the host has never run any release check.
func (q *TransientUpdateInquirer) UpdateData(ctx context.Context) (schema.UpdateData, error) {
	if err := ctx.Err(); err != nil {
		return schema.UpdateData{}, err
	}

	core, err := q.coreState()
	if err != nil {
		return schema.UpdateData{}, err
	}
	plugins, err := q.extensionState(schema.TransientUpdatePlugins)
	if err != nil {
		return schema.UpdateData{}, err
	}
	themes, err := q.extensionState(schema.TransientUpdateThemes)
	if err != nil {
		return schema.UpdateData{}, err
	}
	if core == nil && plugins == nil && themes == nil {
		return schema.UpdateData{}, nil
	}

	counts := map[string]int{
		schema.CountPlugins:      0,
		schema.CountThemes:       0,
		schema.CountWordPress:    0,
		schema.CountTranslations: 0,
	}
	if plugins != nil {
		counts[schema.CountPlugins] = len(plugins.Response)
	}
	if themes != nil {
		counts[schema.CountThemes] = len(themes.Response)
	}
	if core != nil {
		offers, err := q.activeOffers(core.Updates)
		if err != nil {
			return schema.UpdateData{}, err
		}
		if len(offers) > 0 && offers[0].Response != schema.CoreResponseLatest && offers[0].Response != schema.CoreResponseDevelopment {
			counts[schema.CountWordPress] = 1
		}
	}
	if hasTranslations(core, plugins, themes) {
		counts[schema.CountTranslations] = 1
	}
	counts[schema.CountTotal] = counts[schema.CountPlugins] + counts[schema.CountThemes] +
		counts[schema.CountWordPress] + counts[schema.CountTranslations]

	return schema.UpdateData{Counts: counts}, nil
}

// PreferredCoreUpdate returns the first offer that has not been dismissed.
// With no remaining offers it reports the install as latest; with no release
// check at all it returns nil.
func (q *TransientUpdateInquirer) PreferredCoreUpdate(ctx context.Context) (*schema.CoreUpdate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	core, err := q.coreState()
	if err != nil || core == nil {
		return nil, err
	}
	offers, err := q.activeOffers(core.Updates)
	if err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		return &schema.CoreUpdate{Response: schema.CoreResponseLatest}, nil
	}
	offer := offers[0]
	return &offer, nil
}

// coreState loads the core release check, or nil when it is absent.
func (q *TransientUpdateInquirer) coreState() (*schema.CoreUpdateState, error) {
	var state schema.CoreUpdateState
	ok, err := q.load(schema.TransientUpdateCore, &state)
	if err != nil || !ok {
		return nil, err
	}
	return &state, nil
}

// extensionState loads a plugin or theme release check, or nil when it is absent.
func (q *TransientUpdateInquirer) extensionState(key string) (*schema.ExtensionUpdateState, error) {
	var state schema.ExtensionUpdateState
	ok, err := q.load(key, &state)
	if err != nil || !ok {
		return nil, err
	}
	return &state, nil
}

func (q *TransientUpdateInquirer) load(key string, v any) (bool, error) {
	data, ok, err := q.transients.GetTransient(key)
	if err != nil {
		return false, fmt.Errorf("failed to read transient %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("transient %s is not a valid release check: %w", key, err)
	}
	return true, nil
}

// activeOffers drops core offers flagged as dismissed or listed in the
// dismissed_update_core option.
func (q *TransientUpdateInquirer) activeOffers(offers []schema.CoreUpdate) ([]schema.CoreUpdate, error) {
	dismissed, err := q.dismissedKeys()
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(slices.Clone(offers), func(u schema.CoreUpdate) bool {
		return u.Dismissed || slices.Contains(dismissed, u.DismissalKey())
	}), nil
}

func (q *TransientUpdateInquirer) dismissedKeys() ([]string, error) {
	if q.options == nil {
		return nil, nil
	}
	data, ok, err := q.options.GetOption(schema.OptionDismissedCore)
	if err != nil {
		return nil, fmt.Errorf("failed to read option %s: %w", schema.OptionDismissedCore, err)
	}
	if !ok {
		return nil, nil
	}
	var keys []string
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("option %s is not a list of dismissed offers: %w", schema.OptionDismissedCore, err)
	}
	return keys, nil
}

func hasTranslations(core *schema.CoreUpdateState, plugins, themes *schema.ExtensionUpdateState) bool {
	if core != nil && len(core.Translations) > 0 {
		return true
	}
	for _, ext := range []*schema.ExtensionUpdateState{plugins, themes} {
		if ext != nil && len(ext.Translations) > 0 {
			return true
		}
	}
	return false
}
