package updates

import (
	"context"
	"fmt"
	"io"

	"github.com/huangsam/siteagent/internal/hooks"
	"github.com/huangsam/siteagent/schema"
)

// Action names registered by RegisterHooks.
const (
	ActionSiteUpdates      = "siteagent_get_site_updates"
	ActionManagementNotice = "siteagent_setting_updated_notice"
)

// RegisterHooks binds the snapshot build to every loaded request and, when
// settings is non-nil, prints the management notice to w after the toggle is saved.
// onSnapshot, when non-nil, receives each built record.
func RegisterHooks(registry *hooks.Registry, builder *SnapshotBuilder, settings *ManagementSettings, w io.Writer, onSnapshot func(schema.SnapshotRecord)) error {
	err := registry.AddAction(schema.HookLoaded, ActionSiteUpdates, func(ctx context.Context) error {
		rec := builder.BuildAndPersist(ctx)
		if onSnapshot != nil {
			onSnapshot(rec)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if settings == nil {
		return nil
	}
	return registry.AddAction(schema.HookManagementSaved, ActionManagementNotice, func(context.Context) error {
		notice, err := settings.Notice()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, notice)
		return err
	})
}
