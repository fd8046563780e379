package updates

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/schema"
)

// ManagementDashboardURL is where a managed site's plugins can be administered.
const ManagementDashboardURL = "https://wordpress.com/plugins"

// Notices shown after the management toggle is saved.
var (
	ManagementEnabledNotice  = fmt.Sprintf("You are all set! Your site can now be managed from WordPress.com/Plugins (%s).", ManagementDashboardURL)
	ManagementDisabledNotice = "Centralized Site Management is now disabled."
)

// ManagementSettings is the "allow remote management" toggle.
type ManagementSettings struct {
	options contract.OptionStore
}

// NewManagementSettings reads and writes the toggle through options.
func NewManagementSettings(options contract.OptionStore) *ManagementSettings {
	return &ManagementSettings{options: options}
}

// Enabled reports whether remote management is allowed. A missing option is false.
func (s *ManagementSettings) Enabled() (bool, error) {
	data, ok, err := s.options.GetOption(schema.OptionFullManagement)
	if err != nil {
		return false, fmt.Errorf("failed to read management setting: %w", err)
	}
	value := strings.TrimSpace(string(data))
	if !ok || value == "" {
		return false, nil
	}
	enabled, err := contract.ParseBoolString(value)
	if err != nil {
		return false, fmt.Errorf("stored management setting is invalid: %w", err)
	}
	return enabled, nil
}

// Save stores the toggle.
func (s *ManagementSettings) Save(enabled bool) error {
	if err := s.options.UpdateOption(schema.OptionFullManagement, []byte(strconv.FormatBool(enabled))); err != nil {
		return fmt.Errorf("failed to save management setting: %w", err)
	}
	return nil
}

// Notice returns the confirmation for the stored toggle.
func (s *ManagementSettings) Notice() (string, error) {
	enabled, err := s.Enabled()
	if err != nil {
		return "", err
	}
	if enabled {
		return ManagementEnabledNotice, nil
	}
	return ManagementDisabledNotice, nil
}
