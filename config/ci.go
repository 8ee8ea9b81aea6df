package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// CISettings is the typed form of the ci block consumed by the
// pre-commit.ci service. The block is passed through unvalidated; this
// struct decodes the documented keys for tools that want them.
type CISettings struct {
	AutofixCommitMsg    string   `yaml:"autofix_commit_msg"`
	AutofixPRs          *bool    `yaml:"autofix_prs"`
	AutoupdateBranch    string   `yaml:"autoupdate_branch"`
	AutoupdateCommitMsg string   `yaml:"autoupdate_commit_msg"`
	AutoupdateSchedule  string   `yaml:"autoupdate_schedule"`
	Skip                []string `yaml:"skip"`
	Submodules          bool     `yaml:"submodules"`
}

// UnmarshalCI decodes the ci block into target. It is not an error if the
// configuration has no ci block; target keeps its zero value in that case.
func (c *Config) UnmarshalCI(target interface{}) error {
	if c.CI == nil {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(c.CI); err != nil {
		return fmt.Errorf("failed to decode ci block: %w", err)
	}

	return nil
}

// CISettingsOrDefault decodes the ci block into CISettings.
func (c *Config) CISettingsOrDefault() (*CISettings, error) {
	var settings CISettings
	if err := c.UnmarshalCI(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}
