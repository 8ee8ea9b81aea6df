package config

import "fmt"

// ApplyDefaults fills derived values in place: hook names default to their
// id, hook stages inherit default_stages, and language versions inherit
// default_language_version. Legacy stage aliases are rewritten to their
// current names; each rewrite produces a deprecation warning.
func (c *Config) ApplyDefaults() []string {
	var warnings []string

	if len(c.DefaultInstallHookTypes) == 0 {
		c.DefaultInstallHookTypes = []string{"pre-commit"}
	}

	if len(c.DefaultStages) == 0 {
		c.DefaultStages = append([]string{}, Stages...)
	} else {
		c.DefaultStages, warnings = normalizeStages(c.DefaultStages, "default_stages", warnings)
	}

	for ri := range c.Repos {
		repo := &c.Repos[ri]
		for hi := range repo.Hooks {
			hook := &repo.Hooks[hi]

			if hook.Name == "" {
				hook.Name = hook.ID
			}

			if len(hook.Stages) == 0 {
				hook.Stages = append([]string{}, c.DefaultStages...)
			} else {
				field := fmt.Sprintf("hook '%s'", hook.ID)
				hook.Stages, warnings = normalizeStages(hook.Stages, field, warnings)
			}

			if hook.LanguageVersion == "" && hook.Language != "" {
				if version, ok := c.DefaultLanguageVersion[hook.Language]; ok {
					hook.LanguageVersion = version
				}
			}
		}
	}

	return warnings
}

func normalizeStages(stages []string, subject string, warnings []string) ([]string, []string) {
	normalized := make([]string, len(stages))
	for i, stage := range stages {
		current, legacy := NormalizeStage(stage)
		if legacy {
			warnings = append(warnings, fmt.Sprintf(
				"%s uses legacy stage name '%s'; use '%s' instead", subject, stage, current))
		}
		normalized[i] = current
	}
	return normalized, warnings
}
