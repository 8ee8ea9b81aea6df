package config

// ResolvedHook pairs a hook with the repository it comes from, after
// defaults are applied. This is the flattened view used for listings and
// the watch daemon state.
type ResolvedHook struct {
	Source string   `json:"source"`
	Kind   RepoKind `json:"kind"`
	Rev    string   `json:"rev,omitempty"`
	Hook   Hook     `json:"hook"`
}

// RunsInStage reports whether the hook runs in the given stage.
// Legacy aliases are resolved before comparison.
func (rh *ResolvedHook) RunsInStage(stage string) bool {
	normalized, _ := NormalizeStage(stage)
	for _, s := range rh.Hook.Stages {
		if s == normalized {
			return true
		}
	}
	return false
}

// ResolveHooks flattens the repository tree into one entry per hook,
// preserving file order.
func (c *Config) ResolveHooks() []ResolvedHook {
	var hooks []ResolvedHook
	for i := range c.Repos {
		repo := &c.Repos[i]
		for j := range repo.Hooks {
			hooks = append(hooks, ResolvedHook{
				Source: repo.Repo,
				Kind:   repo.Kind(),
				Rev:    repo.Rev,
				Hook:   repo.Hooks[j],
			})
		}
	}
	return hooks
}

// HooksForStage returns the resolved hooks that run in the given stage.
func (c *Config) HooksForStage(stage string) []ResolvedHook {
	var matched []ResolvedHook
	for _, rh := range c.ResolveHooks() {
		if rh.RunsInStage(stage) {
			matched = append(matched, rh)
		}
	}
	return matched
}

// HookByID returns the first resolved hook whose id or alias matches name,
// or nil when none does.
func (c *Config) HookByID(name string) *ResolvedHook {
	for _, rh := range c.ResolveHooks() {
		if rh.Hook.ID == name || (rh.Hook.Alias != "" && rh.Hook.Alias == name) {
			matchedCopy := rh
			return &matchedCopy
		}
	}
	return nil
}
