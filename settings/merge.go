package settings

// mergeSettings lays override on top of base: scalars and slices
// replace when set, the watch section merges field-wise, and extension
// sections merge shallowly so an override can adjust a single key
// inside a section.
func mergeSettings(base, override *Settings) *Settings {
	result := *base

	if override.Theme != "" {
		result.Theme = override.Theme
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Icons != "" {
		result.Icons = override.Icons
	}
	if len(override.Ignore) > 0 {
		result.Ignore = override.Ignore
	}
	result.Watch = mergeWatch(result.Watch, override.Watch)
	result.Extensions = mergeExtensions(result.Extensions, override.Extensions)

	return &result
}

func mergeWatch(base, override WatchSettings) WatchSettings {
	merged := base
	if len(override.Roots) > 0 {
		merged.Roots = override.Roots
	}
	if override.Debounce != "" {
		merged.Debounce = override.Debounce
	}
	if override.Poll != "" {
		merged.Poll = override.Poll
	}
	return merged
}

// mergeExtensions merges per section name. When both sides hold a map
// the keys merge shallowly, otherwise the override section wins whole.
// The result never aliases the input maps.
func mergeExtensions(base, override map[string]interface{}) map[string]interface{} {
	if override == nil {
		return base
	}
	merged := make(map[string]interface{}, len(base)+len(override))
	for name, value := range base {
		merged[name] = value
	}
	for name, value := range override {
		baseMap, baseOK := merged[name].(map[string]interface{})
		overrideMap, overrideOK := value.(map[string]interface{})
		if baseOK && overrideOK {
			section := make(map[string]interface{}, len(baseMap)+len(overrideMap))
			for k, v := range baseMap {
				section[k] = v
			}
			for k, v := range overrideMap {
				section[k] = v
			}
			merged[name] = section
			continue
		}
		merged[name] = value
	}
	return merged
}
