package rules

// Plugin extends the engine with extra rules and an optional content hook.
// Registration is all-or-none: when Initialize reports false, nothing the
// plugin declares is admitted.
type Plugin interface {
	Name() string
	Initialize() bool
	RegisterRules() []Rule
	CheckContent(content string) []Finding
	Cleanup()
}

// LoadPlugin initializes a plugin and, on success, registers its rules and
// content hook. Declared rules that fail to compile are skipped; duplicate
// names are suffixed with the plugin name rather than rejected, so a plugin
// cannot shadow an existing rule.
func (e *Engine) LoadPlugin(p Plugin) bool {
	if p == nil || !p.Initialize() {
		return false
	}

	lp := loadedPlugin{plugin: p}
	for _, r := range p.RegisterRules() {
		rule := r
		if rule.Name == "" || rule.Pattern == "" {
			continue
		}
		if e.GetRule(rule.Name) != nil {
			rule.Name = rule.Name + "_" + p.Name()
			if e.GetRule(rule.Name) != nil {
				continue
			}
		}
		if rule.Severity == "" {
			rule.Severity = SeverityMedium
		}
		if err := rule.Compile(); err != nil {
			continue
		}
		lp.rules = append(lp.rules, rule)
	}

	e.plugins = append(e.plugins, lp)
	return true
}

// UnloadPlugins calls Cleanup on every plugin and drops their content
// hooks. Rules a plugin merged stay active — they move to the custom set,
// where RemoveRule can retract them explicitly.
func (e *Engine) UnloadPlugins() {
	for _, lp := range e.plugins {
		lp.plugin.Cleanup()
		e.custom = append(e.custom, lp.rules...)
	}
	e.plugins = nil
}

// PluginFunc adapts a bare content-check function into a Plugin with no
// extra rules and a no-op lifecycle.
type PluginFunc struct {
	PluginName string
	Check      func(content string) []Finding
}

func (p PluginFunc) Name() string          { return p.PluginName }
func (p PluginFunc) Initialize() bool      { return p.Check != nil }
func (p PluginFunc) RegisterRules() []Rule { return nil }
func (p PluginFunc) Cleanup()              {}

func (p PluginFunc) CheckContent(content string) []Finding {
	if p.Check == nil {
		return nil
	}
	return p.Check(content)
}
