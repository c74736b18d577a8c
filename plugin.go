package renderer

// Plugin hooks into rendering. PreProcess receives the raw input before
// any other stage; PostProcess receives the final HTML. Plugins run in
// registration order, each one seeing the previous plugin's output.
type Plugin interface {
	Name() string
	PreProcess(text string) string
	PostProcess(html string) string
}

// PluginFuncs adapts plain functions to Plugin. A nil hook passes its
// input through unchanged.
type PluginFuncs struct {
	PluginName string
	Pre        func(text string) string
	Post       func(html string) string
}

var (
	_ Plugin = PluginFuncs{}
	_ Plugin = (*InstagramPlugin)(nil)
)

func (p PluginFuncs) Name() string { return p.PluginName }

func (p PluginFuncs) PreProcess(text string) string {
	if p.Pre == nil {
		return text
	}
	return p.Pre(text)
}

func (p PluginFuncs) PostProcess(html string) string {
	if p.Post == nil {
		return html
	}
	return p.Post(html)
}

func preProcess(plugins []Plugin, text string) string {
	for _, p := range plugins {
		text = p.PreProcess(text)
	}
	return text
}

func postProcess(plugins []Plugin, html string) string {
	for _, p := range plugins {
		html = p.PostProcess(html)
	}
	return html
}
