package cli

// result is the {"data": ..., "meta": ...} envelope every command prints.
// In text mode the render func is used instead.
type result struct {
	Data any `json:"data" yaml:"data"`
	Meta any `json:"meta,omitempty" yaml:"meta,omitempty"`

	render func() string
}

func (r result) Text() string {
	if r.render == nil {
		return ""
	}
	return r.render()
}

func respond(data any, render func() string) result {
	return result{Data: data, render: render}
}
