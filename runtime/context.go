package runtime

// Context carries the data a template renders against plus the loop
// bindings accumulated by enclosing list tags. Data is shared between
// derived contexts; bindings are copied on write so sibling iterations
// never see each other's keys.
type Context struct {
	data   map[string]interface{}
	locals map[string]interface{}
}

// NewContext creates a render context over data. A nil map is treated as
// empty.
func NewContext(data map[string]interface{}) *Context {
	if data == nil {
		data = map[string]interface{}{}
	}
	return &Context{data: data}
}

// Data returns the underlying data map.
func (c *Context) Data() map[string]interface{} {
	return c.data
}

// Local returns the loop binding for name and whether it is present.
func (c *Context) Local(name string) (interface{}, bool) {
	v, ok := c.locals[name]
	return v, ok
}

// WithLocal derives a context with one additional loop binding.
func (c *Context) WithLocal(name string, value interface{}) *Context {
	locals := make(map[string]interface{}, len(c.locals)+1)
	for k, v := range c.locals {
		locals[k] = v
	}
	locals[name] = value
	return &Context{data: c.data, locals: locals}
}
