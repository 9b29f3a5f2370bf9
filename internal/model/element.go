package model

// RuntimeID is an opaque platform token identifying a live UI element. It is
// stable for the lifetime of the underlying control and unique among
// currently-live elements, but not necessarily durable across control
// recreation. Windows UI Automation reports it as a small int array; backends
// serialize that as dotted integers (e.g. "42.463522.4").
type RuntimeID string

// ElementInfo is a point-in-time snapshot of a resolved element's attributes.
// It carries no live handle; the handle stays inside the engine's cache.
type ElementInfo struct {
	Role      string    `yaml:"role"           json:"role"`
	Name      string    `yaml:"name,omitempty" json:"name,omitempty"`
	RuntimeID RuntimeID `yaml:"runtime_id"     json:"runtime_id"`
	Rect      Rect      `yaml:"rect"           json:"rect"`
}
