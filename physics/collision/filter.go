package collision

// Filter gates which proxies may ever collide. Category is the proxy's own
// bit, Mask the categories it accepts. Proxies sharing a non-zero Group
// always collide when the group is positive and never when it is negative.
type Filter struct {
	Category uint32 `yaml:"category"`
	Mask     uint32 `yaml:"mask"`
	Group    int32  `yaml:"group"`
}

const (
	DefaultCategory uint32 = 0x0001
	AllCategories   uint32 = 0xFFFFFFFF
)

// NewFilter returns a filter in the default category that accepts everything.
func NewFilter() *Filter {
	return &Filter{Category: DefaultCategory, Mask: AllCategories}
}

// Check reports whether owners of a and b may collide. A nil filter on either
// side always passes.
func Check(a, b *Filter) bool {
	if a == nil || b == nil {
		return true
	}
	if a.Group == b.Group && a.Group != 0 {
		return a.Group > 0
	}
	return a.Mask&b.Category != 0 && b.Mask&a.Category != 0
}
