package dot

// Attr is one key=value attribute.
type Attr struct {
	Key   string
	Value string
}

// A is shorthand for Attr{Key: key, Value: value}.
func A(key, value string) Attr { return Attr{Key: key, Value: value} }

// Attrs is an ordered attribute list. Serialization keeps insertion order.
type Attrs []Attr

// Set replaces the value of key, or appends it if absent.
func (a *Attrs) Set(key, value string) {
	for i := range *a {
		if (*a)[i].Key == key {
			(*a)[i].Value = value
			return
		}
	}
	*a = append(*a, Attr{Key: key, Value: value})
}

// Get returns the value of key and whether it is present.
func (a Attrs) Get(key string) (string, bool) {
	for _, at := range a {
		if at.Key == key {
			return at.Value, true
		}
	}
	return "", false
}

// Value returns the value of key, or "" if absent.
func (a Attrs) Value(key string) string {
	v, _ := a.Get(key)
	return v
}
