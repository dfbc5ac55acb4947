package wire

import "strings"

type headerField struct {
	name  string
	value string
}

// Header is an ordered header mapping. Names keep the case they were
// declared with; lookups are case-insensitive. Declaring the same name
// twice joins the values with a comma.
type Header struct {
	fields []headerField
	index  map[string]int
}

// NewHeader returns an empty Header.
func NewHeader() *Header {
	return &Header{index: make(map[string]int)}
}

// Set records a header field. A repeated name keeps its first position
// and original case and gets the new value appended, comma separated.
func (h *Header) Set(name, value string) {
	key := strings.ToLower(name)
	if i, ok := h.index[key]; ok {
		h.fields[i].value = h.fields[i].value + "," + value
		return
	}
	h.index[key] = len(h.fields)
	h.fields = append(h.fields, headerField{name: name, value: value})
}

// Get returns the value for name, matching case-insensitively.
// Missing names return "".
func (h *Header) Get(name string) string {
	if i, ok := h.index[strings.ToLower(name)]; ok {
		return h.fields[i].value
	}
	return ""
}

// Has reports whether name is present, matching case-insensitively.
func (h *Header) Has(name string) bool {
	_, ok := h.index[strings.ToLower(name)]
	return ok
}

// Len returns the number of distinct header fields.
func (h *Header) Len() int { return len(h.fields) }

// Each calls fn for every field in declaration order with original case.
func (h *Header) Each(fn func(name, value string)) {
	for _, f := range h.fields {
		fn(f.name, f.value)
	}
}

// Map returns a plain map snapshot keyed by the original-case names.
func (h *Header) Map() map[string]string {
	out := make(map[string]string, len(h.fields))
	for _, f := range h.fields {
		out[f.name] = f.value
	}
	return out
}
