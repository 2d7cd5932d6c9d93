package alignment

import "strconv"

const labelPrefix = "Speaker "

// LabelMap assigns display labels to raw speaker ids in first-seen order.
// It is scoped to one merge.
type LabelMap struct {
	labels map[string]string
	next   int
}

// NewLabelMap returns an empty map; the first label handed out is "Speaker 1".
func NewLabelMap() *LabelMap {
	return &LabelMap{labels: make(map[string]string), next: 1}
}

// Label returns the display label for raw, allocating one on first use.
func (m *LabelMap) Label(raw string) string {
	if l, ok := m.labels[raw]; ok {
		return l
	}
	l := m.allocate()
	m.labels[raw] = l
	return l
}

// Fallback returns "Speaker 1" for speech with no speaker evidence. The
// first call before any raw id was seen reserves that label.
func (m *LabelMap) Fallback() string {
	if m.next == 1 {
		m.allocate()
	}
	return labelPrefix + "1"
}

// Len returns how many raw ids have been mapped.
func (m *LabelMap) Len() int { return len(m.labels) }

// Lookup returns the label already assigned to raw, if any.
func (m *LabelMap) Lookup(raw string) (string, bool) {
	l, ok := m.labels[raw]
	return l, ok
}

func (m *LabelMap) allocate() string {
	l := labelPrefix + strconv.Itoa(m.next)
	m.next++
	return l
}
