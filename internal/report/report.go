// Package report collects one-line tile summaries into fixed-capacity bins.
package report

import "iter"

// BinSize is the number of entries a bin holds.
const BinSize = 7

// Entry is the report for one tile. Its text is set once.
type Entry struct {
	subject string
	text    string
	set     bool
}

// NewEntry creates an empty report about subject.
func NewEntry(subject string) *Entry {
	return &Entry{subject: subject}
}

// SetReport records the summary. Later calls are ignored.
func (e *Entry) SetReport(text string) {
	if e.set {
		return
	}
	e.text = text
	e.set = true
}

// Subject identifies what the report is about.
func (e *Entry) Subject() string { return e.subject }

// Text returns the summary line.
func (e *Entry) Text() string { return e.text }

// Bin holds up to BinSize entries packed from slot 0. The first nil slot marks
// the end; the extra slot keeps a nil terminator even when the bin is full.
type Bin struct {
	slots [BinSize + 1]*Entry
}

// IsFull reports whether no empty slot exists within the first BinSize slots.
func (b *Bin) IsFull() bool {
	for i := 0; i <= BinSize; i++ {
		if b.slots[i] == nil {
			return i == BinSize
		}
	}
	return true
}

// Add stores e in the first empty slot. A full bin drops it.
func (b *Bin) Add(e *Entry) bool {
	for i := 0; i < BinSize; i++ {
		if b.slots[i] == nil {
			b.slots[i] = e
			return true
		}
	}
	return false
}

// Len returns the number of entries in the bin.
func (b *Bin) Len() int {
	n := 0
	for n < BinSize && b.slots[n] != nil {
		n++
	}
	return n
}

// Entries returns the entries in arrival order.
func (b *Bin) Entries() []*Entry {
	return append([]*Entry(nil), b.slots[:b.Len()]...)
}

// Aggregator is an ordered list of bins. A new bin is allocated only when the
// last one is full.
type Aggregator struct {
	bins []*Bin
}

// NewAggregator creates an aggregator with no bins.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Add appends e to the last bin, allocating a new one first if needed.
func (a *Aggregator) Add(e *Entry) {
	if len(a.bins) == 0 || a.bins[len(a.bins)-1].IsFull() {
		a.bins = append(a.bins, &Bin{})
	}
	a.bins[len(a.bins)-1].Add(e)
}

// Bins returns the bins, oldest first.
func (a *Aggregator) Bins() []*Bin { return a.bins }

// Len returns the total number of entries.
func (a *Aggregator) Len() int {
	n := 0
	for _, b := range a.bins {
		n += b.Len()
	}
	return n
}

// All yields every entry, oldest bin and oldest slot first.
func (a *Aggregator) All() iter.Seq[*Entry] {
	return func(yield func(*Entry) bool) {
		for _, b := range a.bins {
			for _, e := range b.Entries() {
				if !yield(e) {
					return
				}
			}
		}
	}
}
