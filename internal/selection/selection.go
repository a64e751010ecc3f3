// Package selection maintains the ordered list of files queued for conversion.
package selection

// File is a single queued file: its display name and the path to its content.
type File struct {
	Name string
	Path string
}

// List holds the queued files in insertion order. Display and removal operate
// by position, so order is significant. The zero value is an empty list.
type List struct {
	files []File
}

// SetFiles replaces the entire sequence with the given files. The slice is
// copied so later mutation by the caller does not leak into the list.
func (l *List) SetFiles(files []File) {
	l.files = append(l.files[:0:0], files...)
}

// Add appends one file to the end of the sequence. Duplicates are allowed so a
// previously removed file can be re-selected identically later.
func (l *List) Add(f File) {
	l.SetFiles(append(l.Files(), f))
}

// RemoveAt removes the file at index i, preserving the relative order of the
// rest. An out-of-range index is a no-op.
func (l *List) RemoveAt(i int) {
	if i < 0 || i >= len(l.files) {
		return
	}
	l.files = append(l.files[:i], l.files[i+1:]...)
}

// Files returns a copy of the current sequence in order.
func (l *List) Files() []File {
	return append([]File(nil), l.files...)
}

// Len returns the number of queued files.
func (l *List) Len() int {
	return len(l.files)
}

// CanSubmit reports whether a conversion can be submitted: true exactly when
// at least one file is queued.
func (l *List) CanSubmit() bool {
	return len(l.files) > 0
}

// Clear empties the sequence.
func (l *List) Clear() {
	l.files = nil
}
