package selection

import "testing"

func names(files []File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Name
	}
	return out
}

func mkFiles(n ...string) []File {
	out := make([]File, len(n))
	for i, name := range n {
		out[i] = File{Name: name, Path: "/tmp/" + name}
	}
	return out
}

func TestSetFilesReplacesSequence(t *testing.T) {
	var l List

	l.SetFiles(mkFiles("a.pdf", "b.pdf"))
	if l.Len() != 2 {
		t.Fatalf("Len() = %d; want 2", l.Len())
	}

	// A second SetFiles is a full replacement, not a merge.
	l.SetFiles(mkFiles("c.pdf"))
	got := names(l.Files())
	if len(got) != 1 || got[0] != "c.pdf" {
		t.Errorf("Files() = %v; want [c.pdf]", got)
	}

	l.SetFiles(nil)
	if l.Len() != 0 {
		t.Errorf("Len() after SetFiles(nil) = %d; want 0", l.Len())
	}
}

func TestRemoveAt(t *testing.T) {
	tests := []struct {
		name    string
		initial []string
		index   int
		want    []string
	}{
		{"first", []string{"a", "b", "c"}, 0, []string{"b", "c"}},
		{"middle", []string{"a", "b", "c"}, 1, []string{"a", "c"}},
		{"last", []string{"a", "b", "c"}, 2, []string{"a", "b"}},
		{"negative is no-op", []string{"a", "b"}, -1, []string{"a", "b"}},
		{"past end is no-op", []string{"a", "b"}, 2, []string{"a", "b"}},
		{"empty list is no-op", nil, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l List
			l.SetFiles(mkFiles(tt.initial...))
			l.RemoveAt(tt.index)

			got := names(l.Files())
			if len(got) != len(tt.want) {
				t.Fatalf("Files() = %v; want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Files()[%d] = %s; want %s (relative order must be preserved)", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCanSubmit(t *testing.T) {
	var l List
	if l.CanSubmit() {
		t.Error("CanSubmit() = true for empty list; want false")
	}

	l.Add(File{Name: "a.pdf"})
	if !l.CanSubmit() {
		t.Error("CanSubmit() = false with one file; want true")
	}

	l.RemoveAt(0)
	if l.CanSubmit() {
		t.Error("CanSubmit() = true after removing last file; want false")
	}
}

func TestAddAllowsReselection(t *testing.T) {
	var l List
	f := File{Name: "a.pdf", Path: "/tmp/a.pdf"}

	l.Add(f)
	l.RemoveAt(0)
	l.Add(f)

	if l.Len() != 1 {
		t.Fatalf("Len() = %d; want 1", l.Len())
	}
	if got := l.Files()[0]; got != f {
		t.Errorf("Files()[0] = %+v; want %+v", got, f)
	}
}

func TestFilesReturnsCopy(t *testing.T) {
	var l List
	l.SetFiles(mkFiles("a", "b"))

	got := l.Files()
	got[0].Name = "mutated"

	if l.Files()[0].Name != "a" {
		t.Error("mutating the slice returned by Files() must not affect the list")
	}
}

func TestClear(t *testing.T) {
	var l List
	l.SetFiles(mkFiles("a", "b", "c"))
	l.Clear()

	if l.Len() != 0 || l.CanSubmit() {
		t.Errorf("after Clear: Len() = %d, CanSubmit() = %v; want 0, false", l.Len(), l.CanSubmit())
	}
}
