// Package synth turns presets plus user overrides into complete manifest
// file sets. Synthesis is pure: no I/O, no randomness, no clock.
package synth

// File is one generated manifest: a project-relative path and its text.
type File struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// FileSet is an ordered path→text mapping. Order is emission order, which is
// also the intended apply order (namespace first, workload before service
// only where dependencies require it).
type FileSet struct {
	files []File
	index map[string]int
}

// NewFileSet returns an empty file set.
func NewFileSet() *FileSet {
	return &FileSet{index: make(map[string]int)}
}

// Add appends a file. Paths are unique per component by construction; a
// repeated path replaces the previous content in place.
func (fs *FileSet) Add(path, content string) {
	if i, ok := fs.index[path]; ok {
		fs.files[i].Content = content
		return
	}
	fs.index[path] = len(fs.files)
	fs.files = append(fs.files, File{Path: path, Content: content})
}

// Get returns the content for a path.
func (fs *FileSet) Get(path string) (string, bool) {
	i, ok := fs.index[path]
	if !ok {
		return "", false
	}
	return fs.files[i].Content, true
}

// Has reports whether the set contains a path.
func (fs *FileSet) Has(path string) bool {
	_, ok := fs.index[path]
	return ok
}

// Paths returns all paths in emission order.
func (fs *FileSet) Paths() []string {
	paths := make([]string, len(fs.files))
	for i, f := range fs.files {
		paths[i] = f.Path
	}
	return paths
}

// Files returns the files in emission order.
func (fs *FileSet) Files() []File {
	out := make([]File, len(fs.files))
	copy(out, fs.files)
	return out
}

// Len returns the number of files.
func (fs *FileSet) Len() int {
	return len(fs.files)
}
