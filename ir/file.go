package ir

import (
	"path"
	"sort"
	"strings"
)

// DeclKind identifies the category of a type declaration.
type DeclKind int

const (
	DeclObject DeclKind = iota // Singleton object
	DeclClass                  // Plain class
)

// String returns the string representation of the declaration kind.
func (k DeclKind) String() string {
	switch k {
	case DeclObject:
		return "Object"
	case DeclClass:
		return "Class"
	default:
		return "Unknown"
	}
}

// Type is a named container of functions.
type Type struct {
	Kind  DeclKind
	Name  string
	Doc   string
	Funcs []*Func
}

// AddFunc appends a function to the type.
func (t *Type) AddFunc(f *Func) {
	t.Funcs = append(t.Funcs, f)
}

// File is one emission unit.
type File struct {
	// Package is the dotted package name, e.g. "rxhttp.wrapper.param".
	Package string

	// Name is the file name without extension.
	Name string

	// Comment is emitted as a header line comment.
	Comment string

	// Funcs are top-level functions, emitted before Types.
	Funcs []*Func

	Types []*Type
}

// AddFunc appends a top-level function.
func (f *File) AddFunc(fn *Func) {
	f.Funcs = append(f.Funcs, fn)
}

// AddType appends a type declaration.
func (f *File) AddType(t *Type) {
	f.Types = append(f.Types, t)
}

// Path returns the slash-separated output path with the given extension,
// e.g. "rxhttp/wrapper/param/RxHttpParsers.kt".
func (f *File) Path(ext string) string {
	dir := strings.ReplaceAll(f.Package, ".", "/")
	return path.Join(dir, f.Name+ext)
}

// Dependencies lists the declaration files an emission unit was derived
// from. Incremental builds regenerate the unit when any of them changes.
type Dependencies struct {
	// Aggregating is true when the unit depends on the whole input set,
	// not only on the listed files.
	Aggregating bool

	files map[string]bool
}

// NewDependencies returns a dependency set holding files.
func NewDependencies(aggregating bool, files ...string) Dependencies {
	d := Dependencies{Aggregating: aggregating}
	d.Add(files...)
	return d
}

// Add records files, ignoring empty names and duplicates.
func (d *Dependencies) Add(files ...string) {
	for _, f := range files {
		if f == "" {
			continue
		}
		if d.files == nil {
			d.files = make(map[string]bool)
		}
		d.files[f] = true
	}
}

// Merge adds every file of other.
func (d *Dependencies) Merge(other Dependencies) {
	d.Add(other.Files()...)
	d.Aggregating = d.Aggregating || other.Aggregating
}

// Files returns the recorded files in sorted order.
func (d Dependencies) Files() []string {
	files := make([]string, 0, len(d.files))
	for f := range d.files {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Len returns the number of recorded files.
func (d Dependencies) Len() int {
	return len(d.files)
}

// Unit is a file ready for emission together with the declaration files it
// was derived from.
type Unit struct {
	File *File
	Deps Dependencies
}
