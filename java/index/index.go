package index

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/javacomplete/java"
	"github.com/dhamidi/javacomplete/java/parser"
)

var log = commonlog.GetLogger("javacomplete.index")

// TypeHandle identifies a class known to the index without loading its
// members.
type TypeHandle struct {
	QualifiedName string
	SimpleName    string
	Package       string
	Kind          java.ClassKind
}

func handleOf(c *java.ClassModel) TypeHandle {
	return TypeHandle{QualifiedName: c.Name, SimpleName: c.SimpleName, Package: c.Package, Kind: c.Kind}
}

// NamePattern matches simple class names.
type NamePattern func(simpleName string) bool

// AnyName matches every name.
func AnyName(string) bool { return true }

func Prefix(prefix string) NamePattern {
	return func(name string) bool { return strings.HasPrefix(name, prefix) }
}

func Exact(name string) NamePattern {
	return func(n string) bool { return n == name }
}

type fileEntry struct {
	classes []*java.ClassModel
	module  *java.ModuleModel
}

// Index is the whole-program class index. It is safe for concurrent use.
type Index struct {
	mu       sync.RWMutex
	files    map[string]*fileEntry
	classes  map[string]*java.ClassModel
	packages map[string]int
	modules  map[string]*java.ModuleModel
}

func New() *Index {
	return &Index{
		files:    make(map[string]*fileEntry),
		classes:  make(map[string]*java.ClassModel),
		packages: make(map[string]int),
		modules:  make(map[string]*java.ModuleModel),
	}
}

// AddSource parses src and replaces whatever path contributed before. The
// classes of a file with syntax errors are indexed anyway; the first error
// is returned.
func (ix *Index) AddSource(path string, src []byte) error {
	entry, err := parseFile(path, src)
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.replaceLocked(path, entry)
	return err
}

func parseFile(path string, src []byte) (*fileEntry, error) {
	p := parser.ParseCompilationUnit(bytes.NewReader(src), parser.WithFile(path))
	root := p.Finish()
	entry := &fileEntry{}
	if root != nil {
		entry.classes = java.ClassModelsFromCompilationUnit(root, p.Tokens())
		entry.module = java.ModuleModelFromCompilationUnit(root)
	}
	if errs := p.Errors(); len(errs) > 0 {
		return entry, fmt.Errorf("%s: %w", path, errs[0])
	}
	return entry, nil
}

// AddClasses registers models that were built elsewhere under path.
func (ix *Index) AddClasses(path string, classes []*java.ClassModel) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.replaceLocked(path, &fileEntry{classes: classes})
}

func (ix *Index) Remove(path string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.replaceLocked(path, nil)
}

func (ix *Index) replaceLocked(path string, entry *fileEntry) {
	if old := ix.files[path]; old != nil {
		for _, c := range old.classes {
			if ix.classes[c.Name] == c {
				delete(ix.classes, c.Name)
			}
			if c.EnclosingClass == "" {
				ix.packages[c.Package]--
				if ix.packages[c.Package] <= 0 {
					delete(ix.packages, c.Package)
				}
			}
		}
		if old.module != nil && ix.modules[old.module.Name] == old.module {
			delete(ix.modules, old.module.Name)
		}
		delete(ix.files, path)
	}
	if entry == nil {
		return
	}
	ix.files[path] = entry
	for _, c := range entry.classes {
		ix.classes[c.Name] = c
		if c.EnclosingClass == "" {
			ix.packages[c.Package]++
		}
	}
	if entry.module != nil && entry.module.Name != "" {
		ix.modules[entry.module.Name] = entry.module
	}
	log.Debugf("indexed %s: %d classes", path, len(entry.classes))
}

func (ix *Index) FindClass(name string) *java.ClassModel {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.classes[name]
}

// DeclaredTypes returns the classes whose simple name matches and whose
// kind is one of kinds, or any kind when none are given. Results are
// ordered by qualified name.
func (ix *Index) DeclaredTypes(match NamePattern, kinds ...java.ClassKind) []TypeHandle {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	var out []TypeHandle
	for _, c := range ix.classes {
		if !kindIn(c.Kind, kinds) || (match != nil && !match(c.SimpleName)) {
			continue
		}
		out = append(out, handleOf(c))
	}
	sortHandles(out)
	return out
}

func kindIn(kind java.ClassKind, kinds []java.ClassKind) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func sortHandles(hs []TypeHandle) {
	sort.Slice(hs, func(i, j int) bool { return hs[i].QualifiedName < hs[j].QualifiedName })
}

// PackageNames returns the packages starting with prefix, including those
// that only contain other packages.
func (ix *Index) PackageNames(prefix string) []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	seen := make(map[string]bool)
	for pkg := range ix.packages {
		for name := pkg; name != ""; {
			if strings.HasPrefix(name, prefix) {
				seen[name] = true
			}
			i := strings.LastIndex(name, ".")
			if i < 0 {
				break
			}
			name = name[:i]
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ClassesInPackage returns the top level classes of pkg.
func (ix *Index) ClassesInPackage(pkg string) []*java.ClassModel {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	var out []*java.ClassModel
	for _, c := range ix.classes {
		if c.Package == pkg && c.EnclosingClass == "" {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Implementors returns every known class that directly or indirectly
// extends or implements h.
func (ix *Index) Implementors(h TypeHandle) []TypeHandle {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	finder := lockedFinder{ix}
	direct := make(map[string][]string)
	for _, c := range ix.classes {
		for _, super := range java.Supertypes(finder, c) {
			direct[super] = append(direct[super], c.Name)
		}
	}
	seen := make(map[string]bool)
	var out []TypeHandle
	queue := []string{h.QualifiedName}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		for _, sub := range direct[name] {
			if seen[sub] {
				continue
			}
			seen[sub] = true
			out = append(out, handleOf(ix.classes[sub]))
			queue = append(queue, sub)
		}
	}
	sortHandles(out)
	return out
}

// lockedFinder reads the class map of an index whose lock is already held.
type lockedFinder struct {
	ix *Index
}

func (f lockedFinder) FindClass(name string) *java.ClassModel {
	return f.ix.classes[name]
}

func (ix *Index) ModuleNames(prefix string) []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	var out []string
	for name := range ix.modules {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Len returns the number of classes in the index, nested ones included.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.classes)
}

func (ix *Index) Files() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]string, 0, len(ix.files))
	for path := range ix.files {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}
