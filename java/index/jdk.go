package index

import (
	"embed"
	"path"
)

//go:embed jdk/*.java
var jdkSources embed.FS

// JDKPrefix is the path under which the bundled platform classes are
// registered.
const JDKPrefix = "jdk:"

// NewWithJDK returns an index seeded with the bundled platform classes:
// java.lang, java.lang.annotation, java.io, java.util, java.util.function,
// java.util.stream, java.time and java.nio.file.
func NewWithJDK() *Index {
	ix := New()
	if err := ix.LoadJDK(); err != nil {
		log.Errorf("loading platform classes: %s", err)
	}
	return ix
}

func (ix *Index) LoadJDK() error {
	entries, err := jdkSources.ReadDir("jdk")
	if err != nil {
		return err
	}
	for _, e := range entries {
		src, err := jdkSources.ReadFile(path.Join("jdk", e.Name()))
		if err != nil {
			return err
		}
		if err := ix.AddSource(JDKPrefix+e.Name(), src); err != nil {
			log.Warningf("platform classes: %s", err)
		}
	}
	return nil
}
