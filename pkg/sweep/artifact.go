package sweep

import (
	"fmt"
	"path/filepath"
)

// NameFor is the deterministic mapping from a matrix point to its artifact
// name. It is collision free for distinct (cacheSize, backend) pairs and
// matches the layout the analysis tooling parses: exp_<cacheSize>_<backend>.
func NameFor(cacheSize int64, backend string) string {
	return fmt.Sprintf("exp_%d_%s", cacheSize, backend)
}

// ArtifactPath returns the output file path for one measurement. Repetition
// indices above zero get a _rep<N> suffix so that repeated measurements of
// the same matrix point do not overwrite each other; repetition zero keeps
// the plain name for compatibility with the analysis tooling.
func ArtifactPath(outputDir string, cacheSize int64, backend string, repetition int) string {
	name := NameFor(cacheSize, backend)
	if repetition > 0 {
		name = fmt.Sprintf("%s_rep%d", name, repetition)
	}
	return filepath.Join(outputDir, name)
}
