package emitter

import (
	"errors"
	"net/http"
	"os"

	"github.com/shurcooL/httpfs/vfsutil"
)

// ErrInvalidUTF8 is wrapped by SourceReadError when a source file is not valid
// UTF-8 text.
var ErrInvalidUTF8 = errors.New("not valid UTF-8")

// ReadFileFunc reads the entire file at the given path.
type ReadFileFunc func(path string) ([]byte, error)

// OSReader reads source files from the host file system.
var OSReader ReadFileFunc = os.ReadFile

// FileSystemReader reads source files from a virtual file system, such as
// http.Dir or an embedded asset file system. Paths are converted to slash form
// before lookup.
func FileSystemReader(fs http.FileSystem) ReadFileFunc {
	return func(path string) ([]byte, error) {
		return vfsutil.ReadFile(fs, NormalizePath(path))
	}
}
