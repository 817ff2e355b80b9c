// Package locate resolves the 'main' packages of the enclosing Go module into runnable build artifacts, so test code
// can launch its own binaries without knowing where they end up on disk.
package locate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/clitools/test-common/log"
	"github.com/clitools/test-common/proc"
)

// ErrNoBinary is returned when the enclosing module doesn't contain a matching 'main' package.
var ErrNoBinary = errors.New("no matching binaries in module")

// ErrNoModule is returned when the locators directory isn't inside a Go module.
var ErrNoModule = errors.New("not inside a Go module")

// AmbiguousError is returned when more than one 'main' package matched, and exactly one was required.
type AmbiguousError struct {
	// Name is the logical name which was searched for, empty when the sole binary of the module was requested.
	Name string

	// Candidates are the import paths of the packages which matched.
	Candidates []string
}

func (a *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous which binary is intended: %s", strings.Join(a.Candidates, ", "))
}

// IsAmbiguous returns a boolean indicating whether the given error is an 'AmbiguousError'.
func IsAmbiguous(err error) bool {
	var ambiguous *AmbiguousError
	return errors.As(err, &ambiguous)
}

// Locator resolves logical binary names to built artifacts, building each matched package at most once and caching
// the resulting path for its own lifetime.
//
// NOTE: The zero value locates binaries for the module enclosing the current working directory using the go tool on
// the current PATH.
type Locator struct {
	// Dir is the directory whose enclosing module is searched, defaults to the current working directory.
	Dir string

	// Tool is used for package discovery and builds, defaults to the go tool on the current PATH.
	Tool GoTool

	mutex   sync.Mutex
	built   map[string]string
	scratch string
}

// DefaultLocator backs the package level convenience functions; binaries built through it are shared process-wide.
var DefaultLocator = &Locator{}

// Binary returns the path to the built artifact for the sole 'main' package whose directory base name matches the
// given name, building it on first use.
func (l *Locator) Binary(ctx context.Context, name string) (string, error) {
	root, err := l.root()
	if err != nil {
		return "", err
	}

	pkg, err := l.find(ctx, root, name)
	if err != nil {
		return "", err
	}

	return l.build(ctx, root, pkg)
}

// root returns the root directory of the enclosing module, located by walking up from the locators directory until a
// 'go.mod' is found; this means binaries resolve correctly regardless of which package directory the tests are being
// run from.
func (l *Locator) root() (string, error) {
	dir := l.Dir

	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to determine working directory: %w", err)
		}

		dir = wd
	}

	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve module search directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoModule
		}

		dir = parent
	}
}

// MainBinary returns the path to the built artifact for the module's sole 'main' package.
//
// NOTE: Only works when the module contains exactly one 'main' package, use 'Binary' otherwise.
func (l *Locator) MainBinary(ctx context.Context) (string, error) {
	return l.Binary(ctx, "")
}

// Command returns a command which will run the built artifact for the 'main' package with the given name.
func (l *Locator) Command(ctx context.Context, name string) (*proc.Command, error) {
	path, err := l.Binary(ctx, name)
	if err != nil {
		return nil, err
	}

	return proc.New(path), nil
}

// MainCommand returns a command which will run the module's sole binary.
func (l *Locator) MainCommand(ctx context.Context) (*proc.Command, error) {
	return l.Command(ctx, "")
}

// listPackage is the subset of the go tools package listing which candidate discovery uses.
type listPackage struct {
	Name       string `json:"Name"`
	Dir        string `json:"Dir"`
	ImportPath string `json:"ImportPath"`
}

// find returns the sole 'main' package matching the given name, an empty name matches every 'main' package in the
// module.
func (l *Locator) find(ctx context.Context, root, name string) (listPackage, error) {
	mains, err := l.mains(ctx, root)
	if err != nil {
		return listPackage{}, err
	}

	if name != "" {
		matched := mains[:0]

		for _, pkg := range mains {
			if filepath.Base(pkg.Dir) == name {
				matched = append(matched, pkg)
			}
		}

		mains = matched
	}

	switch len(mains) {
	case 1:
		return mains[0], nil
	case 0:
		if name == "" {
			return listPackage{}, ErrNoBinary
		}

		return listPackage{}, fmt.Errorf("%w: no 'main' package named %q", ErrNoBinary, name)
	default:
		candidates := make([]string, 0, len(mains))
		for _, pkg := range mains {
			candidates = append(candidates, pkg.ImportPath)
		}

		return listPackage{}, &AmbiguousError{Name: name, Candidates: candidates}
	}
}

// mains returns every 'main' package in the enclosing module. The go tool emits the listing as a stream of
// concatenated JSON objects, one per package.
func (l *Locator) mains(ctx context.Context, root string) ([]listPackage, error) {
	listing, err := l.tool().Run(ctx, root, "list", "-json=Name,Dir,ImportPath", "./...")
	if err != nil {
		return nil, fmt.Errorf("failed to list module packages: %w", err)
	}

	var (
		decoder = jsoniter.NewDecoder(bytes.NewReader(listing))
		mains   []listPackage
	)

	for decoder.More() {
		var pkg listPackage

		err = decoder.Decode(&pkg)
		if err != nil {
			return nil, fmt.Errorf("failed to decode package listing: %w", err)
		}

		if pkg.Name != "main" {
			continue
		}

		mains = append(mains, pkg)
	}

	return mains, nil
}

// build compiles the given package into the locators scratch directory, returning the cached artifact path when it
// has been built before.
func (l *Locator) build(ctx context.Context, root string, pkg listPackage) (string, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if path, ok := l.built[pkg.ImportPath]; ok {
		return path, nil
	}

	if l.scratch == "" {
		scratch := filepath.Join(os.TempDir(), "test-common-"+uuid.NewString())

		err := os.MkdirAll(scratch, 0o755)
		if err != nil {
			return "", fmt.Errorf("failed to create scratch directory: %w", err)
		}

		l.scratch = scratch
	}

	path := filepath.Join(l.scratch, filepath.Base(pkg.Dir)+exeSuffix())

	log.Debugf("(Locate) Building binary | package=%s path=%s", pkg.ImportPath, path)

	_, err := l.tool().Run(ctx, root, "build", "-o", path, pkg.ImportPath)
	if err != nil {
		return "", fmt.Errorf("failed to build %q: %w", pkg.ImportPath, err)
	}

	if l.built == nil {
		l.built = make(map[string]string)
	}

	l.built[pkg.ImportPath] = path

	return path, nil
}

func (l *Locator) tool() GoTool {
	if l.Tool != nil {
		return l.Tool
	}

	return execGoTool{}
}

func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}

	return ""
}

// Binary returns the path to the built artifact for the 'main' package with the given name, see '(*Locator).Binary'.
func Binary(ctx context.Context, name string) (string, error) {
	return DefaultLocator.Binary(ctx, name)
}

// MainBinary returns the path to the built artifact for the module's sole 'main' package, see
// '(*Locator).MainBinary'.
func MainBinary(ctx context.Context) (string, error) {
	return DefaultLocator.MainBinary(ctx)
}

// Command returns a command which will run the built artifact for the 'main' package with the given name, see
// '(*Locator).Command'.
func Command(ctx context.Context, name string) (*proc.Command, error) {
	return DefaultLocator.Command(ctx, name)
}

// MainCommand returns a command which will run the module's sole binary, see '(*Locator).MainCommand'.
func MainCommand(ctx context.Context) (*proc.Command, error) {
	return DefaultLocator.MainCommand(ctx)
}
