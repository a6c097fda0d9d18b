package paths

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"

	"github.com/autobrr/rxrule/pkg/logger"
)

type Path struct {
	Path      string
	FileName  string
	Directory string
	IsDir     bool
	Size      int64
}

type WalkOptions struct {
	IncludeFiles   bool
	IncludeFolders bool
	// IgnorePrefixes skips any path beginning with one of the prefixes.
	IgnorePrefixes []string
}

var (
	log = logger.GetLogger("paths")
)

// InFolder traverses folder and returns the matching paths sorted by path.
func InFolder(folder string, opts WalkOptions) ([]Path, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return nil, fmt.Errorf("stat folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a folder: %q", folder)
	}

	var paths []Path
	var mutex sync.Mutex

	conf := fastwalk.Config{
		Follow: false,
	}

	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.WithError(err).Errorf("Error accessing path %q during walk", path)
			return nil
		}

		if path == folder {
			return nil
		}

		if IsIgnored(path, opts.IgnorePrefixes) {
			log.Tracef("Skipping ignored path: %s", path)
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		isDir := d.IsDir()
		if (isDir && !opts.IncludeFolders) || (!isDir && !opts.IncludeFiles) {
			return nil
		}

		var size int64
		if !isDir {
			fi, err := d.Info()
			if err != nil {
				log.WithError(err).Errorf("Failed to get file info for %s", path)
				return nil
			}
			size = fi.Size()
		}

		mutex.Lock()
		paths = append(paths, Path{
			Path:      path,
			FileName:  d.Name(),
			Directory: filepath.Dir(path),
			IsDir:     isDir,
			Size:      size,
		})
		mutex.Unlock()

		return nil
	}

	if err := fastwalk.Walk(&conf, folder, walkFn); err != nil {
		return nil, fmt.Errorf("walk folder: %w", err)
	}

	sort.Slice(paths, func(i, j int) bool {
		return paths[i].Path < paths[j].Path
	})

	return paths, nil
}

// IsIgnored checks if a path starts with any entry of the ignore list
func IsIgnored(path string, ignoreList []string) bool {
	return slices.ContainsFunc(ignoreList, func(s string) bool {
		return s != "" && strings.HasPrefix(path, s)
	})
}
