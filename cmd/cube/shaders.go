package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// shaderSource returns a filesystem and the two shader paths inside it. Paths that stay
// inside the working directory are served from it. Otherwise both are resolved to absolute
// paths and served from the filesystem root of the vertex shader's volume.
func shaderSource(vertex, fragment string) (fs.FS, string, string, error) {
	relVertex, vertexLocal := localPath(vertex)
	relFragment, fragmentLocal := localPath(fragment)
	if vertexLocal && fragmentLocal {
		return os.DirFS("."), relVertex, relFragment, nil
	}

	absVertex, err := filepath.Abs(vertex)
	if err != nil {
		return nil, "", "", fmt.Errorf("resolving %q: %w", vertex, err)
	}
	absFragment, err := filepath.Abs(fragment)
	if err != nil {
		return nil, "", "", fmt.Errorf("resolving %q: %w", fragment, err)
	}

	root := filepath.VolumeName(absVertex) + string(filepath.Separator)
	relVertex, err = filepath.Rel(root, absVertex)
	if err != nil {
		return nil, "", "", err
	}
	relFragment, err = filepath.Rel(root, absFragment)
	if err != nil {
		return nil, "", "", fmt.Errorf("shaders must share a volume: %w", err)
	}
	return os.DirFS(root), filepath.ToSlash(relVertex), filepath.ToSlash(relFragment), nil
}

// localPath reports whether p names a file under the working directory, returning it in
// the slash-separated form fs.FS expects.
func localPath(p string) (string, bool) {
	if filepath.IsAbs(p) {
		return "", false
	}
	slashed := filepath.ToSlash(filepath.Clean(p))
	return slashed, fs.ValidPath(slashed)
}
