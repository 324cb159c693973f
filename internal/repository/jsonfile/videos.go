package jsonfile

import (
	"os"
	"path/filepath"
	"strings"
)

// VideoExt is the extension of local assets
const VideoExt = ".mp4"

// VideoDir implements repository.AssetStore over a directory of <code>.mp4 files
type VideoDir struct {
	dir string
}

// NewVideoDir creates an asset store rooted at dir
func NewVideoDir(dir string) *VideoDir {
	return &VideoDir{dir: dir}
}

// Find returns the path of <code>.mp4 if it is a regular file
func (v *VideoDir) Find(code string) (string, bool) {
	if !validAssetName(code) {
		return "", false
	}

	path := filepath.Join(v.dir, code+VideoExt)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return path, true
}

// validAssetName rejects codes that would escape the video directory
func validAssetName(code string) bool {
	if code == "" || code == "." || code == ".." {
		return false
	}
	return !strings.ContainsAny(code, `/\`+"\x00") && !strings.Contains(code, "..")
}
