package formats

import (
	"path/filepath"
	"strings"
)

// AtlasListHeader marks a list file whose remaining lines name atlas map files.
const AtlasListHeader = "atlases:"

// AtlasImageExt is the extension of the image paired with each atlas map file.
const AtlasImageExt = ".png"

// List is a parsed texture set list file.
type List struct {
	// Atlases is true when the file starts with AtlasListHeader. Paths then
	// name map files; otherwise they name standalone images.
	Atlases bool
	// Paths as written in the file, relative to the list file's directory.
	Paths []string
}

// ParseList parses the lines of a texture set list file. Lines are trimmed and
// blank lines are ignored.
func ParseList(lines []string) List {
	var list List
	first := true
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if first {
			first = false
			if line == AtlasListHeader {
				list.Atlases = true
				continue
			}
		}
		list.Paths = append(list.Paths, line)
	}
	return list
}

// AtlasImagePath returns the image paired with an atlas map file: the map
// path with its extension replaced by AtlasImageExt.
func AtlasImagePath(mapPath string) string {
	return strings.TrimSuffix(mapPath, filepath.Ext(mapPath)) + AtlasImageExt
}
