package photos

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Manohar0077/guess-that-scene/internal"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Catalog lists the guessable photos from a directory. The filename without
// its extension is the answer: photos/elvis.jpg must be guessed as "elvis".
type Catalog struct {
	dir string
}

func NewCatalog(dir string) *Catalog {
	return &Catalog{dir: dir}
}

// Photos rescans the directory on every call, so photos dropped in while the
// server is running are picked up by the next room creation.
func (c *Catalog) Photos() []internal.Photo {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			if mkErr := os.MkdirAll(c.dir, 0o755); mkErr != nil {
				log.Printf("[Catalog] Unable to create photos directory %s: %v", c.dir, mkErr)
			} else {
				log.Printf("[Catalog] Created photos directory: %s", c.dir)
			}
			return nil
		}
		log.Printf("[Catalog] Unable to read photos directory %s: %v", c.dir, err)
		return nil
	}

	photos := make([]internal.Photo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if !imageExtensions[ext] {
			continue
		}
		photos = append(photos, internal.Photo{
			Src:    "/photos/" + name,
			Answer: strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name))),
		})
	}

	return photos
}
