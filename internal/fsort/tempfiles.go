package fsort

import (
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

const tempNameLen = 5
const tempNameAlphabet = "abcdefghijklmnopqrstuvwxyz"

func init() {
	rand.Seed(time.Now().UnixNano())
}

// nextTempFile picks a fresh path under dir, retrying on collision, the
// way run files get their 5-character lowercase suffixes.
func nextTempFile(dir string) (string, error) {
	for {
		name := make([]byte, tempNameLen)
		for i := range name {
			name[i] = tempNameAlphabet[rand.Intn(len(tempNameAlphabet))]
		}
		path := filepath.Join(dir, string(name))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
	}
}
