package helpers

import "os"

// RecreateTempDir force-recreates the given directory: removed if
// present, then created empty. fsort uses this for its fsort_tmp
// working directory at startup (spec: temp dir is force-recreated at
// startup and removed at exit).
func RecreateTempDir(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return err
	}
	return os.MkdirAll(path, os.ModePerm)
}
