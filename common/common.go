package common

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// GetExeDir returns the directory holding the running executable.
func GetExeDir() (string, error) {
	ex, err := os.Executable()
	if err != nil {
		return "", err
	}
	dir, err := filepath.Abs(filepath.Dir(ex))
	if err != nil {
		return "", err
	}
	return dir, nil
}

// InExeDir joins name to the executable directory.
func InExeDir(name string) (string, error) {
	dir, err := GetExeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// FileName escapes a job name so it can be used as a single file name.
// Folder separators are escaped too, as are the "." and ".." names.
func FileName(jobName string) string {
	if jobName == "." || jobName == ".." {
		return strings.ReplaceAll(jobName, ".", "%2E")
	}
	return url.PathEscape(jobName)
}

// JobName reverses FileName.
func JobName(fileName string) (string, error) {
	return url.PathUnescape(fileName)
}
