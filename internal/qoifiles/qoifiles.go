// Package qoifiles resolves the viewer's command-line inputs into the list
// of files to cycle through and the index to start at.
package qoifiles

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/qoiview/qoiview/qoi"
)

// Inputs is a resolved viewing set.
type Inputs struct {
	Files []string
	Start int
}

// IsQoi reports whether path is a regular file with a valid qoi header.
func IsQoi(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	_, err = qoi.DecodeHeader(f)
	return err == nil
}

// Gather resolves args the way the viewer treats its positional arguments:
// a single directory yields every qoi file in it; a single qoi file yields
// its sibling qoi files with Start at that file; several arguments yield
// whichever of them are qoi files.
func Gather(args []string) (Inputs, error) {
	if len(args) == 1 {
		return gatherOne(args[0])
	}

	var in Inputs
	for _, arg := range args {
		if IsQoi(arg) {
			in.Files = append(in.Files, arg)
		}
	}
	if len(in.Files) == 0 {
		return Inputs{}, fmt.Errorf("no valid qoi files found in input arguments")
	}
	return in, nil
}

func gatherOne(input string) (Inputs, error) {
	fi, err := os.Stat(input)
	if err != nil {
		return Inputs{}, fmt.Errorf("no such file or directory %q", input)
	}

	switch {
	case fi.IsDir():
		files, err := qoiFilesIn(input)
		if err != nil {
			return Inputs{}, err
		}
		if len(files) == 0 {
			return Inputs{}, fmt.Errorf("no valid qoi files found in %q directory", input)
		}
		return Inputs{Files: files}, nil

	case fi.Mode().IsRegular():
		if !IsQoi(input) {
			return Inputs{}, fmt.Errorf("not a valid qoi file %q", input)
		}
		abs, err := filepath.Abs(input)
		if err != nil {
			return Inputs{}, err
		}
		files, err := qoiFilesIn(filepath.Dir(abs))
		if err != nil {
			return Inputs{}, err
		}
		start := 0
		for i, f := range files {
			if f == abs {
				start = i
				break
			}
		}
		return Inputs{Files: files, Start: start}, nil

	default:
		return Inputs{}, fmt.Errorf("not a regular file or directory %q", input)
	}
}

// qoiFilesIn lists the qoi files directly inside dir, in name order.
func qoiFilesIn(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if IsQoi(path) {
			files = append(files, path)
		}
	}
	return files, nil
}
