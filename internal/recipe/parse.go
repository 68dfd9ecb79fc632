package recipe

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
)

// Parse reads a recipe in the text form from either provided data or a file
// path. If data is non-nil, it is used directly and file is only recorded as
// the origin. Otherwise the file is read from disk.
//
// The text form is made of sections:
//
//	[requires]
//	fmt/11.1.3
//
//	[generators]
//	CMakeToolchain
//
//	[settings]    # optional; empty means all axes
//	[options]     # optional; key=value lines
//	[layout]      # optional; single layout name
//
// Lines starting with '#' or ';' are comments.
func Parse(file string, data []byte) (*Recipe, error) {
	if data == nil {
		var err error
		data, err = os.ReadFile(file)
		if err != nil {
			return nil, err
		}
	}

	r := &Recipe{Path: file}
	section := ""
	sc := bufio.NewScanner(bytes.NewReader(data))
	lineno := 0

	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(strings.TrimSuffix(sc.Text(), "\r"))
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return nil, fmt.Errorf("%s:%d: malformed section header %q", origin(file), lineno, line)
			}
			section = strings.TrimSpace(line[1 : len(line)-1])
			switch section {
			case "requires", "generators", "settings", "options", "layout":
			default:
				return nil, fmt.Errorf("%s:%d: unknown section [%s]", origin(file), lineno, section)
			}
			continue
		}

		switch section {
		case "":
			return nil, fmt.Errorf("%s:%d: entry %q before any section", origin(file), lineno, line)
		case "requires":
			req, err := parsePin(line)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", origin(file), lineno, err)
			}
			r.Requires = append(r.Requires, req)
		case "generators":
			r.Generators = append(r.Generators, line)
		case "settings":
			r.Settings = append(r.Settings, line)
		case "options":
			key, value, ok := strings.Cut(line, "=")
			if !ok {
				return nil, fmt.Errorf("%s:%d: option %q is not key=value", origin(file), lineno, line)
			}
			if r.Options == nil {
				r.Options = make(map[string]string)
			}
			r.Options[strings.TrimSpace(key)] = strings.TrimSpace(value)
		case "layout":
			if r.Layout != "" {
				return nil, fmt.Errorf("%s:%d: layout declared twice", origin(file), lineno)
			}
			r.Layout = line
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return r, nil
}

// parsePin splits a "name/version" pin.
func parsePin(s string) (Requirement, error) {
	name, version, ok := strings.Cut(s, "/")
	if !ok || name == "" || version == "" || strings.Contains(version, "/") {
		return Requirement{}, fmt.Errorf("requirement %q is not name/version", s)
	}
	return Requirement{Name: name, Version: version}, nil
}

func origin(file string) string {
	if file == "" {
		return "recipe"
	}
	return file
}
