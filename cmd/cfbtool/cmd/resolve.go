package cmd

import (
	"fmt"
	"strings"

	"github.com/go-cfb/cfb"
)

// resolvePath walks a "/"-separated path of entry names from the root,
// case-insensitively, per spec.md §4.7's FindStream lookup semantics
// generalized to nested storages.
func resolvePath(rd *cfb.Reader, path string) (*cfb.Entry, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return rd.Root(), nil
	}

	cur := rd.Root()
	for _, part := range strings.Split(path, "/") {
		var next *cfb.Entry
		for _, c := range cur.Children() {
			if strings.EqualFold(c.Name, part) {
				next = c
				break
			}
		}
		if next == nil {
			return nil, fmt.Errorf("no such entry: %q", path)
		}
		cur = next
	}
	return cur, nil
}
