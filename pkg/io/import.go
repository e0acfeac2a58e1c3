package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dhvcc/github-contribution-treemap-generator/pkg/contrib"
)

// List is a user's repositories with their merged pull request counts.
type List struct {
	User  string
	Repos []contrib.Repo
}

// ReadJSON decodes a repository list from r.
//
// ReadJSON returns an error if the JSON is malformed, has unknown fields,
// or an entry names no repository. Counts below zero are clamped to zero.
// The repos are merged and ordered by [contrib.Aggregate]; an empty list
// yields a non-nil empty slice. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*List, error) {
	var data document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	for i, raw := range data.Repos {
		if strings.TrimSpace(raw.NameWithOwner) == "" && (strings.TrimSpace(raw.Owner) == "" || strings.TrimSpace(raw.Name) == "") {
			return nil, fmt.Errorf("repo %d: missing name_with_owner or owner and name", i)
		}
	}

	repos := contrib.Aggregate(data.Repos)
	if repos == nil {
		repos = []contrib.Repo{}
	}
	return &List{User: strings.TrimSpace(data.User), Repos: repos}, nil
}

// ImportJSON reads a repository list from the JSON file at path.
// Errors from [ReadJSON] are wrapped with the path.
func ImportJSON(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	l, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}
