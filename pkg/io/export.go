package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/samber/lo"

	"github.com/dhvcc/github-contribution-treemap-generator/pkg/contrib"
)

type document struct {
	User  string            `json:"user,omitempty"`
	Repos []contrib.RawRepo `json:"repos"`
}

// WriteJSON encodes l as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(l *List, w io.Writer) error {
	out := document{
		User: l.User,
		Repos: lo.Map(l.Repos, func(r contrib.Repo, _ int) contrib.RawRepo {
			return contrib.RawRepo{
				NameWithOwner: r.ID,
				Name:          r.Name,
				Owner:         r.Owner,
				Stars:         int(r.Stars),
				Contribs:      int(r.Contribs),
				Private:       r.Private,
				Fork:          r.Fork,
			}
		}),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes l to a JSON file at path.
func ExportJSON(l *List, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(l, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
