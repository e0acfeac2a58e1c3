// Package io provides JSON import and export for repository lists.
//
// A saved list lets a treemap be re-rendered without talking to GitHub,
// or be built from contribution data gathered elsewhere.
//
// # JSON Format
//
//	{
//	  "user": "octocat",
//	  "repos": [
//	    {"name_with_owner": "golang/go", "stars": 120000, "contribs": 12},
//	    {"owner": "spf13", "name": "cobra", "stars": 38000, "contribs": 3}
//	  ]
//	}
//
// "user" is optional. Each entry needs "name_with_owner" or both "owner"
// and "name"; "stars", "contribs", "private" and "fork" are optional.
// Entries naming the same repository (case-insensitive) are merged the way
// [contrib.Aggregate] merges pull requests.
//
// # Import
//
// Use [ImportJSON] to read a list from a file path, or [ReadJSON] to read
// from any io.Reader. Unknown fields are rejected.
//
// # Export
//
// Use [ExportJSON] to write a list to a file, or [WriteJSON] to write to any
// io.Writer. Exported lists re-import to the same repositories.
//
// For the drawn cells with their geometry and colors, use the JSON sink in
// [sink.RenderJSON] instead.
//
// [contrib.Aggregate]: github.com/dhvcc/github-contribution-treemap-generator/pkg/contrib.Aggregate
// [sink.RenderJSON]: github.com/dhvcc/github-contribution-treemap-generator/pkg/render/treemap/sink.RenderJSON
package io
