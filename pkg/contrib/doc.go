// Package contrib turns raw pull request data into the repository records
// that are laid out on the treemap.
//
// The flow is:
//
//	raw := []contrib.RawRepo{...}       // one per merged pull request
//	repos := contrib.Aggregate(raw)     // one per repository, Contribs summed
//	repos = contrib.Filter(repos, opts) // private, own, excluded, min stars, top N
//	items := contrib.Items(repos)       // input for layout.Compute
//
// [Normalize] is the single place where loosely typed API values become a
// fully typed [Repo]: negative counts become zero and a missing ID is built
// from owner and name. Nothing downstream needs to coerce values again.
package contrib
