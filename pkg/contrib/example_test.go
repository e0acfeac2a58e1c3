package contrib_test

import (
	"fmt"

	"github.com/dhvcc/github-contribution-treemap-generator/pkg/contrib"
)

func ExampleAggregate() {
	repos := contrib.Aggregate([]contrib.RawRepo{
		{NameWithOwner: "golang/go", Stars: 120000, Contribs: 1},
		{NameWithOwner: "charmbracelet/log", Stars: 2500, Contribs: 1},
		{NameWithOwner: "golang/go", Stars: 120000, Contribs: 1},
	})
	for _, r := range repos {
		fmt.Println(r.ID, r.Contribs)
	}
	// Output:
	// golang/go 2
	// charmbracelet/log 1
}
