package github

import "time"

// PullRequest is a merged pull request authored by the user.
type PullRequest struct {
	Number     int        `json:"number"`
	Title      string     `json:"title"`
	URL        string     `json:"url"`
	MergedAt   time.Time  `json:"merged_at"`
	Repository Repository `json:"repository"`
}

// Repository is the repository a pull request was merged into.
type Repository struct {
	NameWithOwner string `json:"name_with_owner"`
	Name          string `json:"name"`
	Owner         string `json:"owner"`
	Stars         int    `json:"stars"`
	IsPrivate     bool   `json:"is_private"`
	IsFork        bool   `json:"is_fork"`
}

// graphQLRequest is the body of a GraphQL POST.
type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphQLError is one entry of the "errors" array.
type graphQLError struct {
	Type    string   `json:"type"`
	Message string   `json:"message"`
	Path    []string `json:"path,omitempty"`
}

type searchResponse struct {
	Data struct {
		Search struct {
			IssueCount int `json:"issueCount"`
			PageInfo   struct {
				HasNextPage bool   `json:"hasNextPage"`
				EndCursor   string `json:"endCursor"`
			} `json:"pageInfo"`
			Nodes []prNode `json:"nodes"`
		} `json:"search"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// prNode is a search result. Nodes that are not pull requests decode with
// an empty repository.
type prNode struct {
	Number     int       `json:"number"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	MergedAt   time.Time `json:"mergedAt"`
	Repository *struct {
		NameWithOwner string `json:"nameWithOwner"`
		Name          string `json:"name"`
		Owner         struct {
			Login string `json:"login"`
		} `json:"owner"`
		StargazerCount int  `json:"stargazerCount"`
		IsPrivate      bool `json:"isPrivate"`
		IsFork         bool `json:"isFork"`
	} `json:"repository"`
}

type viewerResponse struct {
	Data struct {
		Viewer struct {
			Login string `json:"login"`
		} `json:"viewer"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}
