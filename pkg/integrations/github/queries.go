package github

const searchQuery = `query($q: String!, $first: Int!, $after: String) {
  search(query: $q, type: ISSUE, first: $first, after: $after) {
    issueCount
    pageInfo { hasNextPage endCursor }
    nodes {
      ... on PullRequest {
        number
        title
        url
        mergedAt
        repository {
          nameWithOwner
          name
          owner { login }
          stargazerCount
          isPrivate
          isFork
        }
      }
    }
  }
}`

const viewerQuery = `query { viewer { login } }`
