package model

// FileContent is the subset of the GitHub contents API response the gateway reads.
// Content is a pointer so an absent field can be told apart from an empty file.
// Encoding is "base64" for regular files and "none" when GitHub omits the body.
type FileContent struct {
	Content  *string `json:"content"`
	Encoding string  `json:"encoding,omitempty"`
}

// GitCommit is the subset of GET /repos/{owner}/{repo}/git/commits/{sha}
type GitCommit struct {
	SHA  string      `json:"sha"`
	Tree *GitTreeRef `json:"tree"`
}

// GitTreeRef points at the root tree of a commit
type GitTreeRef struct {
	SHA string `json:"sha"`
	URL string `json:"url"`
}
