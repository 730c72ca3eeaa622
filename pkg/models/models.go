// Package models defines data structures shared across the application.
package models

// Event represents the pull request event that triggered a backport run.
type Event struct {
	// Action is the event subtype (e.g., "labeled", "closed")
	Action string

	// PullRequest is the pull request the event refers to
	PullRequest PullRequest

	// Label is the name of the label just added; only set for "labeled" events
	Label string

	// DefaultBranch is the repository's default branch as reported in the payload
	DefaultBranch string
}

// PullRequest represents the originating pull request with its essential fields
type PullRequest struct {
	// Number is the pull request number in GitHub (e.g., 123)
	Number int

	// Merged indicates whether the pull request has been merged
	Merged bool

	// HeadSHA is the head commit of the pull request, used to read file contents
	HeadSHA string

	// Labels is a slice of label names attached to the pull request
	Labels []string
}

// ChangedFile represents a file touched by a pull request.
type ChangedFile struct {
	// Filename is the repository-relative path of the file
	Filename string

	// Status is the change status reported by GitHub (added, modified, removed, renamed, ...)
	Status string
}

// PullRequestSummary is the subset of a listed pull request used for duplicate detection.
type PullRequestSummary struct {
	Number int
	Title  string
	Body   string
	State  string
}

// Target is one resolved backport destination for a single version label.
type Target struct {
	// Folder is the top-level documentation folder (e.g., "vcluster")
	Folder string

	// Version is the version taken from the label (e.g., "0.24")
	Version string

	// VersionedFolder is the destination folder (e.g., "vcluster_versioned_docs/version-0.24.0")
	VersionedFolder string

	// Branch is the fresh branch the backport is committed to
	Branch string
}

// Stats holds the counters accumulated while copying files for one target.
type Stats struct {
	Copied  int
	Skipped int
	Errors  int
}
