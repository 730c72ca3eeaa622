// Package event reads the pull request event that triggered the run and decides
// which version labels, if any, should be backported.
package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/danielolaszy/backport/pkg/models"
	"github.com/google/go-github/v41/github"
)

const (
	ActionLabeled = "labeled"
	ActionClosed  = "closed"
)

// ErrNotPullRequest is returned for payloads that carry no pull request.
var ErrNotPullRequest = errors.New("this action can only be run on pull request events")

// versionLabelPattern matches labels like "backport-v0.22" or "backport-v4.2".
var versionLabelPattern = regexp.MustCompile(`^backport-v([\d.]+)$`)

// Load reads a GitHub webhook payload from path.
func Load(path string) (models.Event, error) {
	if path == "" {
		return models.Event{}, fmt.Errorf("event path is empty, set GITHUB_EVENT_PATH or --event-path")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.Event{}, fmt.Errorf("failed to read event payload: %w", err)
	}
	return Parse(data)
}

// Parse decodes a pull_request webhook payload.
func Parse(data []byte) (models.Event, error) {
	var payload github.PullRequestEvent
	if err := json.Unmarshal(data, &payload); err != nil {
		return models.Event{}, fmt.Errorf("failed to decode event payload: %w", err)
	}
	if payload.PullRequest == nil {
		return models.Event{}, ErrNotPullRequest
	}

	pr := payload.PullRequest
	labels := make([]string, 0, len(pr.Labels))
	for _, label := range pr.Labels {
		labels = append(labels, label.GetName())
	}

	return models.Event{
		Action: payload.GetAction(),
		PullRequest: models.PullRequest{
			Number:  pr.GetNumber(),
			Merged:  pr.GetMerged(),
			HeadSHA: pr.GetHead().GetSHA(),
			Labels:  labels,
		},
		Label:         payload.GetLabel().GetName(),
		DefaultBranch: payload.GetRepo().GetDefaultBranch(),
	}, nil
}

// VersionFromLabel returns the version encoded in a backport label.
func VersionFromLabel(label string) (string, bool) {
	match := versionLabelPattern.FindStringSubmatch(label)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// Decision is the outcome of classifying an event.
type Decision struct {
	// Versions to backport, in label order
	Versions []string

	// Skip is set when there is nothing to do; Reason says why
	Skip   bool
	Reason string
}

func skip(format string, args ...any) Decision {
	return Decision{Skip: true, Reason: fmt.Sprintf(format, args...)}
}

// Classify decides which versions an event asks to backport.
//
// A "labeled" event only ever yields the label that was just added, even when the
// pull request already carries other backport labels. Those were handled by their
// own events, and processing them again would open duplicate pull requests.
// A "closed" event yields every backport label on the merged pull request.
func Classify(ev models.Event) Decision {
	var versions []string

	switch ev.Action {
	case ActionLabeled:
		version, ok := VersionFromLabel(ev.Label)
		if !ok {
			return skip("Added label %q is not a backport label, skipping", ev.Label)
		}
		if !ev.PullRequest.Merged {
			return skip("PR is labeled but not merged yet, skipping backport until merge")
		}
		versions = []string{version}

	case ActionClosed:
		if !ev.PullRequest.Merged {
			return skip("PR closed without merging, skipping")
		}
		for _, label := range ev.PullRequest.Labels {
			if version, ok := VersionFromLabel(label); ok {
				versions = append(versions, version)
			}
		}

	default:
		return skip("Action %q is not handled, skipping", ev.Action)
	}

	if len(versions) == 0 {
		return skip("No version labels found, skipping backport")
	}
	return Decision{Versions: versions}
}
