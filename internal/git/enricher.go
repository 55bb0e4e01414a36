package git

import (
	"context"
	"crypto/md5"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// CommitSummary is the descriptive metadata resolved for one entry's ref.
type CommitSummary struct {
	Ref          string `json:"ref"`
	Author       string `json:"author"`
	Email        string `json:"email"`
	CommitDate   string `json:"commitDate"`
	RelativeDate string `json:"relativeDate"`
	Message      string `json:"messageText"`
	AvatarURL    string `json:"avatarUrl"`
	DetailToken  string `json:"detailCommandToken"`
}

// Enricher resolves a commit reference token into its metadata. A nil summary
// with a nil error means the ref could not be resolved; the caller omits the
// entry from the enriched model rather than inventing a placeholder.
type Enricher interface {
	Resolve(ctx context.Context, ref string) (*CommitSummary, error)
}

// logFormat yields NUL-separated fields: full hash, author name, author
// email, committer date (ISO), committer date (unix), raw body.
const logFormat = "%H%x00%an%x00%ae%x00%cI%x00%ct%x00%B"

// CLIEnricher resolves refs by shelling out to git.
type CLIEnricher struct {
	Runner  CommandRunner
	Avatars bool
}

func (e *CLIEnricher) Resolve(ctx context.Context, ref string) (*CommitSummary, error) {
	output, err := e.Runner.RunCommandContext(ctx, []string{"log", "-1", "--format=" + logFormat, ref, "--"})
	if err != nil {
		// Unresolvable refs are expected while the user is editing; the
		// entry is simply left out of the enriched model.
		return nil, nil
	}
	summary, ok := parseCommitOutput(ref, string(output), time.Now())
	if !ok {
		return nil, nil
	}
	if e.Avatars {
		summary.AvatarURL = AvatarURL(summary.Email)
	}
	return summary, nil
}

// CurrentBranch returns the symbolic name of HEAD, or "" when detached or
// when the lookup fails.
func CurrentBranch(ctx context.Context, runner CommandRunner) string {
	output, err := runner.RunCommandContext(ctx, []string{"rev-parse", "--abbrev-ref", "HEAD"})
	if err != nil {
		return ""
	}
	branch := strings.TrimSpace(string(output))
	if branch == "HEAD" {
		return ""
	}
	return branch
}

func parseCommitOutput(ref, output string, now time.Time) (*CommitSummary, bool) {
	fields := strings.SplitN(output, "\x00", 6)
	if len(fields) != 6 {
		return nil, false
	}
	summary := &CommitSummary{
		Ref:         strings.Clone(ref),
		Author:      fields[1],
		Email:       fields[2],
		CommitDate:  fields[3],
		Message:     strings.TrimRight(fields[5], "\n"),
		DetailToken: "show:" + fields[0],
	}
	if seconds, err := strconv.ParseInt(fields[4], 10, 64); err == nil {
		summary.RelativeDate = humanize.RelTime(time.Unix(seconds, 0), now, "ago", "from now")
	}
	return summary, true
}

// AvatarURL builds a gravatar URL for the given author email.
func AvatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=64&d=robohash", md5.Sum([]byte(normalized)))
}
