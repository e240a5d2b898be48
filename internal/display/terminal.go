// Package display provides terminal output formatting for bskytldr.
package display

import (
	"fmt"
	"strings"
	"time"

	"bskytldr/internal/bluesky"
	"bskytldr/internal/feed"
)

const indent = "  "

// TerminalFormatter formats aggregate results for terminal display.
// Timestamps are rendered in the hour offset the day was computed for.
type TerminalFormatter struct {
	location *time.Location
}

// NewTerminalFormatter creates a formatter rendering times at the given UTC
// hour offset.
func NewTerminalFormatter(offsetHours int) *TerminalFormatter {
	name := "UTC"
	if offsetHours != 0 {
		name = fmt.Sprintf("UTC%+d", offsetHours)
	}
	return &TerminalFormatter{
		location: time.FixedZone(name, offsetHours*3600),
	}
}

// FormatResult renders every author's daily feed in discovery order.
func (f *TerminalFormatter) FormatResult(result *feed.Result) string {
	if result == nil || len(result.Order) == 0 {
		return "No follows found.\n"
	}

	var sections []string
	for _, did := range result.Order {
		sections = append(sections, f.FormatAuthor(result.Follows[did]))
	}
	return strings.Join(sections, "\n")
}

// FormatAuthor renders one author's header and posts.
func (f *TerminalFormatter) FormatAuthor(author feed.AuthorFeed) string {
	lines := []string{fmt.Sprintf("@%s (%s)", author.Handle, pluralize(len(author.Posts), "post"))}
	for _, post := range author.Posts {
		lines = append(lines, f.FormatPost(post))
	}
	return strings.Join(lines, "\n") + "\n"
}

// FormatPost renders a single post with its links and web URL.
func (f *TerminalFormatter) FormatPost(post feed.Post) string {
	marker := ""
	if post.IsRepost {
		marker = " [repost]"
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("%s%s%s  %s",
		indent,
		post.CreatedAt.In(f.location).Format("15:04"),
		marker,
		f.TruncateText(oneLine(post.Content), 100)))

	for _, link := range post.Links {
		lines = append(lines, indent+indent+link)
	}
	if url, ok := bluesky.PostURL(post.URI); ok {
		lines = append(lines, indent+indent+url)
	}
	return strings.Join(lines, "\n")
}

// TruncateText truncates text to maxLen, adding "..." if truncated.
func (f *TerminalFormatter) TruncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return "..."
	}
	return text[:maxLen-3] + "..."
}

// oneLine collapses whitespace runs and newlines so a post occupies a single
// terminal line.
func oneLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// pluralize returns "1 unit" or "N units" based on count.
func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
