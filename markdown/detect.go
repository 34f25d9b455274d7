package markdown

import "regexp"

// Pattern matches any text that Slack would process as markdown:
// mention sigils, paired bold/italic/strike/emoji/preformat markers,
// newlines, block quotes and list bullets.
var Pattern = regexp.MustCompile("(@|#|!|\\*.+\\*|~.+~|_.+_|:.+:|-.+-|\n|`.+`|>{3}|•|%E2%80%A2)")

// ContainsMarkdown reports whether text contains any Slack markdown.
// Single markers (one asterisk, one underscore) are not markdown, pairs are.
func ContainsMarkdown(text string) bool {
	return text != "" && Pattern.MatchString(text)
}
