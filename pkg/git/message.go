package git

import (
	"strings"
)

// Footer marks commits created by abook.
const Footer = "Changed-by: abook"

// DefaultScope is the conventional-commit scope used for book saves.
const DefaultScope = "contacts"

// CommitType constants for semantic commits
const (
	CommitTypeFeat  = "feat"
	CommitTypeFix   = "fix"
	CommitTypeDocs  = "docs"
	CommitTypeChore = "chore"
)

// FormatCommitMessage builds a Conventional Commit message:
//
//	<type>(<scope>): <subject>
//
//	<body>
//
//	Changed-by: abook
func FormatCommitMessage(ctype, scope, subject, body string) string {
	if ctype == "" {
		ctype = CommitTypeChore
	}

	var sb strings.Builder
	sb.WriteString(ctype)
	if scope != "" {
		sb.WriteString("(" + scope + ")")
	}
	sb.WriteString(": " + subject)

	if body = strings.TrimSpace(body); body != "" {
		sb.WriteString("\n\n" + body)
	}

	sb.WriteString("\n\n" + Footer)
	return sb.String()
}

// AppendFooter appends the footer to a free-form message unless present.
func AppendFooter(msg string) string {
	if strings.Contains(msg, Footer) {
		return msg
	}
	return strings.TrimRight(msg, "\n") + "\n\n" + Footer
}

// SaveMessage is the commit message used when a save carries no explicit reason.
func SaveMessage(records int) string {
	subject := "update address book"
	if records == 0 {
		subject = "clear address book"
	}
	return FormatCommitMessage(CommitTypeDocs, DefaultScope, subject, "")
}
