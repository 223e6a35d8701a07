package analyzer

import (
	"fmt"
	"strings"

	"comment-insights-service/model"
)

// DefaultMaxChars bounds the comment block interpolated into the prompt.
const DefaultMaxChars = 30000

// Column names accepted as the free-text source when "comment" is absent.
var fallbackColumns = map[string]struct{}{
	"text":    {},
	"content": {},
	"message": {},
}

const promptTemplate = `You are an assistant that analyzes YouTube viewer comments, qualitatively and quantitatively, in a concise and structured way.

[User Question]
%s

[Viewer Comments]
%s

[Guidelines]
1) Answer the question directly, split into clearly separated sections.
2) Quote short, anonymized example comments that support each conclusion.
3) When sentiment is mixed (positive / negative / neutral), report approximate percentages.
4) If there are actionable suggestions, rank them by priority (1-3).`

const truncationNote = "[Note] The comment text was truncated to fit the model limit and keep the analysis stable."

// BuildPrompt assembles the generation prompt from the session table.
func BuildPrompt(question string, table model.CommentTable, maxChars int) string {
	return BuildPromptFromRows(question, table.Columns(), table.Rows(), maxChars)
}

// BuildPromptFromRows builds the prompt from arbitrary tabular data. The
// comment block is the "comment" column when present, else the first
// column named text/content/message (case-insensitive), else every cell
// of every row joined with single spaces. Blocks longer than maxChars are
// cut to exactly maxChars characters and a disclosure note is appended.
func BuildPromptFromRows(question string, columns []string, rows [][]string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	values := make([]string, 0, len(rows))
	if idx := sourceColumn(columns); idx >= 0 {
		for _, row := range rows {
			if idx < len(row) {
				values = append(values, row[idx])
			}
		}
	} else {
		for _, row := range rows {
			values = append(values, strings.Join(row, " "))
		}
	}

	commentsText := strings.Join(values, "\n")
	truncated := false
	if runes := []rune(commentsText); len(runes) > maxChars {
		commentsText = string(runes[:maxChars])
		truncated = true
	}

	prompt := fmt.Sprintf(promptTemplate, question, commentsText)
	if truncated {
		prompt += "\n\n" + truncationNote
	}
	return prompt
}

// sourceColumn returns the index of the free-text column, or -1 when the
// whole row should be concatenated instead.
func sourceColumn(columns []string) int {
	for i, c := range columns {
		if c == "comment" {
			return i
		}
	}
	for i, c := range columns {
		if _, ok := fallbackColumns[strings.ToLower(c)]; ok {
			return i
		}
	}
	return -1
}

// Suggestions returns the canned questions offered by the UI.
func Suggestions() []model.Suggestion {
	return []model.Suggestion{
		{
			Label:    "How do viewers feel? (Sentiment)",
			Question: "Analyze how viewers feel about this video overall (positive / negative / neutral) and quote supporting comments.",
		},
		{
			Label:    "What do people talk about most?",
			Question: "Across all comments, which topics do viewers bring up most often, positively or negatively?",
		},
		{
			Label:    "Suggestions / criticism",
			Question: "Summarize the suggestions and criticism viewers have about this video.",
		},
	}
}
