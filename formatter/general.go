package formatter

// matchTemplate lays out one match: header, source lines, underline and message.
const matchTemplate = `{{.Header}}{{.Snippet}}{{.Underline}}
`
