package llm

import "strings"

// CleanJSONBlock strips the markdown code fence models often wrap a JSON
// reply in, with or without a language tag, and trims whitespace. Replies
// without a fence pass through untouched.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	body, fenced := strings.CutPrefix(text, "```")
	if !fenced {
		return text
	}

	// Drop a language tag such as "json" sitting between the fence and the
	// payload.
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		tag := body[:nl]
		if len(tag) < 20 && !strings.ContainsAny(tag, " {") {
			body = body[nl+1:]
		}
	} else {
		body = strings.TrimPrefix(body, "json")
	}

	if fence := strings.LastIndex(body, "```"); fence >= 0 {
		body = body[:fence]
	}
	return strings.TrimSpace(body)
}

// ExtractJSONObject narrows text to the outermost JSON object, dropping any
// prose the model wrapped around it. Returns "" when no object is present.
func ExtractJSONObject(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return text[start : end+1]
}
