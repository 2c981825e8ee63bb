package intake

import (
	"strings"

	"golang.org/x/net/html"
)

// blockTags 结束时插入换行，保留段落结构。
var blockTags = map[string]struct{}{
	"p": {}, "div": {}, "br": {}, "li": {}, "ul": {}, "ol": {},
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "tr": {}, "blockquote": {},
}

// skipTags 的内容整体丢弃。
var skipTags = map[string]struct{}{
	"script": {}, "style": {}, "head": {}, "title": {},
}

// PlainText 去掉富文本备注中的标签，只保留可见文本。
func PlainText(input string) string {
	if !strings.ContainsAny(input, "<&") {
		return normalizeLines(input)
	}

	z := html.NewTokenizer(strings.NewReader(input))
	var b strings.Builder
	skipDepth := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return normalizeLines(b.String())
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken:
			name, _ := z.TagName()
			if _, ok := skipTags[string(name)]; ok {
				skipDepth++
			}
			if string(name) == "br" {
				b.WriteByte('\n')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if _, ok := skipTags[tag]; ok && skipDepth > 0 {
				skipDepth--
			}
			if _, ok := blockTags[tag]; ok {
				b.WriteByte('\n')
			}
		case html.SelfClosingTagToken:
			name, _ := z.TagName()
			if _, ok := blockTags[string(name)]; ok {
				b.WriteByte('\n')
			}
		}
	}
}

func normalizeLines(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
