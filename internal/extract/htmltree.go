package extract

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"

	"a11yscan/internal/model"
)

// voidElements never take children and never appear on the open stack.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// parseMarkup builds a DOM forest from raw markup using the x/net/html
// tokenizer and an explicit open-element stack. The standard html.Parse is
// deliberately not used: it synthesizes <html>/<head>/<body> wrappers,
// which would corrupt the structural completeness signals (isFullPage must
// be false for a bare fragment). lineOffset shifts reported lines for
// markup embedded inside a larger file (Vue template blocks).
func parseMarkup(file string, content []byte, lineOffset int) *model.Forest {
	f := model.NewForest()
	z := html.NewTokenizer(bytes.NewReader(content))

	line := 1 + lineOffset
	col := 1
	var stack []model.NodeID

	attach := func(id model.NodeID) {
		if len(stack) == 0 {
			f.AddRoot(id)
		} else {
			f.AppendChild(stack[len(stack)-1], id)
		}
	}

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		tokLine, tokCol := line, col

		// Advance the cursor over the raw bytes of this token before the
		// token is interpreted.
		raw := z.Raw()
		for _, b := range raw {
			if b == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			loc := model.SourceLocation{File: file, Line: tokLine, Column: tokCol}
			id := f.NewElement(tok.Data, loc)
			el := f.Get(id)
			for _, a := range tok.Attr {
				el.Attributes = append(el.Attributes, model.Attr{Name: a.Key, Value: a.Val})
			}
			attach(id)
			if tt == html.StartTagToken && !voidElements[tok.Data] {
				stack = append(stack, id)
			}

		case html.EndTagToken:
			tok := z.Token()
			// Pop to the nearest matching open tag; stray end tags are
			// ignored rather than failing the parse.
			for i := len(stack) - 1; i >= 0; i-- {
				if strings.EqualFold(f.Get(stack[i]).TagName, tok.Data) {
					stack = stack[:i]
					break
				}
			}

		case html.TextToken:
			text := string(z.Text())
			if strings.TrimSpace(text) == "" {
				continue
			}
			loc := model.SourceLocation{File: file, Line: tokLine, Column: tokCol}
			id := f.NewText(text, loc)
			attach(id)
			if len(stack) > 0 {
				parent := f.Get(stack[len(stack)-1])
				parent.TextContent += text
			}

		case html.CommentToken, html.DoctypeToken:
			// Structure only; nothing to record.
		}
	}

	return f
}

// blankRange replaces every byte inside [start,end) with spaces while
// preserving newlines, so embedded blocks keep their original line numbers
// when parsed in isolation.
func blankRange(content []byte, start, end int) []byte {
	out := append([]byte(nil), content...)
	for i := start; i < end && i < len(out); i++ {
		if out[i] != '\n' {
			out[i] = ' '
		}
	}
	return out
}

// findBlock locates the inner content of the first <tag ...>...</tag>
// block, returning the inner start/end byte offsets. ok is false when the
// block is absent or unterminated.
func findBlock(content []byte, tag string) (innerStart, innerEnd int, ok bool) {
	lower := bytes.ToLower(content)
	open := []byte("<" + tag)
	idx := bytes.Index(lower, open)
	if idx < 0 {
		return 0, 0, false
	}
	gt := bytes.IndexByte(lower[idx:], '>')
	if gt < 0 {
		return 0, 0, false
	}
	innerStart = idx + gt + 1
	closeTag := []byte("</" + tag)
	end := bytes.Index(lower[innerStart:], closeTag)
	if end < 0 {
		return 0, 0, false
	}
	return innerStart, innerStart + end, true
}

// lineOffsetAt counts newlines before a byte offset.
func lineOffsetAt(content []byte, offset int) int {
	if offset > len(content) {
		offset = len(content)
	}
	return bytes.Count(content[:offset], []byte("\n"))
}
