package workflow

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"

	lifeline "github.com/lifelinehq/lifeline"
)

const frontMatterDelim = "+++"

// ParseRequest builds completion parameters from a request file. A leading TOML
// block fenced by "+++" lines may set model, temperature and system; the rest of
// the file is the prompt. Without a complete fence the whole text is the prompt.
func ParseRequest(text string) (lifeline.Params, error) {
	meta, body, ok := splitFrontMatter(text)
	if !ok {
		return lifeline.Params{Prompt: text}, nil
	}

	var p lifeline.Params
	md, err := toml.Decode(meta, &p)
	if err != nil {
		return lifeline.Params{}, fmt.Errorf("invalid front matter: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		slog.Warn("ignoring unknown front matter keys", "keys", strings.Join(keys, ", "))
	}
	p.Prompt = body
	return p, nil
}

// splitFrontMatter returns the front matter and the remaining body.
func splitFrontMatter(text string) (meta, body string, ok bool) {
	first, rest, found := strings.Cut(text, "\n")
	if !found || strings.TrimRight(first, "\r") != frontMatterDelim {
		return "", text, false
	}
	var sb strings.Builder
	for {
		line, next, more := strings.Cut(rest, "\n")
		if strings.TrimRight(line, "\r") == frontMatterDelim {
			if !more {
				next = ""
			}
			return sb.String(), strings.TrimLeft(next, "\r\n"), true
		}
		if !more {
			return "", text, false
		}
		sb.WriteString(line)
		sb.WriteString("\n")
		rest = next
	}
}
