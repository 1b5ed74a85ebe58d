// frontmatter.go parses and composes the YAML-style metadata block at the
// top of a note.
//
// Real-world frontmatter is frequently not valid YAML (unquoted colons,
// stray tabs, half-edited lines), so parsing is a lenient line scan over the
// flat key/value subset flint writes rather than a strict YAML decode. A
// malformed block degrades to empty metadata instead of failing the load.
package note

import "strings"

// Metadata is the identifying frontmatter of a note.
type Metadata struct {
	ID    string
	Title string
	Type  string
	Tags  []string
}

const frontmatterDelim = "---"

// ParseFrontmatter splits content into its metadata block and body. Content
// without a leading frontmatter block comes back verbatim with empty
// metadata.
func ParseFrontmatter(content string) (Metadata, string) {
	trimmed := strings.TrimPrefix(content, "\uFEFF")
	if !strings.HasPrefix(trimmed, frontmatterDelim+"\n") && !strings.HasPrefix(trimmed, frontmatterDelim+"\r\n") {
		return Metadata{}, content
	}

	lines := strings.Split(trimmed, "\n")
	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontmatterDelim {
			end = i
			break
		}
	}
	if end <= 0 {
		return Metadata{}, content
	}

	meta := parseMetadataLines(lines[1:end])
	body := strings.Join(lines[end+1:], "\n")
	return meta, body
}

func parseMetadataLines(lines []string) Metadata {
	meta := Metadata{}
	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		i++
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])
		switch key {
		case "id":
			meta.ID = trimQuoted(value)
		case "title":
			meta.Title = trimQuoted(value)
		case "type":
			meta.Type = strings.ToLower(trimQuoted(value))
		case "tags":
			if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
				value = strings.TrimPrefix(strings.TrimSuffix(value, "]"), "[")
				meta.Tags = normalizeTagList(strings.Split(value, ","))
				continue
			}
			if value != "" {
				meta.Tags = normalizeTagList(strings.Split(value, ","))
				continue
			}
			bullets := make([]string, 0, 4)
			for i < len(lines) {
				next := strings.TrimSpace(lines[i])
				if !strings.HasPrefix(next, "-") {
					break
				}
				bullets = append(bullets, strings.TrimSpace(strings.TrimPrefix(next, "-")))
				i++
			}
			meta.Tags = normalizeTagList(bullets)
		}
	}
	return meta
}

// ComposeFrontmatter renders metadata back into the block ParseFrontmatter
// reads. Empty fields are omitted; an entirely empty Metadata produces an
// empty string so new plain notes carry no block at all.
func ComposeFrontmatter(meta Metadata) string {
	var fields strings.Builder
	writeField := func(key, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		fields.WriteString(key)
		fields.WriteString(": ")
		fields.WriteString(quoteIfNeeded(value))
		fields.WriteString("\n")
	}

	writeField("id", meta.ID)
	writeField("title", meta.Title)
	writeField("type", meta.Type)
	if tags := normalizeTagList(meta.Tags); len(tags) > 0 {
		fields.WriteString("tags: [" + strings.Join(tags, ", ") + "]\n")
	}
	if fields.Len() == 0 {
		return ""
	}
	return frontmatterDelim + "\n" + fields.String() + frontmatterDelim + "\n"
}

func quoteIfNeeded(value string) string {
	if strings.ContainsAny(value, ":#[]{}") {
		return `"` + strings.ReplaceAll(value, `"`, `\"`) + `"`
	}
	return value
}

func trimQuoted(value string) string {
	value = strings.TrimSpace(value)
	value = strings.Trim(value, `"'`)
	return value
}

func normalizeTagList(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := map[string]bool{}
	out := make([]string, 0, len(values))
	for _, value := range values {
		tag := strings.ToLower(strings.TrimSpace(value))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
