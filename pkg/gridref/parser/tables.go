package parser

import (
	"strings"

	"github.com/ukaji3/gridref-go/pkg/gridref/models"
)

type tokenKind int

const (
	tokenColumn tokenKind = iota
	tokenKeyword
	tokenComma
	tokenColon
)

type tableToken struct {
	kind tokenKind
	text string
}

var tableKeywords = map[string]models.Section{
	"#HEADERS": models.SectionHeaders,
	"#DATA":    models.SectionData,
	"#TOTALS":  models.SectionTotals,
	"#ALL":     models.SectionAll,
}

// ParseTableSelector parses `Name[...]` structured reference text without
// checking that the table exists.
func ParseTableSelector(text string) (models.TableSelector, error) {
	s := strings.TrimSpace(text)
	idx := strings.IndexByte(s, '[')
	if idx < 0 {
		if s == "" {
			return models.TableSelector{}, NewParseError(text, tableError("missing table name"))
		}
		return models.TableSelector{Table: s}, nil
	}
	name := strings.TrimSpace(s[:idx])
	if name == "" {
		return models.TableSelector{}, NewParseError(text, tableError("missing table name"))
	}
	sel, err := parseTableBody(name, s[idx:])
	if err != nil {
		return models.TableSelector{}, NewParseError(text, err)
	}
	return sel, nil
}

// parseTable reports ok when s is shaped like a table reference: a bare name
// known to tables, or a leading name followed by brackets.
func parseTable(s string, tables TableNames) (models.TableSelector, bool, error) {
	idx := strings.IndexByte(s, '[')
	if idx < 0 {
		if tables != nil && tables.HasTable(s) {
			return models.TableSelector{Table: s}, true, nil
		}
		return models.TableSelector{}, false, nil
	}
	name := strings.TrimSpace(s[:idx])
	if name == "" {
		return models.TableSelector{}, false, nil
	}
	if tables == nil || !tables.HasTable(name) {
		return models.TableSelector{}, true, tableError("unknown table %q", name)
	}
	sel, err := parseTableBody(name, s[idx:])
	return sel, true, err
}

func parseTableBody(name, body string) (models.TableSelector, error) {
	tokens, err := tokenizeTable(body)
	if err != nil {
		return models.TableSelector{}, err
	}

	sel := models.TableSelector{Table: name}
	expectItem := true
	afterColon := false
	lastWasColumn := false
	for _, t := range tokens {
		switch t.kind {
		case tokenComma, tokenColon:
			if expectItem {
				return models.TableSelector{}, tableError("unexpected separator")
			}
			expectItem = true
			afterColon = t.kind == tokenColon
			if afterColon && !lastWasColumn {
				return models.TableSelector{}, tableError("':' must join two columns")
			}
		case tokenKeyword:
			if !expectItem || afterColon {
				return models.TableSelector{}, tableError("unexpected %s", t.text)
			}
			sel.Sections |= tableKeywords[strings.ToUpper(t.text)]
			expectItem = false
			lastWasColumn = false
		case tokenColumn:
			if !expectItem {
				return models.TableSelector{}, tableError("missing separator before %q", t.text)
			}
			if afterColon {
				sel.ColumnEnd = t.text
				lastWasColumn = false
			} else {
				if sel.ColumnStart != "" {
					return models.TableSelector{}, tableError("more than one column selector")
				}
				sel.ColumnStart = t.text
				lastWasColumn = true
			}
			expectItem = false
			afterColon = false
		}
	}
	if expectItem && len(tokens) > 0 {
		return models.TableSelector{}, tableError("trailing separator")
	}
	return sel, nil
}

// tokenizeTable splits bracketed table content into column names, keywords
// and top-level separators. Inner brackets and apostrophe escapes make their
// content literal, so names may contain `,`, `:` and `]`.
func tokenizeTable(body string) ([]tableToken, error) {
	if !strings.HasPrefix(body, "[") {
		return nil, tableError("expected '['")
	}

	var tokens []tableToken
	var cur strings.Builder
	escapedLead := false
	depth := 0

	emit := func(bracketed bool) error {
		text := cur.String()
		lead := escapedLead
		cur.Reset()
		escapedLead = false
		if !bracketed {
			text = strings.TrimSpace(text)
			if text == "" {
				return nil
			}
		}
		if strings.HasPrefix(text, "#") && !lead {
			if _, ok := tableKeywords[strings.ToUpper(text)]; !ok {
				return tableError("unknown keyword %q", text)
			}
			tokens = append(tokens, tableToken{kind: tokenKeyword, text: text})
			return nil
		}
		if text == "" {
			return tableError("empty column name")
		}
		tokens = append(tokens, tableToken{kind: tokenColumn, text: text})
		return nil
	}

	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case depth == 0:
			depth = 1
		case c == '\'':
			if i+1 >= len(body) {
				return nil, tableError("dangling escape")
			}
			if strings.TrimSpace(cur.String()) == "" {
				escapedLead = true
			}
			i++
			cur.WriteByte(body[i])
		case c == '[':
			if depth == 2 {
				return nil, tableError("brackets nested too deeply")
			}
			if strings.TrimSpace(cur.String()) != "" {
				return nil, tableError("unexpected '[' after %q", cur.String())
			}
			cur.Reset()
			escapedLead = false
			depth = 2
		case c == ']':
			if err := emit(depth == 2); err != nil {
				return nil, err
			}
			depth--
			if depth == 0 && i != len(body)-1 {
				return nil, tableError("unexpected text after ']'")
			}
		case depth == 1 && (c == ',' || c == ':'):
			if err := emit(false); err != nil {
				return nil, err
			}
			kind := tokenComma
			if c == ':' {
				kind = tokenColon
			}
			tokens = append(tokens, tableToken{kind: kind, text: string(c)})
		default:
			cur.WriteByte(c)
		}
	}
	if depth != 0 {
		return nil, tableError("unbalanced brackets")
	}
	return tokens, nil
}
