// template/parser.go
package template

import (
	"fmt"
	"html"
	"log"
	"strings"
)

// DefaultAttributeDelimiter separates entries inside an attribute list.
const DefaultAttributeDelimiter = ";"

// Attribute is one name/value pair parsed from a bracketed attribute list.
// Bare tokens (no '=') become boolean-style attributes with an empty value.
type Attribute struct {
	Name  string
	Value string
}

// ElementDescriptor is the parsed shape of one template line.
type ElementDescriptor struct {
	Tag        string
	Classes    []string
	ID         string
	Content    string
	Attributes []Attribute
	EventNames []string
}

// GrammarError reports a line with no parseable element tag.
type GrammarError struct {
	Line string
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("template: no element tag in line %q", e.Line)
}

// Parser extracts element descriptors from single template lines.
// A line is parsed strictly left to right:
//
//	tag .class* #id? (content)? [attr;attr...]? @event;event...?
//
// Only the tag is mandatory. The attribute delimiter is configurable
// (default ";") and affects all subsequent parses.
type Parser struct {
	attrDelim string
}

func NewParser() *Parser {
	return &Parser{attrDelim: DefaultAttributeDelimiter}
}

// SetAttributeDelimiter reconfigures the separator used inside attribute
// lists. Empty symbols are rejected with a warning.
func (p *Parser) SetAttributeDelimiter(symbol string) {
	if symbol == "" {
		log.Printf("WARN Parser: attempted to set empty attribute delimiter, keeping %q", p.attrDelim)
		return
	}
	p.attrDelim = symbol
}

func (p *Parser) AttributeDelimiter() string {
	return p.attrDelim
}

// ParseLine parses one line (depth markers already stripped) into a
// descriptor. The returned error is a *GrammarError when the line carries
// no tag token. Invalid class, attribute, and event tokens (those that
// begin with a digit) are logged and skipped, never fatal.
func (p *Parser) ParseLine(raw string) (*ElementDescriptor, error) {
	line := strings.TrimSpace(raw)

	tag, rest := scanToken(line)
	if tag == "" {
		return nil, &GrammarError{Line: raw}
	}

	desc := &ElementDescriptor{Tag: tag}

	for len(rest) > 0 {
		switch rest[0] {
		case '.':
			var class string
			class, rest = scanToken(rest[1:])
			if class == "" {
				continue
			}
			if isDigit(class[0]) {
				log.Printf("WARN ParseLine: class %q starts with a digit, skipping", class)
				continue
			}
			desc.Classes = append(desc.Classes, class)

		case '#':
			var id string
			id, rest = scanToken(rest[1:])
			if id != "" && desc.ID == "" {
				desc.ID = id
			}

		case '(':
			body := rest[1:]
			end := strings.IndexByte(body, ')')
			if end < 0 {
				desc.Content = html.UnescapeString(body)
				rest = ""
				continue
			}
			desc.Content = html.UnescapeString(body[:end])
			rest = body[end+1:]

		case '[':
			body := rest[1:]
			end := strings.IndexByte(body, ']')
			if end < 0 {
				end = len(body)
				rest = ""
			} else {
				rest = body[end+1:]
			}
			desc.Attributes = append(desc.Attributes, p.parseAttributes(body[:end])...)

		case '@':
			desc.EventNames = append(desc.EventNames, parseEventNames(rest[1:])...)
			rest = ""

		default:
			// Stray character between groups; a monolithic pattern would
			// simply not match it. Skip and keep scanning.
			rest = rest[1:]
		}
	}

	return desc, nil
}

// parseAttributes splits a bracketed attribute body on the configured
// delimiter. Each entry is trimmed; name=value pairs split on the first '='.
func (p *Parser) parseAttributes(body string) []Attribute {
	var attrs []Attribute
	for _, entry := range strings.Split(body, p.attrDelim) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, value := entry, ""
		if eq := strings.IndexByte(entry, '='); eq >= 0 {
			name = strings.TrimSpace(entry[:eq])
			value = strings.TrimSpace(entry[eq+1:])
		}
		if name == "" {
			continue
		}
		if isDigit(name[0]) {
			log.Printf("WARN ParseLine: attribute name %q starts with a digit, skipping", name)
			continue
		}
		attrs = append(attrs, Attribute{Name: name, Value: value})
	}
	return attrs
}

// parseEventNames splits an event suffix on ';', discarding empty tokens.
// A second '@' prefix on a token (from chained @a@b suffixes) is stripped.
func parseEventNames(body string) []string {
	var names []string
	for _, token := range strings.FieldsFunc(body, func(r rune) bool { return r == ';' || r == '@' }) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if isDigit(token[0]) {
			log.Printf("WARN ParseLine: event name %q starts with a digit, skipping", token)
			continue
		}
		names = append(names, token)
	}
	return names
}

// scanToken consumes a run of word characters (letters, digits, '_', '-')
// and returns it with the unconsumed remainder.
func scanToken(s string) (token, rest string) {
	i := 0
	for i < len(s) && isWordChar(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '-'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
