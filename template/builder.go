// template/builder.go
package template

import (
	"log"
	"strings"

	"github.com/menukit/menukit/render"
)

// NestingMarker is the depth marker prefixed to template lines. The count
// of leading markers is the line's nesting level relative to the nearest
// main (level-0) element.
const NestingMarker = '>'

// lineRecord is one non-blank template line with its depth markers stripped.
type lineRecord struct {
	level int
	text  string
}

// Builder materializes templates into element subtrees under a configured
// parent container. It is not safe for concurrent use and must not be
// re-entered from an event callback while a render is in progress.
type Builder struct {
	parser   *Parser
	registry *Registry
	parent   *render.Element
}

// NewBuilder returns a builder consuming bindings from registry. A nil
// registry gets a fresh one (retrievable via Registry).
func NewBuilder(registry *Registry) *Builder {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Builder{parser: NewParser(), registry: registry}
}

// Registry returns the event registry the builder resolves @name
// references against.
func (b *Builder) Registry() *Registry {
	return b.registry
}

// SetParent reassigns the target container for subsequent renders.
// Passing nil resets to a detached body-equivalent root.
func (b *Builder) SetParent(parent *render.Element) {
	b.parent = parent
}

// Parent returns the current target container, creating the default
// body-equivalent root on first use.
func (b *Builder) Parent() *render.Element {
	if b.parent == nil {
		b.parent = render.NewRoot()
	}
	return b.parent
}

// ChangeAttributeDelimiter reconfigures the separator used inside
// bracketed attribute lists. Affects subsequent parses only.
func (b *Builder) ChangeAttributeDelimiter(symbol string) {
	b.parser.SetAttributeDelimiter(symbol)
}

// Render parses tmpl and appends one element subtree per main (level-0)
// line to the configured parent, in template order. The event registry is
// cleared when Render returns: bindings are a one-shot input to a render.
//
// A line without a tag aborts the render with a *GrammarError; main
// elements already appended stay in place. An empty or whitespace-only
// template is a no-op.
func (b *Builder) Render(tmpl string) error {
	records := splitLines(tmpl)
	if len(records) == 0 {
		return nil
	}
	defer b.registry.Clear()

	parent := b.Parent()

	for start := 0; start < len(records); {
		if records[start].level != 0 {
			// Descendant line before any main element has nothing to
			// attach to.
			log.Printf("WARN Render: line %q (level %d) precedes any main element, skipping", records[start].text, records[start].level)
			start++
			continue
		}
		end := start + 1
		for end < len(records) && records[end].level != 0 {
			end++
		}
		main, err := b.buildBlock(records[start], records[start+1:end])
		if err != nil {
			return err
		}
		parent.AppendChild(main)
		start = end
	}
	return nil
}

// buildBlock materializes one main element and its descendant block.
//
// Parent resolution for a level-k descendant is the most recent preceding
// line at level k-1 within the block, falling back to the main element
// when none exists. Scanning top to bottom and appending preserves
// document order among siblings at every depth; a single pass replaces
// the original deepest-first removal strategy with the same resulting
// structure.
func (b *Builder) buildBlock(mainLine lineRecord, descendants []lineRecord) (*render.Element, error) {
	main, err := b.instantiate(mainLine.text)
	if err != nil {
		return nil, err
	}

	// lastAtLevel[k] is the most recently built element at level k.
	lastAtLevel := make(map[int]*render.Element, 4)
	for _, rec := range descendants {
		el, err := b.instantiate(rec.text)
		if err != nil {
			return nil, err
		}
		parent := lastAtLevel[rec.level-1]
		if parent == nil {
			parent = main
		}
		parent.AppendChild(el)
		lastAtLevel[rec.level] = el
	}
	return main, nil
}

// instantiate turns one line into a concrete element: tag, id, classes,
// attributes, text content, and any listeners resolved from the registry.
// Event names with no matching binding are silently ignored.
func (b *Builder) instantiate(line string) (*render.Element, error) {
	desc, err := b.parser.ParseLine(line)
	if err != nil {
		return nil, err
	}

	el := render.NewElement(desc.Tag)
	el.ID = desc.ID
	el.Classes = append(el.Classes, desc.Classes...)
	el.Text = desc.Content
	for _, attr := range desc.Attributes {
		el.SetAttr(attr.Name, attr.Value)
	}
	for _, name := range desc.EventNames {
		binding := b.registry.Find(name)
		if binding == nil {
			continue
		}
		el.AddListener(render.Listener{
			Type:    binding.Type,
			Handler: binding.Callback,
			Once:    binding.Options.Once,
		})
	}
	return el, nil
}

// splitLines extracts the non-blank trimmed lines of tmpl in order,
// counting and stripping leading depth markers. Blank lines never
// participate in level counting or indexing.
func splitLines(tmpl string) []lineRecord {
	var records []lineRecord
	for _, raw := range strings.Split(tmpl, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		level := 0
		for level < len(line) && line[level] == NestingMarker {
			level++
		}
		records = append(records, lineRecord{level: level, text: strings.TrimSpace(line[level:])})
	}
	return records
}
