package pipeline

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestClassify - Line classification
// ---------------------------------------------------------------------------

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		markdown string
		want     []Block
	}{
		{
			name:     "empty document",
			markdown: "",
			want:     []Block{},
		},
		{
			name:     "blank lines, rules and h1 emit nothing",
			markdown: "# Title\n\n---\n   \n",
			want:     []Block{},
		},
		{
			name:     "heading list paragraph",
			markdown: "## Features\n- One\n- Two\n\nSome text.",
			want: []Block{
				{Kind: BlockHeading, Level: 2, Icon: "star", Text: "Features", Line: 1, Lines: 1},
				{Kind: BlockList, Items: []string{"One", "Two"}, Line: 2, Lines: 2},
				{Kind: BlockParagraph, Text: "Some text.", Line: 5, Lines: 1},
			},
		},
		{
			name:     "heading levels 3 and 4 carry no icon",
			markdown: "### Sub\n#### Card",
			want: []Block{
				{Kind: BlockHeading, Level: 3, Text: "Sub", Line: 1, Lines: 1},
				{Kind: BlockHeading, Level: 4, Text: "Card", Line: 2, Lines: 1},
			},
		},
		{
			name:     "level 5 heading falls through to paragraph",
			markdown: "##### Deep",
			want: []Block{
				{Kind: BlockParagraph, Text: "##### Deep", Line: 1, Lines: 1},
			},
		},
		{
			name:     "hash without space is a paragraph",
			markdown: "#hashtag",
			want: []Block{
				{Kind: BlockParagraph, Text: "#hashtag", Line: 1, Lines: 1},
			},
		},
		{
			name:     "numbered list closes on text",
			markdown: "1. First\n2. Second\nAfter",
			want: []Block{
				{Kind: BlockList, Items: []string{"First", "Second"}, Line: 1, Lines: 2},
				{Kind: BlockParagraph, Text: "After", Line: 3, Lines: 1},
			},
		},
		{
			name:     "mixed markers stay in one list",
			markdown: "- dash\n* star\n3. three",
			want: []Block{
				{Kind: BlockList, Items: []string{"dash", "star", "three"}, Line: 1, Lines: 3},
			},
		},
		{
			name:     "blank line splits a list in two",
			markdown: "- a\n\n- b",
			want: []Block{
				{Kind: BlockList, Items: []string{"a"}, Line: 1, Lines: 1},
				{Kind: BlockList, Items: []string{"b"}, Line: 3, Lines: 1},
			},
		},
		{
			name:     "nested items flatten",
			markdown: "- parent\n  - child",
			want: []Block{
				{Kind: BlockList, Items: []string{"parent", "child"}, Line: 1, Lines: 2},
			},
		},
		{
			name:     "numbered marker without space keeps its text",
			markdown: "1.text",
			want: []Block{
				{Kind: BlockList, Items: []string{"1.text"}, Line: 1, Lines: 1},
			},
		},
		{
			name:     "list closed by heading",
			markdown: "- a\n## Contact",
			want: []Block{
				{Kind: BlockList, Items: []string{"a"}, Line: 1, Lines: 1},
				{Kind: BlockHeading, Level: 2, Icon: "mail", Text: "Contact", Line: 2, Lines: 1},
			},
		},
		{
			name:     "unsupported syntax falls through to paragraphs",
			markdown: "> quote\n| a | b |\n[link](http://x)\n![img](a.png)",
			want: []Block{
				{Kind: BlockParagraph, Text: "> quote", Line: 1, Lines: 1},
				{Kind: BlockParagraph, Text: "| a | b |", Line: 2, Lines: 1},
				{Kind: BlockParagraph, Text: "[link](http://x)", Line: 3, Lines: 1},
				{Kind: BlockParagraph, Text: "![img](a.png)", Line: 4, Lines: 1},
			},
		},
		{
			name:     "emphasis at line start is not a bullet",
			markdown: "*italic* start\n-no space",
			want: []Block{
				{Kind: BlockParagraph, Text: "*italic* start", Line: 1, Lines: 1},
				{Kind: BlockParagraph, Text: "-no space", Line: 2, Lines: 1},
			},
		},
		{
			name:     "CRLF line endings",
			markdown: "a\r\nb\r\n",
			want: []Block{
				{Kind: BlockParagraph, Text: "a", Line: 1, Lines: 1},
				{Kind: BlockParagraph, Text: "b", Line: 2, Lines: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Classify(tt.markdown)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Classify() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestClassify_ListRunLength - N list lines become N items
// ---------------------------------------------------------------------------

func TestClassify_ListRunLength(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 6; n++ {
		t.Run(fmt.Sprintf("%d items", n), func(t *testing.T) {
			t.Parallel()

			var sb strings.Builder
			for i := 0; i < n; i++ {
				fmt.Fprintf(&sb, "- item %d\n", i)
			}
			sb.WriteString("tail")

			blocks := Classify(sb.String())
			if len(blocks) != 2 {
				t.Fatalf("got %d blocks, want 2", len(blocks))
			}
			if blocks[0].Kind != BlockList || len(blocks[0].Items) != n || blocks[0].Lines != n {
				t.Errorf("list block = %+v, want %d items over %d lines", blocks[0], n, n)
			}
			if blocks[1].Kind != BlockParagraph || blocks[1].Line != n+1 {
				t.Errorf("tail block = %+v, want paragraph at line %d", blocks[1], n+1)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestClassify_ConsumesEveryLine - line accounting
// ---------------------------------------------------------------------------

func TestClassify_ConsumesEveryLine(t *testing.T) {
	t.Parallel()

	markdown := "## A\n- 1\n- 2\n### B\npara\n#### C\n1. x\n2. y\n3. z\nend"
	blocks := Classify(markdown)

	consumed := 0
	next := 1
	for _, b := range blocks {
		if b.Line != next {
			t.Errorf("block %+v starts at line %d, want %d", b, b.Line, next)
		}
		consumed += b.Lines
		next = b.Line + b.Lines
	}
	if want := strings.Count(markdown, "\n") + 1; consumed != want {
		t.Errorf("consumed %d lines, want %d", consumed, want)
	}
}

// ---------------------------------------------------------------------------
// TestRenderBlocks - HTML fragment output
// ---------------------------------------------------------------------------

func TestRenderBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		markdown string
		escape   bool
		want     string
	}{
		{
			name:     "empty",
			markdown: "",
			want:     "",
		},
		{
			name:     "heading list paragraph",
			markdown: "## Features\n- One\n- Two\n\nSome text.",
			want: `<h2><span class="material-symbols-outlined" style="font-size: 28px; color: #2B4162;">star</span> Features</h2>
<ul>
<li>One</li>
<li>Two</li>
</ul>
<p>Some text.</p>`,
		},
		{
			name:     "inline formatting in every block kind",
			markdown: "## **Key** Metrics\n### Sub *x*\n#### `code`\n- **b** item\nplain *em*",
			want: `<h2><span class="material-symbols-outlined" style="font-size: 28px; color: #2B4162;">analytics</span> <strong>Key</strong> Metrics</h2>
<h3>Sub <em>x</em></h3>
<h4><code>code</code></h4>
<ul>
<li><strong>b</strong> item</li>
</ul>
<p>plain <em>em</em></p>`,
		},
		{
			name:     "raw html passes through",
			markdown: "a <b>&</b> c",
			want:     "<p>a <b>&</b> c</p>",
		},
		{
			name:     "escape mode",
			markdown: "a <b>&</b> **c**",
			escape:   true,
			want:     "<p>a &lt;b&gt;&amp;&lt;/b&gt; <strong>c</strong></p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := RenderBlocks(Classify(tt.markdown), InlineFormatter{Escape: tt.escape})
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("RenderBlocks() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBlockKind_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind BlockKind
		want string
	}{
		{BlockHeading, "heading"},
		{BlockList, "list"},
		{BlockParagraph, "paragraph"},
		{BlockKind(42), "BlockKind(42)"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("BlockKind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}
