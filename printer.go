package main

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"go.mongodb.org/mongo-driver/bson"
)

// Printer is the result sink for the workflow. Every operation starts with a
// section marker carrying its task label; result documents are dumped
// structurally, empty result sets print a literal notice.
type Printer struct {
	out    io.Writer
	dump   *spew.ConfigState
	banner *color.Color
	marker *color.Color
	notice *color.Color
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out: out,
		dump: &spew.ConfigState{
			Indent:                  "  ",
			SortKeys:                true,
			DisablePointerAddresses: true,
			DisableCapacities:       true,
		},
		banner: color.New(color.FgCyan, color.Bold),
		marker: color.New(color.FgGreen),
		notice: color.New(color.FgYellow),
	}
}

func (p *Printer) Banner(name string) {
	fmt.Fprintln(p.out)
	p.banner.Fprintf(p.out, "=== %s ===\n", name)
}

func (p *Printer) Section(label, heading string) {
	fmt.Fprintln(p.out)
	p.marker.Fprintf(p.out, "[%s] %s\n", label, heading)
}

func (p *Printer) Docs(docs []bson.M) {
	if len(docs) == 0 {
		p.notice.Fprintln(p.out, "no documents found")
		return
	}
	for _, doc := range docs {
		p.dump.Fdump(p.out, doc)
	}
}

func (p *Printer) Doc(doc bson.M) {
	if doc == nil {
		p.notice.Fprintln(p.out, "no documents found")
		return
	}
	p.dump.Fdump(p.out, doc)
}

func (p *Printer) Resultf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}
