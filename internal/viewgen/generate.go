package viewgen

import (
	"bytes"
	"fmt"
	"go/format"

	"github.com/milk9111/viewangle/view"
)

const viewImportPath = "github.com/milk9111/viewangle/view"

// Generate renders the generated Go source for c, gofmt'd.
func Generate(c *Collection) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("viewgen: nil collection")
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "// Code generated by viewanglegen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", c.Package)
	fmt.Fprintf(&b, "import %q\n\n", viewImportPath)

	if len(c.Actors) > 0 {
		b.WriteString("const (\n")
		for _, s := range c.Actors {
			fmt.Fprintf(&b, "\t%s view.ActorID = %#016x // %q\n", s.Const, s.Value, s.Name)
		}
		b.WriteString(")\n\n")
	}
	if len(c.Actions) > 0 {
		b.WriteString("const (\n")
		for _, s := range c.Actions {
			fmt.Fprintf(&b, "\t%s view.ActionID = %#016x // %q\n", s.Const, s.Value, s.Name)
		}
		b.WriteString(")\n\n")
	}

	fmt.Fprintf(&b, "// ViewEntries lists the view fields of %s in declaration order.\n", c.Type)
	fmt.Fprintf(&b, "func (c %s) ViewEntries() []view.Entry {\n", c.Type)
	b.WriteString("\treturn []view.Entry{\n")
	for _, f := range c.Fields {
		fmt.Fprintf(&b, "\t\t{Actor: view.ActorRef(%s), Action: view.ActionRef(%s), Angle: view.%s, %s: c.%s},\n",
			idExpr(f.Actor, "view.ActorID"),
			idExpr(f.Action, "view.ActionID"),
			angleConst(f.Angle),
			kindField(f.Kind),
			f.Name,
		)
	}
	b.WriteString("\t}\n}\n")

	out, err := format.Source(b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("viewgen: format %s: %w", c.Type, err)
	}
	return out, nil
}

func idExpr(id ID, typ string) string {
	if id.Const != "" {
		return id.Const
	}
	return fmt.Sprintf("%s(%d)", typ, id.Value)
}

func angleConst(a view.Angle) string {
	return "Angle" + exportName(a.String())
}

func kindField(k view.Kind) string {
	if k == view.KindAtlasLayout {
		return "Layout"
	}
	return "Image"
}
