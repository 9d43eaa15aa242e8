// Package viewgen generates ViewEntries methods and id constants for
// annotated asset structs.
package viewgen

import (
	"errors"
	"fmt"
	"go/ast"
	"go/types"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/milk9111/viewangle/view"
)

// Field is one view field with its carry-forward applied.
type Field struct {
	Name   string
	Kind   view.Kind
	Angle  view.Angle
	Actor  ID
	Action ID
}

// ID is a resolved actor or action reference. Symbolic ids name the
// generated constant; literal ids are emitted as numbers.
type ID struct {
	Value uint64
	Const string
}

type Symbol struct {
	Const string
	Name  string
	Value uint64
}

// Collection is everything needed to write the generated file.
type Collection struct {
	Package string
	Type    string
	Fields  []Field
	Actors  []Symbol
	Actions []Symbol
}

// Extract reads the view annotations of struct typeName in files.
func Extract(pkgName string, files []*ast.File, typeName string) (*Collection, error) {
	st, ok := findStruct(files, typeName)
	if !ok {
		return nil, fmt.Errorf("viewgen: struct %s not found in package %s", typeName, pkgName)
	}

	c := &Collection{Package: pkgName, Type: typeName}
	var actor, action ID
	for _, f := range st.Fields.List {
		if f.Tag == nil {
			continue
		}
		raw, err := strconv.Unquote(f.Tag.Value)
		if err != nil {
			return nil, fmt.Errorf("viewgen: %s: bad tag %s: %w", typeName, f.Tag.Value, err)
		}
		tag, ok := reflect.StructTag(raw).Lookup(view.TagName)
		if !ok || tag == "-" {
			continue
		}
		if len(f.Names) != 1 {
			return nil, fmt.Errorf("viewgen: %s: view tag on an embedded or grouped field", typeName)
		}
		name := f.Names[0].Name

		ann, err := view.ParseTag(tag)
		if err != nil {
			return nil, withField(err, name)
		}
		if !ast.IsExported(name) {
			return nil, &view.ConfigError{Field: name, Err: view.ErrUnexported}
		}
		if !kindMatches(ann.Kind, f.Type) {
			return nil, &view.ConfigError{Field: name, Key: "kind", Value: ann.Kind.String(), Err: view.ErrKindMismatch}
		}

		if ann.Actor != "" {
			id, symbolic, _ := ann.ActorID()
			actor = ID{Value: uint64(id)}
			if symbolic {
				if actor.Const, err = c.addActor(ann.Actor, uint64(id)); err != nil {
					return nil, withField(err, name)
				}
			}
		}
		if ann.Action != "" {
			id, symbolic, _ := ann.ActionID()
			action = ID{Value: uint64(id)}
			if symbolic {
				if action.Const, err = c.addAction(ann.Action, uint64(id)); err != nil {
					return nil, withField(err, name)
				}
			}
		}

		c.Fields = append(c.Fields, Field{
			Name:   name,
			Kind:   ann.Kind,
			Angle:  ann.Angle,
			Actor:  actor,
			Action: action,
		})
	}
	return c, nil
}

func withField(err error, field string) error {
	var cfgErr *view.ConfigError
	if errors.As(err, &cfgErr) && cfgErr.Field == "" {
		cfgErr.Field = field
	}
	return err
}

// kindMatches checks the field's declared type by name. Type aliases beyond
// the view and asset handle names are not followed.
func kindMatches(kind view.Kind, expr ast.Expr) bool {
	typ := types.ExprString(expr)
	switch kind {
	case view.KindImage:
		return strings.HasSuffix(typ, "ImageHandle") || strings.HasSuffix(typ, "Handle[ebiten.Image]")
	case view.KindAtlasLayout:
		return strings.HasSuffix(typ, "LayoutHandle") || strings.HasSuffix(typ, "Handle[asset.AtlasLayout]")
	}
	return false
}

func (c *Collection) addActor(name string, id uint64) (string, error) {
	return addSymbol(&c.Actors, "actor", "Actor"+c.Type+exportName(name), name, id)
}

func (c *Collection) addAction(name string, id uint64) (string, error) {
	return addSymbol(&c.Actions, "action", "Action"+c.Type+exportName(name), name, id)
}

// addSymbol dedupes by symbolic name. Two names that export to the same
// identifier ("run-fast" and "run_fast") would emit duplicate constants.
func addSymbol(list *[]Symbol, key, constName, name string, id uint64) (string, error) {
	for _, s := range *list {
		if s.Name == name {
			return s.Const, nil
		}
		if s.Const == constName {
			return "", &view.ConfigError{
				Key:   key,
				Value: name,
				Err:   fmt.Errorf("%w: %s is already %q", view.ErrNameCollision, constName, s.Name),
			}
		}
	}
	*list = append(*list, Symbol{Const: constName, Name: name, Value: id})
	return constName, nil
}

// exportName turns a symbolic name like "front_hop" or "run-fast" into
// "FrontHop" and "RunFast".
func exportName(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
