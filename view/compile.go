package view

import (
	"reflect"
)

var (
	imageHandleType  = reflect.TypeOf(ImageHandle{})
	layoutHandleType = reflect.TypeOf(LayoutHandle{})
)

// Compile reads the `view` tags of a struct (or pointer to struct) and returns
// one Entry per tagged field in declaration order, together with the symbolic
// names it met. Untagged fields are not view fields and are skipped.
//
// Actor and action ids are carried forward from field to field, so the
// returned entries always have them set explicitly.
func Compile(collection any) ([]Entry, Symbols, error) {
	var syms Symbols

	v := reflect.ValueOf(collection)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, syms, &ConfigError{Err: ErrNotStruct}
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, syms, &ConfigError{Value: v.Kind().String(), Err: ErrNotStruct}
	}

	t := v.Type()
	var (
		entries []Entry
		actor   ActorID
		action  ActionID
	)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag, ok := field.Tag.Lookup(TagName)
		if !ok || tag == "-" {
			continue
		}

		ann, err := ParseTag(tag)
		if err != nil {
			if cfgErr, ok := err.(*ConfigError); ok {
				cfgErr.Field = field.Name
			}
			return nil, syms, err
		}

		if id, sym, ok := ann.ActorID(); ok {
			actor = id
			if sym {
				syms.addActor(ann.Actor, uint64(id))
			}
		}
		if id, sym, ok := ann.ActionID(); ok {
			action = id
			if sym {
				syms.addAction(ann.Action, uint64(id))
			}
		}

		if !field.IsExported() {
			return nil, syms, &ConfigError{Field: field.Name, Err: ErrUnexported}
		}

		entry := Entry{
			Actor:  ActorRef(actor),
			Action: ActionRef(action),
			Angle:  ann.Angle,
		}
		fv := v.Field(i)
		switch ann.Kind {
		case KindImage:
			if field.Type != imageHandleType {
				return nil, syms, &ConfigError{Field: field.Name, Key: "kind", Value: ann.Kind.String(), Err: ErrKindMismatch}
			}
			entry.Image = fv.Interface().(ImageHandle)
		case KindAtlasLayout:
			if field.Type != layoutHandleType {
				return nil, syms, &ConfigError{Field: field.Name, Key: "kind", Value: ann.Kind.String(), Err: ErrKindMismatch}
			}
			entry.Layout = fv.Interface().(LayoutHandle)
		}
		entries = append(entries, entry)
	}
	return entries, syms, nil
}
