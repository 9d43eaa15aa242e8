package viewgen

import (
	"fmt"
	"go/ast"
	"path/filepath"

	"golang.org/x/tools/go/packages"
)

// LoadPackage loads the syntax of the Go package in dir.
func LoadPackage(dir string) (*packages.Package, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("viewgen: resolve %s: %w", dir, err)
	}

	cfg := &packages.Config{
		Dir:  absDir,
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("viewgen: load %s: %w", dir, err)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("viewgen: expected one package in %s, got %d", dir, len(pkgs))
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("viewgen: package %s: %v", pkg.PkgPath, pkg.Errors[0])
	}
	return pkg, nil
}

// FromPackage extracts the view collection typeName from a loaded package.
func FromPackage(pkg *packages.Package, typeName string) (*Collection, error) {
	if pkg == nil {
		return nil, fmt.Errorf("viewgen: nil package")
	}
	return Extract(pkg.Name, pkg.Syntax, typeName)
}

func findStruct(files []*ast.File, typeName string) (*ast.StructType, bool) {
	for _, file := range files {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok {
				continue
			}
			for _, spec := range gen.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok || ts.Name.Name != typeName {
					continue
				}
				st, ok := ts.Type.(*ast.StructType)
				return st, ok
			}
		}
	}
	return nil, false
}
