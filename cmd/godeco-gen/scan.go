package main

import (
	"cmp"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"slices"
	"strings"
	"unicode"

	godecoslices "github.com/a-peyrard/godeco/slices"
	"github.com/a-peyrard/godeco/set"
	"github.com/rs/zerolog"
	"golang.org/x/tools/go/packages"
)

type (
	// ProxyDefinition is an interface annotated with @proxy.
	ProxyDefinition struct {
		Interface   *types.TypeName
		ProxyName   string
		Description string
		Methods     []*types.Func
	}

	// ConstructorDefinition is a function annotated with @constructor.
	ConstructorDefinition struct {
		Func        *types.Func
		Description string
	}

	// Definitions is everything found by a scan, to be generated in the target package.
	Definitions struct {
		Package      *types.Package
		Proxies      []ProxyDefinition
		Constructors []ConstructorDefinition
	}
)

func (p ProxyDefinition) String() string {
	return fmt.Sprintf(
		`🪞 Proxy: %s
Description: %s
Interface: %s
Methods: [%s]`,
		p.ProxyName,
		p.Description,
		p.Interface.Type(),
		strings.Join(godecoslices.Map(p.Methods, (*types.Func).Name), ", "),
	)
}

func (c ConstructorDefinition) String() string {
	return fmt.Sprintf(
		`🏗️ Constructor: %s
Description: %s
Signature: %s`,
		c.Func.FullName(),
		c.Description,
		c.Func.Type(),
	)
}

func (d *Definitions) Empty() bool {
	return len(d.Proxies) == 0 && len(d.Constructors) == 0
}

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// scan loads the packages matching the patterns from dir, and collects the annotated
// declarations to generate in the package of the target file.
func scan(logger zerolog.Logger, dir string, targetFile string, patterns []string) (*Definitions, error) {
	cfg := &packages.Config{
		Mode: loadMode,
		Dir:  dir,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages %v:\n\t%w", patterns, err)
	}

	var target *packages.Package
	for _, pkg := range pkgs {
		for _, pkgErr := range pkg.Errors {
			logger.Warn().Str("package", pkg.ID).Msgf("Package loaded with errors: %s", pkgErr)
		}
		if slices.Contains(pkg.GoFiles, targetFile) {
			target = pkg
		}
	}
	if target == nil || target.Types == nil {
		return nil, fmt.Errorf("no package contains the target file %s", targetFile)
	}

	definitions := &Definitions{Package: target.Types}
	proxyNames := set.New[string]()
	for _, pkg := range pkgs {
		if pkg.Types == nil {
			continue
		}
		scanPackage(logger.With().Str("package", pkg.ID).Logger(), pkg, definitions, proxyNames)
	}

	slices.SortFunc(definitions.Proxies, func(a, b ProxyDefinition) int {
		return cmp.Or(
			cmp.Compare(a.Interface.Pkg().Path(), b.Interface.Pkg().Path()),
			cmp.Compare(a.Interface.Name(), b.Interface.Name()),
		)
	})
	slices.SortFunc(definitions.Constructors, func(a, b ConstructorDefinition) int {
		return cmp.Or(
			cmp.Compare(a.Func.Pkg().Path(), b.Func.Pkg().Path()),
			cmp.Compare(a.Func.Name(), b.Func.Name()),
		)
	})
	return definitions, nil
}

func scanPackage(logger zerolog.Logger, pkg *packages.Package, definitions *Definitions, proxyNames set.Set[string]) {
	logger.Debug().Msg("Scanning package")
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			switch decl := decl.(type) {
			case *ast.GenDecl:
				if decl.Tok != token.TYPE {
					continue
				}
				for _, spec := range decl.Specs {
					typeSpec := spec.(*ast.TypeSpec)
					doc := typeSpec.Doc
					if doc == nil && len(decl.Specs) == 1 {
						doc = decl.Doc
					}
					if doc == nil || !hasAnnotation(doc.Text(), proxyAnnotationTag) {
						continue
					}
					logger := logger.With().Str("interface", typeSpec.Name.Name).Logger()
					proxy, err := proxyDefinition(&logger, pkg, definitions.Package, typeSpec, doc.Text(), proxyNames)
					if err != nil {
						logger.Warn().Err(err).Msg("Skipping @proxy interface")
						continue
					}
					logger.Debug().Msg("=> Found proxy")
					definitions.Proxies = append(definitions.Proxies, proxy)
				}
			case *ast.FuncDecl:
				if decl.Recv != nil || decl.Doc == nil || !hasAnnotation(decl.Doc.Text(), constructorAnnotationTag) {
					continue
				}
				logger := logger.With().Str("constructor", decl.Name.Name).Logger()
				constructor, err := constructorDefinition(&logger, pkg, definitions.Package, decl)
				if err != nil {
					logger.Warn().Err(err).Msg("Skipping @constructor function")
					continue
				}
				logger.Debug().Msg("=> Found constructor")
				definitions.Constructors = append(definitions.Constructors, constructor)
			}
		}
	}
}

func proxyDefinition(
	logger *zerolog.Logger,
	pkg *packages.Package,
	target *types.Package,
	typeSpec *ast.TypeSpec,
	docText string,
	proxyNames set.Set[string],
) (ProxyDefinition, error) {
	typeName, ok := pkg.TypesInfo.Defs[typeSpec.Name].(*types.TypeName)
	if !ok {
		return ProxyDefinition{}, errors.New("no type information")
	}
	named, ok := typeName.Type().(*types.Named)
	if !ok {
		return ProxyDefinition{}, errors.New("aliases cannot be proxied")
	}
	iface, ok := named.Underlying().(*types.Interface)
	if !ok {
		return ProxyDefinition{}, fmt.Errorf("%s is not an interface", typeName.Name())
	}
	if named.TypeParams().Len() > 0 {
		return ProxyDefinition{}, errors.New("generic interfaces cannot be proxied")
	}
	external := typeName.Pkg().Path() != target.Path()
	if external && !typeName.Exported() {
		return ProxyDefinition{}, fmt.Errorf("%s is not exported from %s", typeName.Name(), typeName.Pkg().Path())
	}

	methods := make([]*types.Func, iface.NumMethods())
	for i := range methods {
		method := iface.Method(i)
		if external && !method.Exported() {
			return ProxyDefinition{}, fmt.Errorf("method %s is not exported from %s", method.Name(), method.Pkg().Path())
		}
		methods[i] = method
	}

	annotation := parseAnnotation(logger, docText, proxyAnnotationTag)
	for _, unknown := range annotation.UnknownProperties("name") {
		logger.Warn().Msgf("Unknown @proxy property %s, ignoring it", unknown)
	}

	proxyName, found := annotation.Named()
	if !found {
		proxyName = lowerFirst(typeName.Name()) + "Proxy"
		if proxyNames.Contains(proxyName) {
			proxyName = lowerFirst(typeName.Pkg().Name()) + upperFirst(typeName.Name()) + "Proxy"
		}
	}
	base := proxyName
	for i := 2; proxyNames.Contains(proxyName); i++ {
		proxyName = fmt.Sprintf("%s%d", base, i)
	}
	proxyNames.Add(proxyName)

	return ProxyDefinition{
		Interface:   typeName,
		ProxyName:   proxyName,
		Description: annotation.description,
		Methods:     methods,
	}, nil
}

func constructorDefinition(
	logger *zerolog.Logger,
	pkg *packages.Package,
	target *types.Package,
	decl *ast.FuncDecl,
) (ConstructorDefinition, error) {
	fn, ok := pkg.TypesInfo.Defs[decl.Name].(*types.Func)
	if !ok {
		return ConstructorDefinition{}, errors.New("no type information")
	}
	if fn.Pkg().Path() != target.Path() && !fn.Exported() {
		return ConstructorDefinition{}, fmt.Errorf("%s is not exported from %s", fn.Name(), fn.Pkg().Path())
	}

	sig := fn.Type().(*types.Signature)
	if sig.TypeParams().Len() > 0 {
		return ConstructorDefinition{}, errors.New("generic functions cannot be constructors")
	}
	if sig.Variadic() {
		return ConstructorDefinition{}, errors.New("variadic functions cannot be constructors")
	}
	results := sig.Results()
	if results.Len() != 1 && results.Len() != 2 {
		return ConstructorDefinition{}, errors.New("constructors return the instance, and optionally an error")
	}
	if results.Len() == 2 && !isError(results.At(1).Type()) {
		return ConstructorDefinition{}, errors.New("the second result of a constructor must be an error")
	}
	if types.IsInterface(results.At(0).Type()) {
		return ConstructorDefinition{}, errors.New("constructors must return a concrete type")
	}

	annotation := parseAnnotation(logger, decl.Doc.Text(), constructorAnnotationTag)
	for _, unknown := range annotation.UnknownProperties() {
		logger.Warn().Msgf("Unknown @constructor property %s, ignoring it", unknown)
	}

	return ConstructorDefinition{Func: fn, Description: annotation.description}, nil
}

func isError(typ types.Type) bool {
	return types.Identical(typ, types.Universe.Lookup("error").Type())
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
