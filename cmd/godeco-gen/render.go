package main

import (
	"fmt"
	"go/format"
	"go/types"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/a-peyrard/godeco/set"
)

const (
	godecoImportPath = "github.com/a-peyrard/godeco"
	generatedHeader  = "// Code generated by godeco-gen. DO NOT EDIT."
)

// imports assigns an alias to every package referenced by the generated code.
type imports struct {
	self    *types.Package
	aliases map[string]string
	used    set.Set[string]
}

func newImports(self *types.Package) *imports {
	return &imports{
		self:    self,
		aliases: make(map[string]string),
		used:    set.New[string](),
	}
}

func (i *imports) alias(importPath string, name string) string {
	if alias, found := i.aliases[importPath]; found {
		return alias
	}
	alias := name
	if i.used.Contains(alias) {
		alias = findSuitableAlias(importPath, i.used)
	}
	i.used.Add(alias)
	i.aliases[importPath] = alias
	return alias
}

// qualifier renders the types of the target package unqualified, and the others with their alias.
func (i *imports) qualifier(pkg *types.Package) string {
	if pkg.Path() == i.self.Path() {
		return ""
	}
	return i.alias(pkg.Path(), pkg.Name())
}

func (i *imports) importPath(pkg *types.Package) string {
	if pkg.Path() == i.self.Path() {
		return ""
	}
	i.qualifier(pkg)
	return pkg.Path()
}

func (i *imports) write(b *strings.Builder) {
	var std, others []string
	for importPath := range i.aliases {
		if isStandard(importPath) {
			std = append(std, importPath)
		} else {
			others = append(others, importPath)
		}
	}
	sort.Strings(std)
	sort.Strings(others)

	b.WriteString("import (\n")
	for idx, group := range [][]string{std, others} {
		if len(group) == 0 {
			continue
		}
		if idx > 0 && len(std) > 0 {
			b.WriteString("\n")
		}
		for _, importPath := range group {
			alias := i.aliases[importPath]
			if alias == path.Base(importPath) {
				fmt.Fprintf(b, "\t%q\n", importPath)
			} else {
				fmt.Fprintf(b, "\t%s %q\n", alias, importPath)
			}
		}
	}
	b.WriteString(")\n")
}

func isStandard(importPath string) bool {
	first, _, _ := strings.Cut(importPath, "/")
	return !strings.Contains(first, ".")
}

// findSuitableAlias prefixes the last element of the import path with the initials of the
// previous ones until the alias is free, then appends a counter.
func findSuitableAlias(importPath string, aliases set.Set[string]) string {
	tokens := strings.Split(importPath, "/")
	alias := sanitizeIdentifier(tokens[len(tokens)-1])
	for i := len(tokens) - 2; i >= 0 && aliases.Contains(alias); i-- {
		if initial := sanitizeIdentifier(tokens[i]); initial != "" {
			alias = initial[:1] + alias
		}
	}
	base := alias
	for idx := 0; aliases.Contains(alias); idx++ {
		alias = base + strconv.Itoa(idx)
	}
	return alias
}

func sanitizeIdentifier(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// generateFQN qualifies a type or function name with the alias of its package, pointers included.
func generateFQN(importPath string, typeName string, importWithAlias map[string]string) string {
	if importPath == "" {
		return typeName
	}
	alias := importWithAlias[importPath]
	if strings.HasPrefix(typeName, "*") {
		return "*" + alias + "." + strings.TrimPrefix(typeName, "*")
	}
	return alias + "." + typeName
}

// render writes the Go file registering the proxies and constructors, gofmt formatted.
func render(definitions *Definitions) ([]byte, error) {
	imps := newImports(definitions.Package)
	godeco := imps.alias(godecoImportPath, "godeco")

	var body strings.Builder
	var registrations []string
	for _, proxy := range definitions.Proxies {
		iface := generateFQN(imps.importPath(proxy.Interface.Pkg()), proxy.Interface.Name(), imps.aliases)
		writeProxy(&body, godeco, proxy, imps)
		registrations = append(registrations, fmt.Sprintf(
			"\t%s.RegisterProxy[%s](func(inv %s.Invoker) %s {\n\t\treturn %s{inv: inv}\n\t})\n",
			godeco, iface, godeco, iface, proxy.ProxyName,
		))
	}
	for _, constructor := range definitions.Constructors {
		fnName := generateFQN(imps.importPath(constructor.Func.Pkg()), constructor.Func.Name(), imps.aliases)
		registrations = append(registrations, fmt.Sprintf("\t%s.MustRegisterConstructor(%s)\n", godeco, fnName))
	}

	var b strings.Builder
	b.WriteString(generatedHeader + "\n\n")
	fmt.Fprintf(&b, "package %s\n\n", definitions.Package.Name())
	imps.write(&b)
	b.WriteString("\n")
	b.WriteString(body.String())
	b.WriteString("func init() {\n")
	for _, registration := range registrations {
		b.WriteString(registration)
	}
	b.WriteString("}\n")

	formatted, err := format.Source([]byte(b.String()))
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code:\n\t%w\n%s", err, b.String())
	}
	return formatted, nil
}

func writeProxy(b *strings.Builder, godeco string, proxy ProxyDefinition, imps *imports) {
	fmt.Fprintf(b, "type %s struct {\n\tinv %s.Invoker\n}\n\n", proxy.ProxyName, godeco)

	declaresDelegate := false
	for _, method := range proxy.Methods {
		if method.Name() == "Delegate" {
			declaresDelegate = true
		}
		writeMethod(b, godeco, proxy.ProxyName, method, imps.qualifier)
	}

	if !declaresDelegate {
		fmt.Fprintf(b, "func (p %s) Delegate() any {\n\treturn p.inv.Delegate()\n}\n\n", proxy.ProxyName)
	}
}

func writeMethod(b *strings.Builder, godeco string, proxyName string, method *types.Func, qualifier types.Qualifier) {
	sig := method.Type().(*types.Signature)
	params, results := sig.Params(), sig.Results()

	paramDecls := make([]string, params.Len())
	args := make([]string, params.Len())
	for i := range paramDecls {
		typ := types.TypeString(params.At(i).Type(), qualifier)
		if sig.Variadic() && i == params.Len()-1 {
			typ = "..." + types.TypeString(params.At(i).Type().(*types.Slice).Elem(), qualifier)
		}
		args[i] = fmt.Sprintf("a%d", i)
		paramDecls[i] = args[i] + " " + typ
	}

	resultTypes := make([]string, results.Len())
	for i := range resultTypes {
		resultTypes[i] = types.TypeString(results.At(i).Type(), qualifier)
	}

	var resultList string
	switch len(resultTypes) {
	case 0:
	case 1:
		resultList = " " + resultTypes[0]
	default:
		resultList = " (" + strings.Join(resultTypes, ", ") + ")"
	}

	returnsError := results.Len() > 0 && isError(results.At(results.Len()-1).Type())
	var argList strings.Builder
	for _, arg := range args {
		argList.WriteString(", " + arg)
	}
	call := fmt.Sprintf(
		"p.inv.Invoke(%s%s)",
		operationLiteral(godeco, method.Name(), params.Len(), results.Len(), sig.Variadic(), returnsError),
		argList.String(),
	)

	fmt.Fprintf(b, "func (p %s) %s(%s)%s {\n", proxyName, method.Name(), strings.Join(paramDecls, ", "), resultList)
	if len(resultTypes) == 0 {
		fmt.Fprintf(b, "\t%s\n", call)
	} else {
		fmt.Fprintf(b, "\tres := %s\n", call)
		names := make([]string, len(resultTypes))
		for i, typ := range resultTypes {
			names[i] = fmt.Sprintf("r%d", i)
			fmt.Fprintf(b, "\t%s := %s.Result[%s](res, %d)\n", names[i], godeco, typ, i)
		}
		fmt.Fprintf(b, "\treturn %s\n", strings.Join(names, ", "))
	}
	b.WriteString("}\n\n")
}

func operationLiteral(godeco string, name string, numIn, numOut int, variadic, returnsError bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s.Operation{Name: %q", godeco, name)
	if numIn > 0 {
		fmt.Fprintf(&b, ", NumIn: %d", numIn)
	}
	if numOut > 0 {
		fmt.Fprintf(&b, ", NumOut: %d", numOut)
	}
	if variadic {
		b.WriteString(", Variadic: true")
	}
	if returnsError {
		b.WriteString(", ReturnsError: true")
	}
	b.WriteString("}")
	return b.String()
}
