package bindgen

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

// MemberName converts a Go member name to its boundary member name.
// The Go constructor conventions `New` and `New<Owner>` both map to the
// literal member name "new"; everything else becomes snake_case, so
// `DistanceFromOrigin` exports as `distance_from_origin`.
func MemberName(owner, goName string) string {
	if goName == "New" || goName == "New"+owner {
		return "new"
	}
	return strcase.ToSnake(goName)
}

// MethodSymbol builds the exported wrapper name for one member:
// OwnerName_memberName.
func MethodSymbol(owner, goName string) string {
	return owner + "_" + MemberName(owner, goName)
}

// GetterSymbol and SetterSymbol name the field accessor wrappers.
func GetterSymbol(owner, field string) string {
	return owner + "_get_" + strcase.ToSnake(field)
}

func SetterSymbol(owner, field string) string {
	return owner + "_set_" + strcase.ToSnake(field)
}

// FreeSymbol names the single deallocation wrapper of a record.
func FreeSymbol(owner string) string { return owner + "_free" }

// ResultTypeName and OptionTypeName name the paired record types emitted
// for error-shape and optional-shape returns.
func ResultTypeName(symbol string) string { return "CResult_" + symbol }

func OptionTypeName(symbol string) string { return "COption_" + symbol }

// Selector converts a Go member name to a host-extension selector:
// camelCase with one trailing colon per argument.
// e.g. "Contains" with 2 args → "contains:_:".
func Selector(goName string, paramCount int) string {
	sel := strcase.ToLowerCamel(goName)
	if paramCount == 0 {
		return sel
	}
	return sel + ":" + strings.Repeat("_:", paramCount-1)
}

// HostClassName qualifies an owner type under the host namespace.
// e.g. namespace "Go", owner "Point" → "Go::Point".
func HostClassName(namespace, owner string) string {
	return namespace + "::" + owner
}

// lowerSnake is the field/parameter spelling used on the C side.
func lowerSnake(s string) string { return strcase.ToSnake(s) }

// SymbolRegistry tracks every symbol emitted during one build. The naming
// scheme alone cannot detect two declarations sharing an owner-type name,
// so collisions fail the build here instead of surfacing as link errors.
type SymbolRegistry struct {
	seen map[string]string // symbol → declaration that claimed it
}

// NewSymbolRegistry returns an empty build-scoped registry.
func NewSymbolRegistry() *SymbolRegistry {
	return &SymbolRegistry{seen: make(map[string]string)}
}

// Claim reserves a symbol for a declaration. Claiming a symbol twice is an
// error naming both claimants.
func (r *SymbolRegistry) Claim(symbol, decl string) error {
	if prev, ok := r.seen[symbol]; ok {
		return fmt.Errorf("duplicate exported symbol %s: claimed by %s and %s", symbol, prev, decl)
	}
	r.seen[symbol] = decl
	return nil
}
