// Package facts exports the merged document model as Datalog facts so the
// join index can be queried and post-processed with Mangle rules.
package facts

import (
	"fmt"
	"strings"

	"github.com/google/mangle/ast"
)

// NameConstant is a Mangle name constant (starting with /). The explicit
// type keeps plain strings from being mistaken for atoms.
type NameConstant string

// Fact is one logical fact destined for an EDB.
type Fact struct {
	Predicate string
	Args      []interface{}
}

// String returns the Datalog source representation of the fact.
func (f Fact) String() string {
	var args []string
	for _, arg := range f.Args {
		switch v := arg.(type) {
		case NameConstant:
			args = append(args, string(v))
		case string:
			args = append(args, fmt.Sprintf("%q", v))
		case int:
			args = append(args, fmt.Sprintf("%d", v))
		case int64:
			args = append(args, fmt.Sprintf("%d", v))
		case bool:
			if v {
				args = append(args, "/true")
			} else {
				args = append(args, "/false")
			}
		default:
			args = append(args, fmt.Sprintf("%v", v))
		}
	}
	return fmt.Sprintf("%s(%s).", f.Predicate, strings.Join(args, ", "))
}

// ToAtom converts the fact to a Mangle AST atom for store insertion.
func (f Fact) ToAtom() (ast.Atom, error) {
	var terms []ast.BaseTerm
	for _, arg := range f.Args {
		switch v := arg.(type) {
		case NameConstant:
			s := string(v)
			if !strings.HasPrefix(s, "/") {
				terms = append(terms, ast.String(s))
				continue
			}
			c, err := ast.Name(s)
			if err != nil {
				return ast.Atom{}, fmt.Errorf("invalid name constant %q: %w", s, err)
			}
			terms = append(terms, c)
		case string:
			terms = append(terms, ast.String(v))
		case int:
			terms = append(terms, ast.Number(int64(v)))
		case int64:
			terms = append(terms, ast.Number(v))
		case bool:
			if v {
				terms = append(terms, ast.TrueConstant)
			} else {
				terms = append(terms, ast.FalseConstant)
			}
		default:
			terms = append(terms, ast.String(fmt.Sprintf("%v", v)))
		}
	}
	return ast.NewAtom(f.Predicate, terms...), nil
}

// name builds a name constant from an identifier-ish string, sanitizing
// characters Mangle rejects.
func name(s string) NameConstant {
	var b strings.Builder
	b.WriteByte('/')
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '.':
			b.WriteRune('_')
		}
	}
	if b.Len() == 1 {
		b.WriteString("unknown")
	}
	return NameConstant(b.String())
}
