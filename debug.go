package rivet

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rivetdi/rivet/internal/typekey"
)

// Stats are the diagnostic counters exposed by the injector.
type Stats struct {
	// Bindings is the number of registered type-to-instance bindings.
	Bindings int
	// Injected is the number of objects that completed member injection.
	Injected int
	// Constructors is the number of types with a registered constructor.
	Constructors int
}

func (in *Injector) Stats() Stats {
	in.injectMu.Lock()
	injected := len(in.injected)
	in.injectMu.Unlock()

	return Stats{
		Bindings:     in.registry.size(),
		Injected:     injected,
		Constructors: in.ctors.Len(),
	}
}

// Keys returns the sorted type keys of all current bindings.
func (in *Injector) Keys() []string {
	types := in.registry.types()

	keys := make([]string, 0, len(types))
	for _, t := range types {
		keys = append(keys, typekey.For(t))
	}
	sort.Strings(keys)
	return keys
}

func (in *Injector) PrintBindings() {
	in.FprintBindings(os.Stdout)
}

// FprintBindings writes a human-readable dump of the registry and the
// registered constructors: ● for bound singletons, ○ for types that will be
// constructed reflectively, with their constructor parameters.
func (in *Injector) FprintBindings(w io.Writer) {
	keys := in.Keys()

	ctorLines := in.constructorLines()

	if len(keys) == 0 && len(ctorLines) == 0 {
		_, _ = fmt.Fprintln(w, "(empty injector)")
		return
	}

	for _, key := range keys {
		_, _ = fmt.Fprintf(w, "● %s\n", key)
	}
	for _, line := range ctorLines {
		_, _ = fmt.Fprintln(w, line)
	}
}

func (in *Injector) constructorLines() []string {
	var lines []string

	for _, t := range in.ctors.Types() {
		ctors := in.ctors.Lookup(t)
		if len(ctors) != 1 {
			lines = append(lines, fmt.Sprintf("○ %s (ambiguous: %d constructors)", typekey.For(t), len(ctors)))
			continue
		}

		params := make([]string, len(ctors[0].Params))
		for i, p := range ctors[0].Params {
			params[i] = typekey.For(p)
		}

		if len(params) == 0 {
			lines = append(lines, fmt.Sprintf("○ %s", typekey.For(t)))
		} else {
			lines = append(lines, fmt.Sprintf("○ %s ← %s", typekey.For(t), strings.Join(params, ", ")))
		}
	}

	sort.Strings(lines)
	return lines
}

func (in *Injector) SprintBindings() string {
	var sb strings.Builder
	in.FprintBindings(&sb)
	return sb.String()
}
