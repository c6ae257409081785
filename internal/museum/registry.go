package museum

import (
	"fmt"
	"strings"
)

// Info identifies one registered museum for UI population.
type Info struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// adapters is the static registration table. The adapter set is small and
// closed, so a literal built at process start beats dynamic discovery.
var adapters = []struct {
	Info
	factory func() Adapter
}{
	{Info{Code: "CMA", Name: "Cleveland Museum of Art"}, func() Adapter { return NewCMA() }},
	{Info{Code: "AIC", Name: "Art Institute of Chicago"}, func() Adapter { return NewAIC() }},
}

// Resolve returns a fresh adapter instance for the given short code.
// Adapters are stateless except for the AIC discovered-departments set,
// which is why the instance, not the type, is the unit of ownership.
func Resolve(code string) (Adapter, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, a := range adapters {
		if a.Code == code {
			return a.factory(), nil
		}
	}
	return nil, fmt.Errorf("unknown museum %q (available: %s)", code, availableCodes())
}

// ListAll returns (code, display name) pairs in registration order.
func ListAll() []Info {
	out := make([]Info, 0, len(adapters))
	for _, a := range adapters {
		out = append(out, a.Info)
	}
	return out
}

func availableCodes() string {
	codes := make([]string, 0, len(adapters))
	for _, a := range adapters {
		codes = append(codes, a.Code)
	}
	return strings.Join(codes, ", ")
}
