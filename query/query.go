package query

import (
	"fmt"
	"net/url"
	"strings"
)

type pair struct {
	name  string
	value string
}

// Params is an ordered collection of query parameters.
// The order of Add calls is the order in the built URL.
type Params struct {
	pairs []pair
}

func NewParams() *Params {
	return &Params{}
}

func (p *Params) Add(name string, value any) *Params {
	p.pairs = append(p.pairs, pair{
		name:  name,
		value: fmt.Sprint(value),
	})
	return p
}

func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.pairs)
}

// BuildURL appends params to endpoint as a query string. The first parameter
// is joined with '?' unless the endpoint already carries a query component,
// in which case '&' is used.
func BuildURL(endpoint string, params *Params) string {
	if params.Len() == 0 {
		return endpoint
	}

	builder := strings.Builder{}
	builder.WriteString(endpoint)
	separator := "?"
	if strings.Contains(endpoint, "?") {
		separator = "&"
	}
	for _, pair := range params.pairs {
		builder.WriteString(separator)
		builder.WriteString(url.QueryEscape(pair.name))
		builder.WriteString("=")
		builder.WriteString(url.QueryEscape(pair.value))
		separator = "&"
	}
	return builder.String()
}
