package integration

import (
	"net/url"
	"strconv"
	"strings"
)

// Params is an ordered set of query parameters. Blank values are dropped:
// an absent filter means "no filter" upstream.
type Params struct {
	keys   []string
	values []string
}

func NewParams() Params {
	return Params{}
}

func (p Params) Add(key, value string) Params {
	value = strings.TrimSpace(value)
	if value == "" {
		return p
	}
	p.keys = append(append([]string(nil), p.keys...), key)
	p.values = append(append([]string(nil), p.values...), value)
	return p
}

func (p Params) AddInt(key string, value int) Params {
	return p.Add(key, strconv.Itoa(value))
}

func (p Params) Get(key string) (string, bool) {
	for i, k := range p.keys {
		if k == key {
			return p.values[i], true
		}
	}
	return "", false
}

func (p Params) Len() int {
	return len(p.keys)
}

// Encode renders the parameters in insertion order.
func (p Params) Encode() string {
	var b strings.Builder
	for i, k := range p.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.values[i]))
	}
	return b.String()
}
