package api

import (
	"net/url"
	"strconv"
)

// Params builds query parameters with the backend's omission convention:
// a value that is the empty string or a nil pointer is dropped entirely.
// The server must never see search="" and treat it as a filter.
type Params struct {
	v url.Values
}

// NewParams returns an empty parameter set.
func NewParams() *Params {
	return &Params{v: url.Values{}}
}

// Str sets key unless value is empty.
func (p *Params) Str(key, value string) *Params {
	if value != "" {
		p.v.Set(key, value)
	}
	return p
}

// Int always sets key (zero is a meaningful page/limit value).
func (p *Params) Int(key string, value int) *Params {
	p.v.Set(key, strconv.Itoa(value))
	return p
}

// IntPtr sets key unless value is nil.
func (p *Params) IntPtr(key string, value *int) *Params {
	if value != nil {
		p.v.Set(key, strconv.Itoa(*value))
	}
	return p
}

// Flag sets key=true only when value is set; an absent flag means
// "no filter", never "false".
func (p *Params) Flag(key string, value bool) *Params {
	if value {
		p.v.Set(key, "true")
	}
	return p
}

// Values returns the accumulated url.Values.
func (p *Params) Values() url.Values {
	return p.v
}
