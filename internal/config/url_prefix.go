package config

import (
	"fmt"
	"net/url"
	"strings"
)

// URLPrefix базовый адрес, от которого строятся короткие ссылки
type URLPrefix string

func (p URLPrefix) String() string {
	return string(p)
}

func (p *URLPrefix) Set(value string) error {
	if !strings.HasPrefix(value, "http") {
		return fmt.Errorf("invalid URL prefix format: %s", value)
	}

	*p = URLPrefix(strings.TrimRight(value, "/"))

	return nil
}

func (p *URLPrefix) UnmarshalText(text []byte) error {
	return p.Set(string(text))
}

// Hostname возвращает хост короткого домена в нижнем регистре
func (p URLPrefix) Hostname() string {
	u, err := url.Parse(string(p))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
