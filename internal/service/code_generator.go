package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/avc-dev/link-resolver/internal/model"
)

const (
	AllowedChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	base         = int64(len(AllowedChars))
)

// CodeGenerator детерминированно выводит код из числового id записи
// К id добавляется смещение base^(minLength-1), поэтому все коды не короче minLength
type CodeGenerator struct {
	offset int64
}

// NewCodeGenerator создает генератор с минимальной длиной кода minLength
func NewCodeGenerator(minLength int) *CodeGenerator {
	offset := int64(0)
	if minLength > 1 {
		offset = 1
		for i := 1; i < minLength; i++ {
			offset *= base
		}
	}

	return &CodeGenerator{offset: offset}
}

// CodeFor возвращает код для id записи
func (g *CodeGenerator) CodeFor(id int64) model.Code {
	return model.Code(Encode(id + g.offset))
}

// IDFor восстанавливает id записи по коду
func (g *CodeGenerator) IDFor(code model.Code) (int64, error) {
	n, err := Decode(string(code))
	if err != nil {
		return 0, err
	}
	if n < g.offset {
		return 0, fmt.Errorf("code %s is below generator offset", code)
	}

	return n - g.offset, nil
}

// Encode переводит неотрицательное число в base62
func Encode(n int64) string {
	if n <= 0 {
		return AllowedChars[:1]
	}

	var out []byte
	for n > 0 {
		out = append(out, AllowedChars[n%base])
		n /= base
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	return string(out)
}

// Decode переводит base62 строку в число
func Decode(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty code")
	}

	var n int64
	for _, ch := range s {
		digit := strings.IndexRune(AllowedChars, ch)
		if digit < 0 {
			return 0, fmt.Errorf("invalid character %q", ch)
		}
		if n > (math.MaxInt64-int64(digit))/base {
			return 0, fmt.Errorf("code %s overflows int64", s)
		}
		n = n*base + int64(digit)
	}

	return n, nil
}
