package brdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCPF(t *testing.T) {
	cases := []struct {
		value string
		valid bool
	}{
		{"52998224725", true},
		{"529.982.247-25", true},
		{"52998224724", false},
		{"11111111111", false},
		{"5299822472", false},
		{"529982247255", false},
		{"", false},
		{"abcdefghijk", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.valid, IsCPF(tc.value), "cpf %q", tc.value)
	}
}

func TestIsCNPJ(t *testing.T) {
	cases := []struct {
		value string
		valid bool
	}{
		{"11222333000181", true},
		{"11.222.333/0001-81", true},
		{"11222333000180", false},
		{"00000000000000", false},
		{"1122233300018", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.valid, IsCNPJ(tc.value), "cnpj %q", tc.value)
	}
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "52998224725", Digits("529.982.247-25"))
	assert.Equal(t, "", Digits("no digits here"))
}
