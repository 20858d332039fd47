package cssinline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeclarationBlockSet(t *testing.T) {
	var b DeclarationBlock
	b = b.Set("color", "red")
	b = b.Set("margin", "0")
	b = b.Set("color", "blue")
	assert.Equal(t, DeclarationBlock{
		{Property: "color", Value: "blue"},
		{Property: "margin", Value: "0"},
	}, b)
	assert.Equal(t, "color:blue; margin:0", b.String())

	_, ok := b.Get("padding")
	assert.False(t, ok)
}

func TestDeclarationBlockSorted(t *testing.T) {
	b := DeclarationBlock{{"margin", "0"}, {"color", "red"}, {"background", "blue"}}
	assert.Equal(t, "background:blue; color:red; margin:0", b.Sorted().String())
	// the receiver keeps its order
	assert.Equal(t, "margin", b[0].Property)
}

func TestStyleString(t *testing.T) {
	testdata := []struct {
		name  string
		style Style
		want  string
	}{
		{"nothing", nil, ""},
		{"empty base", Style{{Qualifier: ""}}, ""},
		{"base sorted", Style{{Block: DeclarationBlock{{"z-index", "1"}, {"color", "red"}}}}, "color:red; z-index:1"},
		{"lone qualifier", Style{{Qualifier: ":hover", Block: DeclarationBlock{{"margin", "0"}, {"color", "red"}}}}, "color:red; margin:0"},
		{
			"ordered by colons",
			Style{
				{Qualifier: "::after", Block: DeclarationBlock{{"content", "'x'"}}},
				{Qualifier: ":hover", Block: DeclarationBlock{{"color", "red"}}},
				{Qualifier: "", Block: DeclarationBlock{{"margin", "0"}}},
				{Qualifier: ":focus", Block: DeclarationBlock{{"color", "blue"}}},
			},
			"margin:0 :hover{color:red} :focus{color:blue} ::after{content:'x'}",
		},
		{
			"multiple groups keep declaration order",
			Style{
				{Qualifier: "", Block: DeclarationBlock{{"margin", "0"}, {"color", "red"}}},
				{Qualifier: ":hover"},
			},
			"margin:0; color:red",
		},
	}
	for _, td := range testdata {
		t.Run(td.name, func(t *testing.T) {
			assert.Equal(t, td.want, td.style.String())
		})
	}
}

func TestStyleWith(t *testing.T) {
	s := Style{{Qualifier: "", Block: DeclarationBlock{{"color", "red"}}}}
	s2 := s.With(":hover", DeclarationBlock{{"color", "blue"}})
	assert.Len(t, s, 1)
	assert.Len(t, s2, 2)

	s3 := s2.With("", DeclarationBlock{{"margin", "0"}})
	block, ok := s3.Group("")
	assert.True(t, ok)
	assert.Equal(t, "margin:0", block.String())
	block, _ = s2.Group("")
	assert.Equal(t, "color:red", block.String())
}

func TestSplitGroups(t *testing.T) {
	testdata := []struct {
		name string
		text string
		want []rawGroup
	}{
		{"plain", "color:red", []rawGroup{{"", "color:red"}}},
		{"empty", "", []rawGroup{{"", ""}}},
		{"base and pseudo", "color:red :hover{color:blue}", []rawGroup{{"", "color:red"}, {":hover", "color:blue"}}},
		{"braced base", "{color:red} ::after{content:'x'}", []rawGroup{{"", "color:red"}, {"::after", "content:'x'"}}},
		{"repeated qualifier", ":hover{color:red} :hover{margin:0}", []rawGroup{{":hover", "margin:0"}}},
		{"text between groups", ":hover{color:red} margin:0 :focus{color:blue}", []rawGroup{{"", "margin:0"}, {":hover", "color:red"}, {":focus", "color:blue"}}},
	}
	for _, td := range testdata {
		t.Run(td.name, func(t *testing.T) {
			assert.Equal(t, td.want, splitGroups(td.text))
		})
	}
}
