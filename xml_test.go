package cssinline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func xmlOptions() Options {
	opts := DefaultOptions()
	opts.Method = MethodXML
	return opts
}

func TestTransformXML(t *testing.T) {
	const src = `<html xmlns="http://www.w3.org/1999/xhtml"><head><style>.a{color:red}</style></head>` +
		`<body><p class="a">hi</p><script><![CDATA[var a = 1;]]></script></body></html>`
	out, err := Transform(src, xmlOptions())
	require.NoError(t, err)
	assert.Contains(t, out, `<p style="color:red">hi</p>`)
	assert.NotContains(t, out, `<style`)
	assert.Contains(t, out, `/*<![CDATA[*/var a = 1;/*]]>*/`)
}

func TestTransformXMLKeepStyleTags(t *testing.T) {
	const src = `<html><head><style media="print">.a{color:blue}</style><style>.a{color:red}</style></head>` +
		`<body><div><p class="a b">hi</p></div></body></html>`
	opts := xmlOptions()
	opts.KeepStyleTags = true
	opts.RemoveClasses = false
	out, err := Transform(src, opts)
	require.NoError(t, err)
	assert.Contains(t, out, `<style>.a{color:red}</style>`)
	assert.Contains(t, out, `<style media="print">.a{color:blue}</style>`)
	assert.Contains(t, out, `<p class="a b" style="color:red">hi</p>`)
}

func TestTransformXMLMalformed(t *testing.T) {
	_, err := Transform(`<html><body><p>unclosed</body>`, xmlOptions())
	require.ErrorIs(t, err, ErrParse)

	_, err = Transform(`just text`, xmlOptions())
	require.ErrorIs(t, err, ErrParse)
}

func TestXMLStylesheetNodes(t *testing.T) {
	doc, err := parseXMLDocument(`<html><head><link rel="alternate stylesheet" href="a.css"/><link rel="icon" href="x.ico"/>` +
		`<style>.a{}</style></head><body class="main"><p class="a">x</p></body></html>`)
	require.NoError(t, err)
	sheets := doc.stylesheetNodes()
	require.Len(t, sheets, 2)
	assert.Equal(t, "link", sheets[0].name())
	assert.Equal(t, "style", sheets[1].name())
	assert.Len(t, doc.classNodes(), 2)
}
