package cssinline

// document is the parsed markup the inliner works on.
type document interface {
	// stylesheetNodes returns the <style> and <link rel="stylesheet">
	// elements in document order.
	stylesheetNodes() []node
	// classNodes returns all elements with a class attribute in document
	// order.
	classNodes() []node
	render() (string, error)
}

// node is an element of a document.
type node interface {
	name() string
	attr(key string) (string, bool)
	setAttr(key, val string)
	removeAttr(key string)
	text() string
	remove()
}
