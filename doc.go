// Package cssinline moves class based CSS rules of an HTML (or XML) document
// into the style attributes of the elements carrying these classes.
//
// Stylesheets are collected from <style> elements, linked stylesheets and
// explicitly supplied external files or URLs. Only rules with plain class
// selectors are inlined, because the output is meant for consumers with
// limited CSS support such as email clients.
//
// The style values written by this package can carry pseudo class groups
// side by side with the base declarations:
//
//	color:red; font-size:2px :hover{color:blue}
//
// See MergeStyles for the merge rules.
package cssinline
