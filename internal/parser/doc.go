// Package parser turns one markdown document into a model.Document.
//
// Two strategies exist. When any heading is a reserved subhead (args,
// arguments, template) the document is read heading by heading: sections one
// level above the shallowest subhead become templates and their children
// become tree members. Otherwise every leaf section holding exactly one code
// block is a template, and siblings that all declare an output path form a
// tree.
package parser
