// Package placeholder substitutes {name} tokens in messages with request-scoped values.
//
// A Mapping binds token names to source references of the form "<source>:<key>", where source is
// one of header, session or identity. The Registry resolves a source against the current request;
// the Engine walks the mapping in order and replaces every occurrence of each token, falling back
// to "guest" when the source has no value. Only literal tokens are replaced; there are no
// expressions or nested substitution.
//
//	m, _ := placeholder.ParseMapping("userName=header:X-User-Name,role=identity:roles")
//	engine := placeholder.NewEngine(nil)
//	msg := engine.Substitute("Hello, {userName}!", m, r)
package placeholder
