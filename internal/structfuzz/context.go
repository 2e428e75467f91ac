package structfuzz

import "strconv"

// Context tracks per-decode state shared across one full traversal of the
// grammar: the fresh-variable-name counter, the map of names already
// minted, and the scratch buffer SubtreeTransfer uses to carry captured
// bytes from its capture pass to its splice pass.
type Context struct {
	rng  *Rng
	vars []contextVar

	storedSubtree []byte
	storedRuleID  RuleID
	haveStored    bool
}

type contextVar struct {
	name  string
	ctype string
}

// NewContext creates an empty Context driven by rng for any variable
// selection it needs to make.
func NewContext(rng *Rng) *Context {
	return &Context{rng: rng}
}

// CreateVariable mints a fresh name of the given WGSL type and records it,
// returning the name.
func (c *Context) CreateVariable(ctype string) string {
	name := "v" + strconv.Itoa(len(c.vars))
	c.vars = append(c.vars, contextVar{name: name, ctype: ctype})
	return name
}

// GetRandomVariable returns the name of a uniformly random previously
// created variable, or "" if none exist yet.
func (c *Context) GetRandomVariable() string {
	if len(c.vars) == 0 {
		return ""
	}
	return c.vars[c.rng.UInt32(uint32(len(c.vars)))].name
}

// ShouldUseVariable reports whether a numeric-literal synthesizer should
// reuse an existing variable (when one exists) instead of minting a fresh
// literal. Fifty-fifty, mirroring a coin flip over "reuse vs. mint".
func (c *Context) ShouldUseVariable() bool {
	return len(c.vars) > 0 && c.rng.Bool()
}
