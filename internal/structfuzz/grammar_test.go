package structfuzz

import "testing"

func TestGrammarTableEveryRuleHasAlternatives(t *testing.T) {
	for id, rule := range grammarTable {
		if len(rule) == 0 {
			t.Fatalf("rule %d has no alternatives", id)
		}
	}
}

func TestGrammarTableRefsAreInBounds(t *testing.T) {
	var walk func(alt Alternative)
	walk = func(alt Alternative) {
		for _, item := range alt {
			if item.kind == contentRef {
				if int(item.ref) < 0 || int(item.ref) >= numRules {
					t.Fatalf("ref to out-of-range rule %d", item.ref)
				}
			}
		}
	}
	for id, rule := range grammarTable {
		for _, alt := range rule {
			walk(alt)
		}
		_ = id
	}
}

func TestCompatibilityGroupsAreWithinGrammarBounds(t *testing.T) {
	for _, group := range compatibilityGroups {
		for _, id := range group {
			if int(id) < 0 || int(id) >= numRules {
				t.Fatalf("compatibility group references out-of-range rule %d", id)
			}
		}
	}
}

func TestNodesCompatibleReflexive(t *testing.T) {
	for id := RuleID(0); id < RuleID(numRules); id++ {
		if !nodesCompatible(id, id) {
			t.Fatalf("nodesCompatible(%d, %d) should always be true", id, id)
		}
	}
}

func TestNodesCompatibleWithinGroup(t *testing.T) {
	for _, group := range compatibilityGroups {
		for _, a := range group {
			for _, b := range group {
				if !nodesCompatible(a, b) {
					t.Fatalf("expected %d and %d in the same compatibility group to be compatible", a, b)
				}
			}
		}
	}
}

func TestNodesCompatibleAcrossUnrelatedRules(t *testing.T) {
	if nodesCompatible(Expression, Statement) {
		t.Fatalf("Expression and Statement are in different compatibility groups and should not be compatible")
	}
}
