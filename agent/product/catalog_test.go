package product

import (
	"strings"
	"testing"
)

func TestAllReturnsFiveProducts(t *testing.T) {
	t.Parallel()

	if got := len(All()); got != 5 {
		t.Fatalf("expected 5 products, got %d", got)
	}
}

func TestByType(t *testing.T) {
	t.Parallel()

	p, ok := ByType(TypeTerm)
	if !ok {
		t.Fatal("term product must exist")
	}
	if p.ProductName != "Term Life Insurance" {
		t.Fatalf("unexpected product: %s", p.ProductName)
	}

	if _, ok := ByType(Type("UNKNOWN")); ok {
		t.Fatal("unknown type must not match")
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	results := Search("cash value")
	if len(results) == 0 {
		t.Fatal("expected matches for cash value")
	}
	for _, p := range results {
		if p.ProductType == TypeTerm {
			t.Fatal("term life must not match cash value")
		}
	}

	if got := Search("  "); got != nil {
		t.Fatalf("blank keyword must match nothing, got %d", len(got))
	}
}

func TestKnowledgeBaseMentionsEveryProduct(t *testing.T) {
	t.Parallel()

	kb := KnowledgeBase()
	for _, p := range All() {
		if !strings.Contains(kb, p.ProductName) {
			t.Fatalf("knowledge base missing %s", p.ProductName)
		}
	}
}
