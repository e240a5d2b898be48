package feed

import (
	"reflect"
	"testing"
)

func TestExtractLinks_EmptyInput(t *testing.T) {
	if got := ExtractLinks(nil); len(got) != 0 {
		t.Errorf("nil facets should yield no links, got %v", got)
	}
	if got := ExtractLinks([]Facet{}); len(got) != 0 {
		t.Errorf("empty facets should yield no links, got %v", got)
	}
	if got := ExtractLinks([]Facet{{Features: nil}}); len(got) != 0 {
		t.Errorf("facet without features should yield no links, got %v", got)
	}
}

// TestExtractLinks_FiltersToLinkFeatures documents the filter: only features
// tagged as links survive, and incomplete link features are dropped rather
// than erroring.
func TestExtractLinks_FiltersToLinkFeatures(t *testing.T) {
	facets := []Facet{
		{Features: []Feature{
			{Type: "app.bsky.richtext.facet#mention", URI: "at://did:plc:abc"},
			{Type: FeatureLink, URI: "https://example.com/a"},
		}},
		{Features: []Feature{
			{Type: "app.bsky.richtext.facet#tag"},
			{Type: FeatureLink, URI: ""}, // malformed: no target
		}},
		{Features: []Feature{
			{Type: FeatureLink, URI: "https://example.com/b"},
		}},
	}

	want := []string{"https://example.com/a", "https://example.com/b"}
	if got := ExtractLinks(facets); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

// TestExtractLinks_PreservesOrder verifies facet order first, then feature
// order within a facet.
func TestExtractLinks_PreservesOrder(t *testing.T) {
	facets := []Facet{
		{Features: []Feature{
			{Type: FeatureLink, URI: "https://example.com/1"},
			{Type: FeatureLink, URI: "https://example.com/2"},
		}},
		{Features: []Feature{
			{Type: FeatureLink, URI: "https://example.com/3"},
		}},
	}

	want := []string{"https://example.com/1", "https://example.com/2", "https://example.com/3"}
	if got := ExtractLinks(facets); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

// TestExtractLinks_IsPure runs the extractor twice on the same input and
// expects identical output with the input untouched.
func TestExtractLinks_IsPure(t *testing.T) {
	facets := []Facet{
		{Features: []Feature{{Type: FeatureLink, URI: "https://example.com"}}},
	}

	first := ExtractLinks(facets)
	second := ExtractLinks(facets)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls should match: %v vs %v", first, second)
	}
	if facets[0].Features[0].URI != "https://example.com" {
		t.Error("input should not be mutated")
	}
}
