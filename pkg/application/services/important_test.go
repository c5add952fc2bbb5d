package services

import (
	"testing"

	"github.com/songka/bomcheck/pkg/domain/services/textnorm"
)

func TestScanImportantMaterials_MatchesDescription(t *testing.T) {
	index := buildIndex(t,
		testPart{"U100", "贴片电阻 0402", 10},
		testPart{"U200", "贴片电容 0603", 20},
		testPart{"U300", "连接器", 5},
	)

	hits, matched, _ := ScanImportantMaterials(index, []string{"电容"})

	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	hit := hits[0]
	if hit.Keyword != "电容" || hit.TotalQuantity != 20 {
		t.Errorf("hit = %+v, want 电容 with total 20", hit)
	}
	if hit.MatchedParts["U200"] != 20 {
		t.Errorf("MatchedParts = %v, want U200:20", hit.MatchedParts)
	}
	if _, ok := matched[textnorm.Key("U200")]; !ok {
		t.Errorf("matched set missing U200")
	}
	if _, ok := matched[textnorm.Key("U100")]; ok {
		t.Errorf("matched set contains a non-hit")
	}
}

func TestScanImportantMaterials_CrossScriptMatch(t *testing.T) {
	index := buildIndex(t,
		testPart{"U400", "電容器", 8},
	)

	hits, _, _ := ScanImportantMaterials(index, []string{"电容"})

	if len(hits) != 1 || hits[0].TotalQuantity != 8 {
		t.Fatalf("simplified keyword must match traditional description: %+v", hits)
	}
}

func TestScanImportantMaterials_MatchesPartNumber(t *testing.T) {
	index := buildIndex(t,
		testPart{"U100-CAP", "", 3},
	)

	hits, _, _ := ScanImportantMaterials(index, []string{"cap"})

	if len(hits) != 1 || hits[0].MatchedParts["U100-CAP"] != 3 {
		t.Fatalf("keyword must match the part number too: %+v", hits)
	}
}

func TestScanImportantMaterials_ZeroTotalSuppressesHit(t *testing.T) {
	index := buildIndex(t,
		testPart{"U100", "电容", 0},
	)

	hits, _, trace := ScanImportantMaterials(index, []string{"电容"})

	if len(hits) != 0 {
		t.Fatalf("zero-quantity match must not produce a hit: %+v", hits)
	}
	if !traceContains(trace, "未命中") {
		t.Errorf("trace missing the no-hit entry: %v", trace)
	}
}

func TestScanImportantMaterials_NoKeywords(t *testing.T) {
	index := buildIndex(t, testPart{"U100", "电容", 10})

	hits, matched, trace := ScanImportantMaterials(index, nil)

	if len(hits) != 0 || len(matched) != 0 || len(trace) != 0 {
		t.Errorf("empty keyword list must be a no-op")
	}
}
