package seed

import "testing"

func TestProductPrices(t *testing.T) {
	tests := []struct {
		cIdx, pIdx int
		wantNew    string
		wantOld    string
	}{
		{cIdx: 1, pIdx: 1, wantNew: "6.50"},
		{cIdx: 1, pIdx: 2, wantNew: "7.00", wantOld: "9.50"},
		{cIdx: 5, pIdx: 10, wantNew: "15.00", wantOld: "17.50"},
	}
	for _, tt := range tests {
		current, old := productPrices(tt.cIdx, tt.pIdx)
		if current.StringFixed(2) != tt.wantNew {
			t.Fatalf("c=%d p=%d: expected new %s, got %s", tt.cIdx, tt.pIdx, tt.wantNew, current.StringFixed(2))
		}
		if tt.wantOld == "" {
			if old != nil {
				t.Fatalf("c=%d p=%d: expected no old price, got %s", tt.cIdx, tt.pIdx, old)
			}
			continue
		}
		if old == nil || old.StringFixed(2) != tt.wantOld {
			t.Fatalf("c=%d p=%d: expected old %s, got %v", tt.cIdx, tt.pIdx, tt.wantOld, old)
		}
	}
}

func TestVariantPricesAndStock(t *testing.T) {
	base, _ := productPrices(1, 1)
	small, smallOld := variantPrices(base, 1)
	medium, mediumOld := variantPrices(base, 2)
	if small.StringFixed(2) != "7.50" || smallOld != nil {
		t.Fatalf("unexpected small prices %s %v", small, smallOld)
	}
	if medium.StringFixed(2) != "8.50" || mediumOld == nil || mediumOld.StringFixed(2) != "9.50" {
		t.Fatalf("unexpected medium prices %s %v", medium, mediumOld)
	}
	if variantStock(1) != 25 || variantStock(3) != 35 {
		t.Fatal("unexpected stock levels")
	}
}

func TestNamesAndImages(t *testing.T) {
	if got := productName("Premium Item A", "Beverages", 1); got != "Premium Item A (Beverages #1)" {
		t.Fatalf("unexpected product name %q", got)
	}
	if got := categoryImage("Snacks"); got != "https://placehold.co/1200x600/111827/FFFFFF.png?text=Category%20Snacks" {
		t.Fatalf("unexpected category image %q", got)
	}
	if got := variantImage("Premium Item A (Beverages #1)", "Small"); got == productImage("Premium Item A (Beverages #1)") {
		t.Fatal("variant image should differ from product image")
	}
}
