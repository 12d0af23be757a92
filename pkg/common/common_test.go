package common

import (
	"strings"
	"testing"
)

func TestGenerateTrxNo(t *testing.T) {
	trx := GenerateTrxNo()
	if len(trx) != 7 {
		t.Errorf("Expected length 7, got %d", len(trx))
	}

	for _, char := range trx {
		if !strings.ContainsRune(codeCharacters, char) {
			t.Errorf("Invalid character found: %c", char)
		}
	}
}

func TestGenerateRefCode(t *testing.T) {
	code := GenerateRefCode()
	if !strings.HasPrefix(code, "REF") {
		t.Errorf("Expected REF prefix, got %s", code)
	}
	if len(code) != 10 {
		t.Errorf("Expected length 10, got %d", len(code))
	}
}

func TestPaginateResponse(t *testing.T) {
	total := int64(100)
	page := 1
	limit := 10
	data := []string{"item1", "item2"}

	res := PaginateResponse(data, total, page, limit, "")

	if res.CurrentPage != 1 {
		t.Errorf("Expected CurrentPage 1, got %d", res.CurrentPage)
	}
	if res.LastPage != 10 {
		t.Errorf("Expected LastPage 10, got %d", res.LastPage)
	}
	if res.NextPage != 2 {
		t.Errorf("Expected NextPage 2, got %d", res.NextPage)
	}
	if res.PrevPage != 0 {
		t.Errorf("Expected PrevPage 0, got %d", res.PrevPage)
	}
	if res.Count != 100 {
		t.Errorf("Expected Count 100, got %d", res.Count)
	}

	// Last page has no next
	res = PaginateResponse(data, total, 10, limit, "")
	if res.NextPage != 0 {
		t.Errorf("Expected NextPage 0 for last page, got %d", res.NextPage)
	}

	if res.Message != "success" {
		t.Errorf("Expected default message, got %s", res.Message)
	}
}
